package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	triggerAddr string
	triggerData string
)

// triggerCmd represents the trigger command
var triggerCmd = &cobra.Command{
	Use:   "trigger <event_id>",
	Short: "Manually trigger a registered event",
	Long: `Sends a request to the running daemon to activate the specified event ID.
Optional data for the event's trigger handler can be provided as a JSON value
with --data.
Example: colonyevents trigger boss-wave --data '{"wave": 3}'`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eventID := args[0]
		fmt.Printf("Attempting to trigger event '%s'...\n", eventID)

		var data any
		if triggerData != "" {
			if err := json.Unmarshal([]byte(triggerData), &data); err != nil {
				fmt.Fprintf(os.Stderr, "Error: --data is not valid JSON: %v\n", err)
				os.Exit(1)
			}
		}

		requestBody := map[string]any{"data": data}
		jsonData, err := json.Marshal(requestBody)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding request body: %v\n", err)
			os.Exit(1)
		}

		daemonURL := fmt.Sprintf("http://%s/events/%s/trigger", triggerAddr, eventID)
		resp, err := http.Post(daemonURL, "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error sending trigger request to daemon at %s: %v\n", daemonURL, err)
			fmt.Fprintln(os.Stderr, "Is the daemon running?")
			os.Exit(1)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusAccepted {
			fmt.Println("Trigger request accepted. Event is now active.")
			return
		}

		limitReader := http.MaxBytesReader(nil, resp.Body, 1024)
		bodyBytes, errRead := io.ReadAll(limitReader)

		fmt.Fprintf(os.Stderr, "Error: Daemon returned status %s\n", resp.Status)
		if errRead == nil && len(bodyBytes) > 0 {
			fmt.Fprintf(os.Stderr, "Response: %s\n", string(bodyBytes))
		} else if errRead != nil {
			fmt.Fprintf(os.Stderr, "(Could not read response body: %v)\n", errRead)
		}
		os.Exit(1)
	},
}

func init() {
	triggerCmd.Flags().StringVar(&triggerAddr, "addr", "localhost:8080", "Address of the running daemon")
	triggerCmd.Flags().StringVarP(&triggerData, "data", "d", "", "JSON payload passed to the event's trigger handler")
	rootCmd.AddCommand(triggerCmd)
}
