package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/config"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/engine"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

var listEventsCmd = &cobra.Command{
	Use:   "list-events",
	Short: "List all configured events",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(getConfigPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		events := collectEvents(cfg)
		if len(events) == 0 {
			fmt.Println("No events configured.")
			return
		}

		fmt.Printf("Configured events (%d):\n", len(events))
		for _, def := range events {
			priority := "none"
			if def.Priority != nil {
				priority = fmt.Sprintf("%d", *def.Priority)
			}
			fmt.Printf("  - %s (type: %s, priority: %s)\n", def.ID, def.Type, priority)
		}
	},
}

// collectEvents gathers inline events plus every readable bundle's events.
func collectEvents(cfg *models.Config) []models.EventDefinition {
	events := append([]models.EventDefinition{}, cfg.Events...)
	for _, path := range cfg.Bundles {
		b, err := engine.LoadBundleFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping unreadable bundle '%s': %v\n", path, err)
			continue
		}
		events = append(events, b.Events...)
	}
	return events
}

func init() {
	rootCmd.AddCommand(listEventsCmd)
}
