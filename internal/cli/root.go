package cli

import (
	"github.com/spf13/cobra"
)

var (
	// cfgFile holds the path to the config file, bound to the persistent flag
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "colonyevents",
	Short: "Event coordination engine for the colony simulation",
	Long: `colonyevents runs the narrative/quest event engine: it registers event
and trigger definitions from YAML config and JSON bundles, evaluates
time- and flag-based triggers every tick, and arbitrates which event is
active through the priority stack. A control API exposes the running
engine for inspection and manual triggering.

Run 'colonyevents help <command>' for more information on a command.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "Path to the configuration file")
}

// getConfigPath returns the config file path parsed from the root flag.
func getConfigPath() string {
	return cfgFile
}
