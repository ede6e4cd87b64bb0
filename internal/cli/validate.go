package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/config"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/engine"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and referenced bundles",
	Long: `Loads the configuration file and every bundle it references, reporting
any structural problems without starting the engine.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(getConfigPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration invalid: %v\n", err)
			os.Exit(1)
		}

		failed := false
		for _, path := range cfg.Bundles {
			b, err := engine.LoadBundleFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Bundle '%s' unreadable: %v\n", path, err)
				failed = true
				continue
			}
			eng := engine.New()
			if !eng.LoadBundle(b) {
				fmt.Fprintf(os.Stderr, "Bundle '%s' rejected: invalid or duplicate definitions\n", path)
				failed = true
				continue
			}
			fmt.Printf("Bundle '%s' OK (%d events, %d triggers)\n", path, len(b.Events), len(b.Triggers))
		}
		if failed {
			os.Exit(1)
		}
		fmt.Println("Configuration is valid.")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
