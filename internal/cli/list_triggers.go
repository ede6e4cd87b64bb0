package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/config"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/engine"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

var listTriggersCmd = &cobra.Command{
	Use:   "list-triggers",
	Short: "List all configured triggers",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(getConfigPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		triggers := append([]models.TriggerDefinition{}, cfg.Triggers...)
		for _, path := range cfg.Bundles {
			b, err := engine.LoadBundleFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: skipping unreadable bundle '%s': %v\n", path, err)
				continue
			}
			triggers = append(triggers, b.Triggers...)
		}

		if len(triggers) == 0 {
			fmt.Println("No triggers configured.")
			return
		}

		fmt.Printf("Configured triggers (%d):\n", len(triggers))
		for _, def := range triggers {
			fmt.Printf("  - %s -> %s (%s)\n", def.Type, def.EventID, describeCondition(def))
		}
	},
}

func describeCondition(def models.TriggerDefinition) string {
	c := def.Condition
	repeat := ""
	if !def.IsOneTime() {
		repeat = ", repeating"
	}
	switch {
	case c.Delay != nil:
		return fmt.Sprintf("after %.0fms%s", *c.Delay, repeat)
	case c.Interval != nil:
		return fmt.Sprintf("every %.0fms%s", *c.Interval, repeat)
	case len(c.Flags) > 0:
		return fmt.Sprintf("%d flag conditions%s", len(c.Flags), repeat)
	case c.Flag != "":
		if c.Operator != "" {
			return fmt.Sprintf("when %s %s %v%s", c.Flag, c.Operator, c.Value, repeat)
		}
		return fmt.Sprintf("when %s is truthy%s", c.Flag, repeat)
	default:
		return "no condition"
	}
}

func init() {
	rootCmd.AddCommand(listTriggersCmd)
}
