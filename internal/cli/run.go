package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/binding"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/config"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/engine"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/logger"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/server"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

const defaultTickInterval = 50 * time.Millisecond

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the event engine in the foreground",
	Long: `Loads the configuration and any bundles, starts the control API and
drives the engine's update loop until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		runForeground(getConfigPath())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runForeground contains the main daemon logic for the 'run' command.
func runForeground(configPath string) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration from '%s': %v\n", configPath, err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Application, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.L()
	log.Info("Event engine starting...")

	// The engine measures time in milliseconds since startup; trigger delays
	// and intervals in config and bundles are on that scale.
	eng := engine.New()

	bindings := defaultBindings()
	registerDefinitions(eng, bindings, cfg)

	srv := server.New(cfg, eng)
	srv.Start()

	tick := cfg.Application.TickInterval.Duration
	if tick <= 0 {
		tick = defaultTickInterval
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	log.Info("Update loop running", "tick_interval", tick.String())

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			srv.Update()
		case sig := <-stopChan:
			log.Info("Received shutdown signal", "signal", sig.String())
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error("Error stopping control API", "error", err)
			}
			log.Info("Event engine shut down gracefully")
			return
		}
	}
}

// registerDefinitions loads inline and bundled definitions into the engine,
// resolving handlers through the binding registry.
func registerDefinitions(eng *engine.Engine, bindings *binding.Registry, cfg *models.Config) {
	log := logger.L()

	inline := bindings.Attach(models.Bundle{Events: cfg.Events, Triggers: cfg.Triggers})
	for _, def := range inline.Events {
		if !eng.RegisterEvent(def) {
			log.Warn("Skipping inline event that failed registration", "event_id", def.ID)
		}
	}
	for _, def := range inline.Triggers {
		if !eng.RegisterTrigger(def) {
			log.Warn("Skipping inline trigger that failed registration", "event_id", def.EventID)
		}
	}

	for _, path := range cfg.Bundles {
		b, err := engine.LoadBundleFile(path)
		if err != nil {
			log.Error("Failed to read bundle, skipping", "path", path, "error", err)
			continue
		}
		if !eng.LoadBundle(bindings.Attach(b)) {
			log.Error("Bundle rejected", "path", path)
			continue
		}
		log.Info("Bundle loaded", "path", path, "events", len(b.Events), "triggers", len(b.Triggers))
	}
}

// defaultBindings builds the handler bindings used by the standalone daemon.
// Outside a real game frontend there is nothing to render, so every event
// type gets logging handlers; a game embedding the engine supplies its own
// registry with dialogue panels, spawn batches and the like.
func defaultBindings() *binding.Registry {
	r := binding.NewRegistry()
	r.SetFallback(func(def models.EventDefinition) models.EventHandlers {
		log := logger.L().With("event_id", def.ID, "event_type", def.Type)
		return models.EventHandlers{
			OnTrigger:  func(data any) { log.Info("Event triggered", "data", data) },
			OnComplete: func() { log.Info("Event completed") },
			OnPause:    func() { log.Info("Event paused") },
			OnResume:   func() { log.Info("Event resumed") },
		}
	})
	return r
}
