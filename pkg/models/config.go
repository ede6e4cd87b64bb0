package models

import "time"

// Config is the root configuration structure for the colonyevents daemon.
// Event and trigger definitions may be declared inline or pulled in from
// bundle files; both are registered at startup.
type Config struct {
	Application ApplicationSettings `yaml:"application"`
	Bundles     []string            `yaml:"bundles"`  // Paths to JSON bundle files loaded at startup
	Events      []EventDefinition   `yaml:"events"`   // Inline event definitions
	Triggers    []TriggerDefinition `yaml:"triggers"` // Inline trigger definitions
}

// ApplicationSettings holds global configuration for the daemon.
type ApplicationSettings struct {
	LogLevel     string   `yaml:"log_level"`     // e.g., "debug", "info", "warn", "error"
	LogFormat    string   `yaml:"log_format"`    // e.g., "text", "json"
	ListenAddr   string   `yaml:"listen_addr"`   // Address for the control API (e.g., ":8080")
	TickInterval Duration `yaml:"tick_interval"` // How often the engine's update runs (e.g., "50ms")
}

// Duration is a wrapper around time.Duration to allow parsing from YAML
// strings like "50ms", "10s", "5m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	var err error
	d.Duration, err = time.ParseDuration(s)
	return err
}
