package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

// LoadConfig reads a YAML configuration file from the given path,
// unmarshals it into a models.Config struct, validates it and returns it.
func LoadConfig(configPath string) (*models.Config, error) {
	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	var config models.Config
	if err := yaml.Unmarshal(yamlFile, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", configPath, err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}
