package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

// ValidateConfig checks the entire configuration for logical consistency and
// required fields. Inline definitions get the same validation the engine
// applies at registration, so a bad config fails at startup instead of being
// silently rejected tick by tick.
//
// Triggers referencing event ids defined in neither the inline list nor any
// bundle are allowed: a trigger's reference is only resolved when it fires.
func ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}

	if err := validateApplicationSettings(&cfg.Application); err != nil {
		return fmt.Errorf("invalid application settings: %w", err)
	}

	for i, path := range cfg.Bundles {
		if path == "" {
			return fmt.Errorf("bundle path at index %d is empty", i)
		}
	}

	eventIDs := make(map[string]bool)
	for i, event := range cfg.Events {
		if err := validateEventDefinition(&event, i); err != nil {
			return fmt.Errorf("invalid event at index %d (ID: %s): %w", i, event.ID, err)
		}
		if eventIDs[event.ID] {
			return fmt.Errorf("duplicate event ID found: %s", event.ID)
		}
		eventIDs[event.ID] = true
	}

	for i, trigger := range cfg.Triggers {
		if err := validateTriggerDefinition(&trigger, i); err != nil {
			return fmt.Errorf("invalid trigger at index %d (event ID: %s): %w", i, trigger.EventID, err)
		}
	}

	return nil
}

func validateApplicationSettings(app *models.ApplicationSettings) error {
	if app.LogLevel != "" {
		level := strings.ToLower(app.LogLevel)
		if level != "debug" && level != "info" && level != "warn" && level != "error" {
			return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", app.LogLevel)
		}
	}
	if app.LogFormat != "" {
		format := strings.ToLower(app.LogFormat)
		if format != "text" && format != "json" {
			return fmt.Errorf("invalid log_format: %s (must be text or json)", app.LogFormat)
		}
	}
	if app.TickInterval.Duration < 0 {
		return fmt.Errorf("tick_interval cannot be negative: %s", app.TickInterval.Duration)
	}
	return nil
}

func validateEventDefinition(event *models.EventDefinition, index int) error {
	if event.ID == "" {
		return fmt.Errorf("event at index %d must have an id", index)
	}
	if event.Type == "" {
		return errors.New("type cannot be empty")
	}
	return nil
}

func validateTriggerDefinition(trigger *models.TriggerDefinition, index int) error {
	if trigger.EventID == "" {
		return fmt.Errorf("trigger at index %d must have an event_id", index)
	}

	switch trigger.Type {
	case models.TriggerTypeTime:
		c := trigger.Condition
		if c.Delay == nil && c.Interval == nil {
			return errors.New("time trigger needs a delay or interval condition")
		}
		if c.Delay != nil && c.Interval != nil {
			return errors.New("time trigger cannot have both delay and interval")
		}
		if c.Delay != nil && *c.Delay < 0 {
			return errors.New("delay cannot be negative")
		}
		if c.Interval != nil && *c.Interval <= 0 {
			return errors.New("interval must be positive")
		}
	case models.TriggerTypeFlag:
		c := trigger.Condition
		if c.Flag == "" && len(c.Flags) == 0 {
			return errors.New("flag trigger needs a flag or flags condition")
		}
		if c.Flag != "" {
			if err := validateOperator(c.Operator); err != nil {
				return err
			}
		}
		for j, sub := range c.Flags {
			if sub.Flag == "" {
				return fmt.Errorf("subcondition at index %d must name a flag", j)
			}
			if err := validateOperator(sub.Operator); err != nil {
				return fmt.Errorf("subcondition at index %d: %w", j, err)
			}
		}
	default:
		return fmt.Errorf("unknown trigger type: %s (must be time or flag)", trigger.Type)
	}

	return nil
}

func validateOperator(op string) error {
	switch op {
	case "", models.OperatorEquals, models.OperatorNotEquals,
		models.OperatorGreater, models.OperatorGreaterOrEqual,
		models.OperatorLess, models.OperatorLessOrEqual:
		return nil
	}
	return fmt.Errorf("invalid operator: %s", op)
}
