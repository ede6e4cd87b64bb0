package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/logger"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

// LoadBundle registers every event and trigger in b. Validation is atomic:
// when any event lacks an id or type, collides with a registered or sibling
// definition, or any trigger names no event, nothing is registered and the
// load fails.
func (e *Engine) LoadBundle(b models.Bundle) bool {
	seen := make(map[string]bool, len(b.Events))
	for i, def := range b.Events {
		if def.ID == "" || def.Type == "" {
			logger.L().Warn("Rejecting bundle: event missing id or type", "index", i)
			return false
		}
		if seen[def.ID] {
			logger.L().Warn("Rejecting bundle: duplicate event id", "event_id", def.ID)
			return false
		}
		if _, exists := e.events.Get(def.ID); exists {
			logger.L().Warn("Rejecting bundle: event id already registered", "event_id", def.ID)
			return false
		}
		seen[def.ID] = true
	}
	for i, tr := range b.Triggers {
		if tr.EventID == "" {
			logger.L().Warn("Rejecting bundle: trigger missing event id", "index", i)
			return false
		}
	}

	for _, def := range b.Events {
		e.events.Register(def)
	}
	for _, tr := range b.Triggers {
		e.triggers.Register(tr)
	}
	logger.L().Info("Bundle loaded", "events", len(b.Events), "triggers", len(b.Triggers))
	return true
}

// LoadJSON decodes a JSON bundle and loads it atomically. Malformed JSON is
// a load failure, not an error.
func (e *Engine) LoadJSON(data []byte) bool {
	var b models.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		logger.L().Warn("Rejecting bundle: invalid JSON", "error", err)
		return false
	}
	return e.LoadBundle(b)
}

// ExportBundle returns the registered events and triggers as a bundle, the
// inverse of LoadBundle. Events are sorted by id so the output is
// deterministic; handlers are not serializable and are omitted.
func (e *Engine) ExportBundle() models.Bundle {
	events := e.events.All()
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	for i := range events {
		events[i].Handlers = models.EventHandlers{}
	}
	return models.Bundle{
		Events:   events,
		Triggers: e.triggers.All(),
	}
}

// ExportJSON encodes the exported bundle as indented JSON.
func (e *Engine) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(e.ExportBundle(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bundle: %w", err)
	}
	return data, nil
}

// LoadBundleFile reads and decodes a JSON bundle file. Unlike the engine's
// boolean load surface this reports what went wrong, for CLI validation.
func LoadBundleFile(path string) (models.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Bundle{}, fmt.Errorf("failed to read bundle file '%s': %w", path, err)
	}
	var b models.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return models.Bundle{}, fmt.Errorf("failed to unmarshal bundle file '%s': %w", path, err)
	}
	return b, nil
}

// SaveBundleFile writes b to path as indented JSON. The write is atomic:
// a temporary file is written first and renamed over the target.
func SaveBundleFile(path string, b models.Bundle) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary bundle file '%s': %w", tempFile, err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary bundle file to '%s': %w", path, err)
	}
	return nil
}
