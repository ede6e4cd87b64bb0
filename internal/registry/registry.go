package registry

import (
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/logger"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

// Registry holds event definitions keyed by id. Definitions are immutable
// once registered: registration under an existing id is rejected, and the
// registry hands out copies of the stored value.
type Registry struct {
	events map[string]models.EventDefinition
}

// New creates an empty event registry.
func New() *Registry {
	return &Registry{events: make(map[string]models.EventDefinition)}
}

// Register stores def. It returns false, without side effects, when the
// definition has no id or type or when the id is already taken.
func (r *Registry) Register(def models.EventDefinition) bool {
	if def.ID == "" || def.Type == "" {
		logger.L().Warn("Rejected event definition missing id or type", "event_id", def.ID, "event_type", def.Type)
		return false
	}
	if _, exists := r.events[def.ID]; exists {
		logger.L().Warn("Rejected duplicate event definition", "event_id", def.ID)
		return false
	}
	r.events[def.ID] = def
	logger.L().Debug("Event registered", "event_id", def.ID, "event_type", def.Type)
	return true
}

// Get returns the definition registered under id.
func (r *Registry) Get(id string) (models.EventDefinition, bool) {
	def, ok := r.events[id]
	return def, ok
}

// All returns every registered definition. Order is not significant.
func (r *Registry) All() []models.EventDefinition {
	defs := make([]models.EventDefinition, 0, len(r.events))
	for _, def := range r.events {
		defs = append(defs, def)
	}
	return defs
}

// ByType returns every definition whose type tag matches eventType exactly.
func (r *Registry) ByType(eventType string) []models.EventDefinition {
	var defs []models.EventDefinition
	for _, def := range r.events {
		if def.Type == eventType {
			defs = append(defs, def)
		}
	}
	return defs
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.events)
}

// Clear removes every definition.
func (r *Registry) Clear() {
	r.events = make(map[string]models.EventDefinition)
}
