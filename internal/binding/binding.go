package binding

import (
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

// Factory builds the lifecycle handlers for one event definition. Factories
// belong to the consumer layer: the engine only ever filters on type tags,
// it never dispatches on them.
type Factory func(def models.EventDefinition) models.EventHandlers

// Registry maps event type tags ("dialogue", "spawn", ...) to handler
// factories. Handlers are not serializable, so whatever loads definitions
// from a bundle resolves each one through a Registry to re-attach behavior.
type Registry struct {
	factories map[string]Factory
	fallback  Factory
}

// NewRegistry creates an empty binding registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Bind associates eventType with factory, replacing any previous binding.
func (r *Registry) Bind(eventType string, factory Factory) {
	r.factories[eventType] = factory
}

// SetFallback sets the factory used for type tags with no explicit binding.
func (r *Registry) SetFallback(factory Factory) {
	r.fallback = factory
}

// Resolve returns the handlers for def based on its type tag. Definitions
// with no matching binding and no fallback get zero handlers, which the
// engine treats as a valid silent event.
func (r *Registry) Resolve(def models.EventDefinition) models.EventHandlers {
	if factory, ok := r.factories[def.Type]; ok {
		return factory(def)
	}
	if r.fallback != nil {
		return r.fallback(def)
	}
	return models.EventHandlers{}
}

// Attach returns a copy of b with every event's handlers resolved through
// the registry.
func (r *Registry) Attach(b models.Bundle) models.Bundle {
	events := make([]models.EventDefinition, len(b.Events))
	for i, def := range b.Events {
		def.Handlers = r.Resolve(def)
		events[i] = def
	}
	return models.Bundle{Events: events, Triggers: b.Triggers}
}
