package engine

import (
	"time"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/active"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/flags"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/logger"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/registry"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/trigger"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

// Engine coordinates narrative and game events: it registers definitions,
// fires them from time- and flag-based triggers, and arbitrates which one
// runs through the priority stack. Construct one explicitly and hand it to
// consumers; there is no shared instance.
//
// The engine is tick-driven and single-threaded: the host calls Update once
// per frame and owns serialization if it ever calls in from elsewhere.
type Engine struct {
	clock    func() float64
	events   *registry.Registry
	triggers *trigger.Registry
	active   *active.Stack
	flags    *flags.Store
	enabled  bool
}

// Option configures an Engine during construction.
type Option func(*Engine)

// WithClock supplies the time source consulted on every Update. The values
// must be monotonically non-decreasing; trigger delays and intervals are
// expressed on the same scale.
func WithClock(clock func() float64) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// New creates an enabled, empty engine. Without WithClock, time is measured
// in milliseconds since construction.
func New(opts ...Option) *Engine {
	e := &Engine{enabled: true}

	start := time.Now()
	e.clock = func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
	for _, opt := range opts {
		opt(e)
	}

	e.flags = flags.NewStore()
	e.events = registry.New()
	e.triggers = trigger.NewRegistry(func() float64 { return e.clock() }, e.flags)
	e.active = active.NewStack()
	return e
}

// RegisterEvent stores an immutable event definition. Returns false when the
// definition lacks an id or type or the id is already registered.
func (e *Engine) RegisterEvent(def models.EventDefinition) bool {
	return e.events.Register(def)
}

// RegisterTrigger arms a trigger for its event id. The event need not be
// registered yet. Returns false when the trigger names no event.
func (e *Engine) RegisterTrigger(def models.TriggerDefinition) bool {
	return e.triggers.Register(def)
}

// TriggerEvent activates the registered event id, passing data to its
// OnTrigger handler. Returns false when the engine is disabled, the id is
// unknown, or the event is already active.
func (e *Engine) TriggerEvent(id string, data any) bool {
	if !e.enabled {
		logger.L().Debug("Engine disabled, ignoring trigger", "event_id", id)
		return false
	}
	def, ok := e.events.Get(id)
	if !ok {
		logger.L().Warn("Cannot trigger unknown event", "event_id", id)
		return false
	}
	return e.active.Push(def, data)
}

// CompleteEvent finishes the active event id, removing it and resuming the
// next paused event by priority. Returns false when id is not active.
func (e *Engine) CompleteEvent(id string) bool {
	return e.active.Complete(id)
}

// Update runs one tick: trigger conditions are evaluated against the clock
// and the flag store, satisfied triggers fire their events, and the winning
// active event's OnUpdate handler runs. A no-op while disabled.
func (e *Engine) Update() {
	if !e.enabled {
		return
	}
	now := e.clock()
	for _, id := range e.triggers.Evaluate(now) {
		e.TriggerEvent(id, nil)
	}
	e.active.Update()
}

// SetEnabled toggles the engine. Disabling pauses every running event in
// place and turns TriggerEvent and Update into no-ops; re-enabling lifts
// that without resuming anything — the next Update applies the normal
// highest-priority-first rule.
func (e *Engine) SetEnabled(enabled bool) {
	if e.enabled && !enabled {
		e.active.PauseAll()
		logger.L().Info("Engine disabled")
	} else if !e.enabled && enabled {
		logger.L().Info("Engine enabled")
	}
	e.enabled = enabled
}

// Enabled reports whether the engine is processing triggers and updates.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// GetEvent returns the registered definition for id.
func (e *Engine) GetEvent(id string) (models.EventDefinition, bool) {
	return e.events.Get(id)
}

// GetAllEvents returns every registered definition, in no particular order.
func (e *Engine) GetAllEvents() []models.EventDefinition {
	return e.events.All()
}

// GetEventsByType returns the registered definitions with an exact type
// match.
func (e *Engine) GetEventsByType(eventType string) []models.EventDefinition {
	return e.events.ByType(eventType)
}

// GetActiveEvents returns every active instance in trigger order.
func (e *Engine) GetActiveEvents() []*active.Instance {
	return e.active.All()
}

// GetActiveEventsSorted returns every active instance ascending by
// priority; instances without a priority sort last.
func (e *Engine) GetActiveEventsSorted() []*active.Instance {
	return e.active.Sorted()
}

// IsEventActive reports whether id is active, paused or not.
func (e *Engine) IsEventActive(id string) bool {
	return e.active.IsActive(id)
}

// GetTriggersForEvent returns the triggers registered for eventID.
func (e *Engine) GetTriggersForEvent(eventID string) []models.TriggerDefinition {
	return e.triggers.ForEvent(eventID)
}

// SetFlag stores value under name in the flag store.
func (e *Engine) SetFlag(name string, value any) {
	e.flags.Set(name, value)
}

// GetFlag returns the flag value and whether it is set.
func (e *Engine) GetFlag(name string) (any, bool) {
	return e.flags.Get(name)
}

// GetFlagDefault returns the flag value, or fallback when unset.
func (e *Engine) GetFlagDefault(name string, fallback any) any {
	return e.flags.GetDefault(name, fallback)
}

// HasFlag reports whether name is set.
func (e *Engine) HasFlag(name string) bool {
	return e.flags.Has(name)
}

// ClearFlag removes name from the flag store.
func (e *Engine) ClearFlag(name string) {
	e.flags.Clear(name)
}

// IncrementFlag adds delta to the numeric flag name, treating a missing
// flag as zero. Returns false, leaving the flag untouched, when the
// existing value is non-numeric.
func (e *Engine) IncrementFlag(name string, delta float64) (float64, bool) {
	return e.flags.Increment(name, delta)
}

// GetAllFlags returns a snapshot of the flag store.
func (e *Engine) GetAllFlags() map[string]any {
	return e.flags.All()
}

// ClearActiveEvents empties the active set without running completion
// callbacks. Flags, events and triggers are untouched.
func (e *Engine) ClearActiveEvents() {
	e.active.Clear()
	logger.L().Info("Active events cleared")
}

// Reset clears events, triggers and the active set, and the flag store too
// when clearFlags is set. The enabled state is unchanged.
func (e *Engine) Reset(clearFlags bool) {
	e.events.Clear()
	e.triggers.Clear()
	e.active.Clear()
	if clearFlags {
		e.flags.ClearAll()
	}
	logger.L().Info("Engine reset", "flags_cleared", clearFlags)
}
