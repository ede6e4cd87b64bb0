package active

import (
	"sort"

	"github.com/google/uuid"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/logger"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

// Instance is a live occurrence of a triggered event. Paused is owned by the
// stack; outside callers observe it but never set it directly.
type Instance struct {
	InstanceID  string // Unique per occurrence, not per definition
	Def         models.EventDefinition
	TriggerData any
	Paused      bool
}

// Stack tracks which events are currently happening and enforces the
// at-most-one-unpaused invariant: whenever any instance is active, exactly
// one is unpaused, and it is the most urgent (numerically lowest priority).
// On equal priority the incumbent keeps running; the newcomer is paused.
type Stack struct {
	instances []*Instance // trigger order
	byEvent   map[string]*Instance
}

// NewStack creates an empty priority stack.
func NewStack() *Stack {
	return &Stack{byEvent: make(map[string]*Instance)}
}

// Push activates def. It returns false when the event is already active.
// On success the definition's OnTrigger handler runs with data, and any
// currently unpaused instance that loses the priority comparison is paused
// (its OnPause handler runs once at the transition).
func (s *Stack) Push(def models.EventDefinition, data any) bool {
	if _, exists := s.byEvent[def.ID]; exists {
		logger.L().Debug("Event already active, ignoring trigger", "event_id", def.ID)
		return false
	}

	inst := &Instance{
		InstanceID:  uuid.NewString(),
		Def:         def,
		TriggerData: data,
	}
	s.instances = append(s.instances, inst)
	s.byEvent[def.ID] = inst
	logger.L().Info("Event activated", "event_id", def.ID, "instance_id", inst.InstanceID, "priority", def.EffectivePriority())

	if def.Handlers.OnTrigger != nil {
		def.Handlers.OnTrigger(data)
	}

	s.arbitrate()
	return true
}

// Update runs the winning instance's OnUpdate handler. When every active
// instance is paused (the engine was disabled and re-enabled), the most
// urgent paused instance is resumed first; this is the
// highest-priority-first rule applied on the next tick.
func (s *Stack) Update() {
	inst := s.unpaused()
	if inst == nil {
		inst = s.resumeNext()
	}
	if inst == nil {
		return
	}
	if inst.Def.Handlers.OnUpdate != nil {
		inst.Def.Handlers.OnUpdate()
	}
}

// Complete finishes the active event id: its OnComplete handler runs, the
// instance is removed, and if nothing is left running the most urgent paused
// instance is resumed. Returns false when id is not active.
func (s *Stack) Complete(id string) bool {
	inst, exists := s.byEvent[id]
	if !exists {
		logger.L().Debug("Cannot complete event that is not active", "event_id", id)
		return false
	}

	if inst.Def.Handlers.OnComplete != nil {
		inst.Def.Handlers.OnComplete()
	}

	delete(s.byEvent, id)
	for i, other := range s.instances {
		if other == inst {
			s.instances = append(s.instances[:i], s.instances[i+1:]...)
			break
		}
	}
	logger.L().Info("Event completed", "event_id", id, "instance_id", inst.InstanceID)

	if s.unpaused() == nil {
		s.resumeNext()
	}
	return true
}

// PauseAll pauses every unpaused instance, running OnPause handlers. Used
// when the engine is disabled; instances stay active.
func (s *Stack) PauseAll() {
	for _, inst := range s.instances {
		if !inst.Paused {
			s.pause(inst)
		}
	}
}

// IsActive reports whether event id is currently active, paused or not.
func (s *Stack) IsActive(id string) bool {
	_, ok := s.byEvent[id]
	return ok
}

// Get returns the active instance for event id.
func (s *Stack) Get(id string) (*Instance, bool) {
	inst, ok := s.byEvent[id]
	return inst, ok
}

// All returns every active instance in trigger order.
func (s *Stack) All() []*Instance {
	return append([]*Instance(nil), s.instances...)
}

// Sorted returns every active instance ascending by priority. Instances
// without a priority sort after all explicit priorities; equal priorities
// keep trigger order.
func (s *Stack) Sorted() []*Instance {
	sorted := append([]*Instance(nil), s.instances...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Def.EffectivePriority() < sorted[j].Def.EffectivePriority()
	})
	return sorted
}

// Len returns the number of active instances.
func (s *Stack) Len() int {
	return len(s.instances)
}

// Clear drops every active instance without running completion callbacks.
func (s *Stack) Clear() {
	s.instances = nil
	s.byEvent = make(map[string]*Instance)
}

// arbitrate restores the invariant after a push: the most urgent unpaused
// instance keeps running and every other unpaused instance is paused. It
// never resumes anything.
func (s *Stack) arbitrate() {
	var winner *Instance
	for _, inst := range s.instances {
		if inst.Paused {
			continue
		}
		if winner == nil || inst.Def.EffectivePriority() < winner.Def.EffectivePriority() {
			winner = inst
		}
	}
	if winner == nil {
		return
	}
	for _, inst := range s.instances {
		if !inst.Paused && inst != winner {
			s.pause(inst)
		}
	}
}

func (s *Stack) pause(inst *Instance) {
	inst.Paused = true
	logger.L().Debug("Event paused", "event_id", inst.Def.ID)
	if inst.Def.Handlers.OnPause != nil {
		inst.Def.Handlers.OnPause()
	}
}

// unpaused returns the running instance, or nil when everything is paused
// or the stack is empty.
func (s *Stack) unpaused() *Instance {
	for _, inst := range s.instances {
		if !inst.Paused {
			return inst
		}
	}
	return nil
}

// resumeNext unpauses the most urgent paused instance and returns it.
func (s *Stack) resumeNext() *Instance {
	var next *Instance
	for _, inst := range s.instances {
		if !inst.Paused {
			continue
		}
		if next == nil || inst.Def.EffectivePriority() < next.Def.EffectivePriority() {
			next = inst
		}
	}
	if next == nil {
		return nil
	}
	next.Paused = false
	logger.L().Debug("Event resumed", "event_id", next.Def.ID)
	if next.Def.Handlers.OnResume != nil {
		next.Def.Handlers.OnResume()
	}
	return next
}
