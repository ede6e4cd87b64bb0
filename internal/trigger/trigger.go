package trigger

import (
	"reflect"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/flags"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/logger"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

// entry wraps a registered trigger with its evaluation state. armedAt is the
// clock value at registration and anchors the first interval firing.
type entry struct {
	def       models.TriggerDefinition
	armedAt   float64
	lastFired *float64
}

// Registry holds trigger definitions and evaluates their conditions against
// the host-supplied clock and the flag store. Triggers reference events by
// id only; the referenced event need not exist until the trigger fires.
type Registry struct {
	entries []*entry
	clock   func() float64
	store   *flags.Store
}

// NewRegistry creates a trigger registry evaluating against clock and store.
func NewRegistry(clock func() float64, store *flags.Store) *Registry {
	return &Registry{clock: clock, store: store}
}

// Register appends def to the triggers for its event id. Multiple triggers
// per event are permitted and evaluated independently. Returns false when
// the definition names no event.
func (r *Registry) Register(def models.TriggerDefinition) bool {
	if def.EventID == "" {
		logger.L().Warn("Rejected trigger definition missing event id")
		return false
	}
	r.entries = append(r.entries, &entry{def: def, armedAt: r.clock()})
	logger.L().Debug("Trigger registered", "event_id", def.EventID, "trigger_type", def.Type, "one_time", def.IsOneTime())
	return true
}

// ForEvent returns the triggers registered for eventID, in registration
// order.
func (r *Registry) ForEvent(eventID string) []models.TriggerDefinition {
	var defs []models.TriggerDefinition
	for _, e := range r.entries {
		if e.def.EventID == eventID {
			defs = append(defs, e.def)
		}
	}
	return defs
}

// All returns every registered trigger in registration order.
func (r *Registry) All() []models.TriggerDefinition {
	defs := make([]models.TriggerDefinition, 0, len(r.entries))
	for _, e := range r.entries {
		defs = append(defs, e.def)
	}
	return defs
}

// Len returns the number of registered triggers.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Clear removes every trigger.
func (r *Registry) Clear() {
	r.entries = nil
}

// Evaluate checks every registered trigger against the clock value now and
// returns the event ids whose triggers fired, in registration order. Fired
// one-time triggers are removed; repeatable ones re-arm from now. A trigger
// with an unrecognized type or a malformed condition never fires and never
// produces an error.
func (r *Registry) Evaluate(now float64) []string {
	var fired []string
	kept := r.entries[:0]
	for _, e := range r.entries {
		if !r.satisfied(e, now) {
			kept = append(kept, e)
			continue
		}
		fired = append(fired, e.def.EventID)
		logger.L().Debug("Trigger fired", "event_id", e.def.EventID, "trigger_type", e.def.Type, "clock", now)
		if e.def.IsOneTime() {
			continue
		}
		at := now
		e.lastFired = &at
		kept = append(kept, e)
	}
	r.entries = kept
	return fired
}

func (r *Registry) satisfied(e *entry, now float64) bool {
	c := e.def.Condition
	switch e.def.Type {
	case models.TriggerTypeTime:
		switch {
		case c.Delay != nil:
			return now > *c.Delay
		case c.Interval != nil:
			last := e.armedAt
			if e.lastFired != nil {
				last = *e.lastFired
			}
			return now-last >= *c.Interval
		}
		return false
	case models.TriggerTypeFlag:
		if len(c.Flags) > 0 {
			for _, sub := range c.Flags {
				if !r.flagSatisfied(sub) {
					return false
				}
			}
			return true
		}
		if c.Flag != "" {
			return r.flagSatisfied(models.FlagCondition{Flag: c.Flag, Operator: c.Operator, Value: c.Value})
		}
		return false
	}
	return false
}

func (r *Registry) flagSatisfied(c models.FlagCondition) bool {
	if c.Flag == "" {
		return false
	}
	op := c.Operator
	if op == "" {
		op = models.OperatorEquals
	}
	value, ok := r.store.Get(c.Flag)
	if !ok {
		// An unset flag only satisfies an inequality against a set value.
		return op == models.OperatorNotEquals && c.Value != nil
	}
	return compare(value, op, c.Value)
}

// compare applies op to a flag value and a condition value. Numbers compare
// numerically across Go's numeric types, strings lexically; everything else
// supports only equality, via deep comparison. Unordered operands and
// unknown operators yield false.
func compare(a any, op string, b any) bool {
	if na, aNum := flags.Numeric(a); aNum {
		nb, bNum := flags.Numeric(b)
		if !bNum {
			return op == models.OperatorNotEquals
		}
		switch op {
		case models.OperatorEquals:
			return na == nb
		case models.OperatorNotEquals:
			return na != nb
		case models.OperatorGreater:
			return na > nb
		case models.OperatorGreaterOrEqual:
			return na >= nb
		case models.OperatorLess:
			return na < nb
		case models.OperatorLessOrEqual:
			return na <= nb
		}
		return false
	}

	if sa, aStr := a.(string); aStr {
		sb, bStr := b.(string)
		if !bStr {
			return op == models.OperatorNotEquals
		}
		switch op {
		case models.OperatorEquals:
			return sa == sb
		case models.OperatorNotEquals:
			return sa != sb
		case models.OperatorGreater:
			return sa > sb
		case models.OperatorGreaterOrEqual:
			return sa >= sb
		case models.OperatorLess:
			return sa < sb
		case models.OperatorLessOrEqual:
			return sa <= sb
		}
		return false
	}

	switch op {
	case models.OperatorEquals:
		return reflect.DeepEqual(a, b)
	case models.OperatorNotEquals:
		return !reflect.DeepEqual(a, b)
	}
	return false
}
