package models

import "math"

// TriggerType indicates what kind of condition arms a trigger.
type TriggerType string

const (
	TriggerTypeTime TriggerType = "time"
	TriggerTypeFlag TriggerType = "flag"
)

// Comparison operators accepted in flag conditions. OperatorEquals is the
// default when a condition names no operator.
const (
	OperatorEquals         = "=="
	OperatorNotEquals      = "!="
	OperatorGreater        = ">"
	OperatorGreaterOrEqual = ">="
	OperatorLess           = "<"
	OperatorLessOrEqual    = "<="
)

// EventHandlers holds the optional lifecycle callbacks a registrant attaches
// to an event definition. The engine invokes them but never defines them; a
// panicking handler propagates to the caller.
type EventHandlers struct {
	OnTrigger  func(data any)
	OnUpdate   func()
	OnComplete func()
	OnPause    func()
	OnResume   func()
}

// EventDefinition describes a triggerable occurrence. Definitions are
// immutable once registered; re-registration under the same ID is rejected.
type EventDefinition struct {
	ID      string `json:"id" yaml:"id"`                               // Unique identifier, required
	Type    string `json:"type" yaml:"type"`                           // Open tag ("dialogue", "spawn", ...), required
	Content any    `json:"content,omitempty" yaml:"content,omitempty"` // Opaque payload, never inspected by the engine
	// Priority orders active events: a lower value means more urgent. A nil
	// pointer means "no priority", which sorts after every explicit value.
	Priority *int           `json:"priority,omitempty" yaml:"priority,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Handlers EventHandlers  `json:"-" yaml:"-"` // Not serializable; re-attached by the consumer on reload
}

// EffectivePriority returns the sort key used for ordering and preemption.
func (d EventDefinition) EffectivePriority() int {
	if d.Priority == nil {
		return math.MaxInt
	}
	return *d.Priority
}

// FlagCondition is a single flag comparison. An empty Operator means
// equality.
type FlagCondition struct {
	Flag     string `json:"flag" yaml:"flag"`
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    any    `json:"value" yaml:"value"`
}

// TriggerCondition covers every condition shape the evaluator understands.
// Exactly one of Delay, Interval, Flag or Flags should be populated; a
// condition that fits none of these shapes never becomes true.
type TriggerCondition struct {
	// Time conditions. Delay is an absolute point on the host's clock; the
	// trigger fires once the clock exceeds it. Interval re-arms: the trigger
	// fires whenever at least Interval has elapsed since it last fired (or
	// since registration, for the first firing).
	Delay    *float64 `json:"delay,omitempty" yaml:"delay,omitempty"`
	Interval *float64 `json:"interval,omitempty" yaml:"interval,omitempty"`

	// Single flag condition.
	Flag     string `json:"flag,omitempty" yaml:"flag,omitempty"`
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty"`

	// Compound flag condition: true iff every subcondition is true.
	Flags []FlagCondition `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// TriggerDefinition arms an event. Triggers have a lifecycle independent of
// the event they reference; the event need not exist until the trigger fires.
type TriggerDefinition struct {
	EventID   string           `json:"eventId" yaml:"event_id"`
	Type      TriggerType      `json:"type" yaml:"type"`
	Condition TriggerCondition `json:"condition" yaml:"condition"`
	// OneTime defaults to true: a fired trigger is removed from the registry.
	// Set it to false for a trigger that persists and may fire again. The
	// pointer distinguishes "unset" from an explicit false.
	OneTime *bool `json:"oneTime,omitempty" yaml:"one_time,omitempty"`
}

// IsOneTime reports whether the trigger should be removed after firing.
func (t TriggerDefinition) IsOneTime() bool {
	return t.OneTime == nil || *t.OneTime
}

// Bundle is the interchange format for event and trigger definitions.
// Handlers are not part of the format and must be re-attached by the
// consumer after loading.
type Bundle struct {
	Events   []EventDefinition   `json:"events" yaml:"events"`
	Triggers []TriggerDefinition `json:"triggers,omitempty" yaml:"triggers,omitempty"`
}
