package flags

// Store is a runtime-lifetime mapping from flag names to arbitrary values,
// used to gate trigger conditions and record quest/progress state. Values
// live until cleared; nothing is persisted across restarts.
//
// The store is owned by the engine and mutated only from the host's update
// thread; callers embedding the engine elsewhere must serialize access.
type Store struct {
	values map[string]any
}

// NewStore creates an empty flag store.
func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// Set stores value under name, replacing any existing value.
func (s *Store) Set(name string, value any) {
	s.values[name] = value
}

// Get returns the value stored under name and whether it exists.
func (s *Store) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// GetDefault returns the value stored under name, or fallback when unset.
func (s *Store) GetDefault(name string, fallback any) any {
	if v, ok := s.values[name]; ok {
		return v
	}
	return fallback
}

// Has reports whether name is set.
func (s *Store) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Clear removes name from the store. Clearing an unset flag is a no-op.
func (s *Store) Clear(name string) {
	delete(s.values, name)
}

// ClearAll removes every flag.
func (s *Store) ClearAll() {
	s.values = make(map[string]any)
}

// Increment adds delta to the numeric flag name, treating a missing flag as
// zero. If the existing value is non-numeric the store is left untouched and
// ok is false.
func (s *Store) Increment(name string, delta float64) (value float64, ok bool) {
	current := 0.0
	if existing, exists := s.values[name]; exists {
		n, numeric := Numeric(existing)
		if !numeric {
			return 0, false
		}
		current = n
	}
	current += delta
	s.values[name] = current
	return current, true
}

// All returns a snapshot of every flag. Mutating the returned map does not
// affect the store.
func (s *Store) All() map[string]any {
	snapshot := make(map[string]any, len(s.values))
	for k, v := range s.values {
		snapshot[k] = v
	}
	return snapshot
}

// Len returns the number of flags currently set.
func (s *Store) Len() int {
	return len(s.values)
}

// Numeric coerces v to a float64 when it holds any of Go's numeric types.
// JSON-decoded numbers arrive as float64; YAML-decoded ones as int.
func Numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
