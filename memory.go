package passage

import (
	"maps"
	"slices"
)

// Memory is the variable environment of a run. Keys are only ever created or
// overwritten, never deleted. The zero value is ready to use.
type Memory struct {
	vals map[string]string
}

// Get returns the value stored under key and whether it exists.
func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Set stores value under key.
func (m *Memory) Set(key, value string) {
	if m.vals == nil {
		m.vals = make(map[string]string)
	}
	m.vals[key] = value
}

// Merge applies method to the value stored under key and returns the result.
func (m *Memory) Merge(key string, method Method, response string) string {
	prior, ok := m.Get(key)
	v := method.Merge(prior, ok, response)
	m.Set(key, v)
	return v
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	return slices.Sorted(maps.Keys(m.vals))
}

// Len returns the number of stored variables.
func (m *Memory) Len() int { return len(m.vals) }

// Snapshot returns a copy of the stored variables.
func (m *Memory) Snapshot() map[string]string {
	out := make(map[string]string, len(m.vals))
	maps.Copy(out, m.vals)
	return out
}
