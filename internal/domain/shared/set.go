package shared

import (
	"encoding/json"
	"sort"
)

// Set is a string set that serializes as a sorted JSON array, so snapshots
// of the same state are byte-identical regardless of insertion order.
type Set struct {
	items map[string]struct{}
}

// NewSet creates a set holding the given values
func NewSet(values ...string) *Set {
	s := &Set{items: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.items[v] = struct{}{}
	}
	return s
}

// Add inserts a value. Returns false if it was already present.
func (s *Set) Add(v string) bool {
	if s.items == nil {
		s.items = make(map[string]struct{})
	}
	if _, ok := s.items[v]; ok {
		return false
	}
	s.items[v] = struct{}{}
	return true
}

// AddAll inserts every value
func (s *Set) AddAll(values ...string) {
	for _, v := range values {
		s.Add(v)
	}
}

// Remove deletes a value. Returns false if it was not present.
func (s *Set) Remove(v string) bool {
	if s.items == nil {
		return false
	}
	if _, ok := s.items[v]; !ok {
		return false
	}
	delete(s.items, v)
	return true
}

// Has reports membership
func (s *Set) Has(v string) bool {
	if s == nil || s.items == nil {
		return false
	}
	_, ok := s.items[v]
	return ok
}

// Len returns the number of members
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns the members in sorted order
func (s *Set) Items() []string {
	if s == nil || len(s.items) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Clear removes every member
func (s *Set) Clear() {
	s.items = nil
}

// Replace swaps the contents for the given values
func (s *Set) Replace(values ...string) {
	s.items = make(map[string]struct{}, len(values))
	for _, v := range values {
		s.items[v] = struct{}{}
	}
}

// Clone returns an independent copy
func (s *Set) Clone() *Set {
	if s == nil {
		return nil
	}
	cp := &Set{items: make(map[string]struct{}, len(s.items))}
	for v := range s.items {
		cp.items[v] = struct{}{}
	}
	return cp
}

// MarshalJSON encodes the set as a sorted array
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// UnmarshalJSON decodes from a JSON array
func (s *Set) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	s.Replace(values...)
	return nil
}
