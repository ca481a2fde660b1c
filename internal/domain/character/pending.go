package character

import "github.com/charforge/charforge/internal/domain/shared"

// PendingChoice is a decision the player still has to make. Key is
// unique per choice: singleton kinds use the kind itself, per-feature
// choices use "feature:<featureID>".
type PendingChoice struct {
	Key    string            `json:"key"`
	Kind   shared.ChoiceKind `json:"kind"`
	Choose int               `json:"choose"`
	From   []string          `json:"from,omitempty"`
	// Source names what opened the choice (class id, background id, ...)
	Source string `json:"source,omitempty"`
}

// AddPendingChoice appends a pending choice unless one with the same key
// already exists or the key was already resolved. Returns true when added.
func (c *Character) AddPendingChoice(pc *PendingChoice) bool {
	if pc == nil || pc.Choose <= 0 {
		return false
	}
	if _, resolved := c.ResolvedChoices[pc.Key]; resolved {
		return false
	}
	for _, existing := range c.PendingChoices {
		if existing.Key == pc.Key {
			return false
		}
	}
	c.PendingChoices = append(c.PendingChoices, pc)
	return true
}

// FindPendingChoice returns the pending choice with the given key, nil
// when absent
func (c *Character) FindPendingChoice(key string) *PendingChoice {
	for _, pc := range c.PendingChoices {
		if pc.Key == key {
			return pc
		}
	}
	return nil
}

// RemovePendingChoice drops the pending choice with the given key
func (c *Character) RemovePendingChoice(key string) bool {
	for i, pc := range c.PendingChoices {
		if pc.Key == key {
			c.PendingChoices = append(c.PendingChoices[:i], c.PendingChoices[i+1:]...)
			return true
		}
	}
	return false
}

// MarkResolved records the selections for a choice key and clears any
// matching pending entry
func (c *Character) MarkResolved(key string, selections []string) {
	if c.ResolvedChoices == nil {
		c.ResolvedChoices = make(map[string][]string)
	}
	c.ResolvedChoices[key] = append([]string(nil), selections...)
	c.RemovePendingChoice(key)
}

// ReopenChoice clears the resolved flag for a key and queues the
// remaining picks. Used when a cap grows: a choice resolved at the old
// cap re-opens for the delta only. An already-pending entry is updated
// in place so replaying the same progression leaves the queue order
// unchanged.
func (c *Character) ReopenChoice(pc *PendingChoice) {
	delete(c.ResolvedChoices, pc.Key)
	if existing := c.FindPendingChoice(pc.Key); existing != nil {
		existing.Kind = pc.Kind
		existing.Choose = pc.Choose
		existing.From = pc.From
		existing.Source = pc.Source
		return
	}
	c.AddPendingChoice(pc)
}
