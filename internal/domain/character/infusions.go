package character

import (
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/errors"
)

// Infusions tracks artificer infusions: which are learned, which are
// currently infused into items, and the level-derived caps on both.
type Infusions struct {
	Known  *shared.Set `json:"known,omitempty"`
	Active *shared.Set `json:"active,omitempty"`
	// KnownCap and ActiveCap come from the class level table
	KnownCap  int `json:"knownCap"`
	ActiveCap int `json:"activeCap"`
}

// NewInfusions creates an empty infusion block with the given caps
func NewInfusions(knownCap, activeCap int) *Infusions {
	return &Infusions{
		Known:     shared.NewSet(),
		Active:    shared.NewSet(),
		KnownCap:  knownCap,
		ActiveCap: activeCap,
	}
}

// ToggleActive flips an infusion between active and inactive. Activating
// checks the active cap; deactivating always succeeds.
func (inf *Infusions) ToggleActive(id string) error {
	if !inf.Known.Has(id) {
		return errors.InvalidArgumentf("infusion %s is not known", id)
	}
	if inf.Active.Has(id) {
		inf.Active.Remove(id)
		return nil
	}
	if inf.Active.Len() >= inf.ActiveCap {
		return errors.InvalidArgumentf("already at %d active infusions", inf.ActiveCap)
	}
	inf.Active.Add(id)
	return nil
}

// Clone returns a deep copy
func (inf *Infusions) Clone() *Infusions {
	if inf == nil {
		return nil
	}
	return &Infusions{
		Known:     inf.Known.Clone(),
		Active:    inf.Active.Clone(),
		KnownCap:  inf.KnownCap,
		ActiveCap: inf.ActiveCap,
	}
}
