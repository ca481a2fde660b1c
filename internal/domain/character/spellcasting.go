package character

import (
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/shared"
)

// Spellcasting is the casting block. Once a character has one it is
// never destroyed by progression replays: losing the casting source
// only clears Enabled, so the spell sets survive a later re-grant
// (a martial class whose subclass gives casting, replayed on level-up).
type Spellcasting struct {
	Ability shared.Ability            `json:"ability"`
	Type    rulebook.SpellcastingType `json:"type"`
	// Enabled gates casting without discarding accumulated spells
	Enabled bool `json:"enabled"`
	// PactMagic slots refresh on a short rest (warlock)
	PactMagic bool `json:"pactMagic,omitempty"`
	// PreparedDivisor divides level in the prepared-count formula
	// (mod + level/divisor); zero or one means the full level counts
	PreparedDivisor int `json:"preparedDivisor,omitempty"`

	// CantripsKnown is the table-driven cap on cantrips
	CantripsKnown int `json:"cantripsKnown"`

	Cantrips *shared.Set `json:"cantrips,omitempty"`
	// Known holds the spellbook / known-spell ids
	Known    *shared.Set `json:"known,omitempty"`
	Prepared *shared.Set `json:"prepared,omitempty"`
	// AlwaysPrepared spells never count against prepared capacity and
	// survive the capacity clamp
	AlwaysPrepared *shared.Set `json:"alwaysPrepared,omitempty"`

	// SlotsMax and SlotsUsed are keyed by spell level 1..9
	SlotsMax  map[int]int `json:"slotsMax,omitempty"`
	SlotsUsed map[int]int `json:"slotsUsed,omitempty"`
}

// NewSpellcasting creates an empty casting block for the given ability
func NewSpellcasting(ability shared.Ability, castType rulebook.SpellcastingType) *Spellcasting {
	return &Spellcasting{
		Ability:        ability,
		Type:           castType,
		Enabled:        true,
		Cantrips:       shared.NewSet(),
		Known:          shared.NewSet(),
		Prepared:       shared.NewSet(),
		AlwaysPrepared: shared.NewSet(),
		SlotsMax:       make(map[int]int),
		SlotsUsed:      make(map[int]int),
	}
}

// SetSlots replaces the slot maxima from a table row, trimming usage
// that exceeds the new maximum. Row is indexed by spell level minus one.
func (s *Spellcasting) SetSlots(row []int) {
	s.SlotsMax = make(map[int]int, len(row))
	for i, n := range row {
		if n > 0 {
			s.SlotsMax[i+1] = n
		}
	}
	if s.SlotsUsed == nil {
		s.SlotsUsed = make(map[int]int)
	}
	for lvl, used := range s.SlotsUsed {
		max := s.SlotsMax[lvl]
		if used > max {
			s.SlotsUsed[lvl] = max
		}
	}
}

// SlotsRemaining returns unused slots at a spell level
func (s *Spellcasting) SlotsRemaining(level int) int {
	if s == nil {
		return 0
	}
	return s.SlotsMax[level] - s.SlotsUsed[level]
}

// UseSlot expends one slot at the given spell level
func (s *Spellcasting) UseSlot(level int) bool {
	if s.SlotsRemaining(level) <= 0 {
		return false
	}
	if s.SlotsUsed == nil {
		s.SlotsUsed = make(map[int]int)
	}
	s.SlotsUsed[level]++
	return true
}

// FreeSlot returns one expended slot at the given spell level
func (s *Spellcasting) FreeSlot(level int) {
	if s == nil || s.SlotsUsed[level] <= 0 {
		return
	}
	s.SlotsUsed[level]--
}

// RestoreAllSlots clears slot usage
func (s *Spellcasting) RestoreAllSlots() {
	if s == nil {
		return
	}
	s.SlotsUsed = make(map[int]int)
}

// IsPrepared reports whether a spell is castable as prepared, counting
// the always-prepared list
func (s *Spellcasting) IsPrepared(spellID string) bool {
	if s == nil {
		return false
	}
	return s.Prepared.Has(spellID) || s.AlwaysPrepared.Has(spellID)
}

// Clone returns a deep copy
func (s *Spellcasting) Clone() *Spellcasting {
	if s == nil {
		return nil
	}
	cp := &Spellcasting{
		Ability:         s.Ability,
		Type:            s.Type,
		Enabled:         s.Enabled,
		PactMagic:       s.PactMagic,
		PreparedDivisor: s.PreparedDivisor,
		CantripsKnown:   s.CantripsKnown,
		Cantrips:        s.Cantrips.Clone(),
		Known:           s.Known.Clone(),
		Prepared:        s.Prepared.Clone(),
		AlwaysPrepared:  s.AlwaysPrepared.Clone(),
		SlotsMax:        make(map[int]int, len(s.SlotsMax)),
		SlotsUsed:       make(map[int]int, len(s.SlotsUsed)),
	}
	for k, v := range s.SlotsMax {
		cp.SlotsMax[k] = v
	}
	for k, v := range s.SlotsUsed {
		cp.SlotsUsed[k] = v
	}
	return cp
}
