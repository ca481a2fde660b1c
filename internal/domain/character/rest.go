package character

import "github.com/charforge/charforge/internal/domain/shared"

// ShortRest restores short-rest pools and, for pact magic casters,
// all spell slots.
func (c *Character) ShortRest() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pool := range c.Pools {
		if pool.Reset.RestoresOn(shared.RestTypeShort) {
			pool.Fill()
		}
	}

	if c.Spellcasting != nil && c.Spellcasting.PactMagic {
		c.Spellcasting.RestoreAllSlots()
	}
}

// LongRest restores HP to maximum, clears temporary HP, refills every
// resting pool, and restores all spell slots.
func (c *Character) LongRest() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.HP = c.MaxHP
	c.TempHP = 0

	for _, pool := range c.Pools {
		if pool.Reset.RestoresOn(shared.RestTypeLong) {
			pool.Fill()
		}
	}

	c.Spellcasting.RestoreAllSlots()
}
