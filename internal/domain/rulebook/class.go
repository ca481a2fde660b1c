package rulebook

import "github.com/charforge/charforge/internal/domain/shared"

// SpellcastingType says how a class learns and prepares spells
type SpellcastingType string

const (
	// SpellcastingPrepared classes prepare from their full list each day
	SpellcastingPrepared SpellcastingType = "prepared"
	// SpellcastingKnown classes learn a fixed set as they level
	SpellcastingKnown SpellcastingType = "known"
)

// SpellcastingInfo describes a class's casting rules
type SpellcastingInfo struct {
	Ability shared.Ability   `json:"ability"`
	Type    SpellcastingType `json:"type"`
	// PreparedDivisor divides level in the prepared-count formula
	// (mod + level/divisor). Zero means use the full level.
	PreparedDivisor int `json:"preparedDivisor,omitempty"`
	// RitualCasting allows casting ritual spells without a slot
	RitualCasting bool `json:"ritualCasting,omitempty"`
}

// ClassLevel holds everything a class grants at one level
type ClassLevel struct {
	Features []*Feature          `json:"features,omitempty"`
	Choices  []*ChoiceDescriptor `json:"choices,omitempty"`
}

// Class is the full rule definition for a character class
type Class struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	HitDie int    `json:"hitDie"`

	SavingThrows        []shared.Ability `json:"savingThrows"`
	ArmorProficiencies  []string         `json:"armorProficiencies,omitempty"`
	WeaponProficiencies []string         `json:"weaponProficiencies,omitempty"`
	ToolProficiencies   []string         `json:"toolProficiencies,omitempty"`

	// SkillChoices opens the class skill pick on first application
	SkillChoices *ChoiceDescriptor `json:"skillChoices,omitempty"`

	Spellcasting *SpellcastingInfo `json:"spellcasting,omitempty"`

	// Levels is keyed by character level ("1".."20" in the JSON)
	Levels map[int]*ClassLevel `json:"levels,omitempty"`

	// SubclassLevel is the level at which the subclass unlocks
	SubclassLevel int `json:"subclassLevel,omitempty"`
	// SubclassSource names the subclass directory in the catalog;
	// defaults to the class id when empty
	SubclassSource string `json:"subclassSource,omitempty"`
}

// LevelsThrough returns the class levels from 1 through max in order,
// skipping levels the class defines nothing for.
func (c *Class) LevelsThrough(max int) []int {
	var out []int
	for lvl := 1; lvl <= max; lvl++ {
		if _, ok := c.Levels[lvl]; ok {
			out = append(out, lvl)
		}
	}
	return out
}

// SubclassDir returns the catalog directory holding this class's subclasses
func (c *Class) SubclassDir() string {
	if c.SubclassSource != "" {
		return c.SubclassSource
	}
	return c.ID
}
