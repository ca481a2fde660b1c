package rulebook

import "github.com/charforge/charforge/internal/domain/shared"

// Race is the rule definition for a character race
type Race struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	AbilityBonuses map[shared.Ability]int `json:"abilityBonuses,omitempty"`
	Speed          int                    `json:"speed"`
	FlySpeed       int                    `json:"flySpeed,omitempty"`

	Traits []*Feature `json:"traits,omitempty"`

	SkillProficiencies  []string `json:"skillProficiencies,omitempty"`
	WeaponProficiencies []string `json:"weaponProficiencies,omitempty"`
	Languages           []string `json:"languages,omitempty"`
	// LanguageChoices opens a pick-your-own language decision
	LanguageChoices int `json:"languageChoices,omitempty"`
}
