package character

import (
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/shared"
)

// Snapshot is the serialization form of a Character. It carries no
// behavior and no mutex, so it marshals cleanly to JSON for storage
// and export. Sets serialize as sorted arrays, making snapshots of the
// same state byte-identical.
type Snapshot struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
	Name    string `json:"name"`
	Level   int    `json:"level"`

	RaceID   string `json:"raceId,omitempty"`
	RaceName string `json:"raceName,omitempty"`

	ClassID   string `json:"classId,omitempty"`
	ClassName string `json:"className,omitempty"`
	HitDie    int    `json:"hitDie,omitempty"`

	SubclassID   string `json:"subclassId,omitempty"`
	SubclassName string `json:"subclassName,omitempty"`

	BackgroundID   string `json:"backgroundId,omitempty"`
	BackgroundName string `json:"backgroundName,omitempty"`

	AbilityScores map[shared.Ability]int `json:"abilityScores,omitempty"`
	RacialBonuses map[shared.Ability]int `json:"racialBonuses,omitempty"`

	MaxHP  int `json:"maxHp"`
	HP     int `json:"hp"`
	TempHP int `json:"tempHp,omitempty"`

	SavingThrows        *shared.Set `json:"savingThrows,omitempty"`
	Skills              *shared.Set `json:"skills,omitempty"`
	ArmorProficiencies  *shared.Set `json:"armorProficiencies,omitempty"`
	WeaponProficiencies *shared.Set `json:"weaponProficiencies,omitempty"`
	ToolProficiencies   *shared.Set `json:"toolProficiencies,omitempty"`
	Languages           *shared.Set `json:"languages,omitempty"`

	Features []*rulebook.Feature `json:"features,omitempty"`

	Spellcasting *Spellcasting `json:"spellcasting,omitempty"`
	Infusions    *Infusions    `json:"infusions,omitempty"`
	Invocations  *shared.Set   `json:"invocations,omitempty"`
	PactBoon     string        `json:"pactBoon,omitempty"`

	RaceGrants       *RaceGrants       `json:"raceGrants,omitempty"`
	BackgroundGrants *BackgroundGrants `json:"backgroundGrants,omitempty"`

	PendingChoices  []*PendingChoice    `json:"pendingChoices,omitempty"`
	ResolvedChoices map[string][]string `json:"resolvedChoices,omitempty"`

	Equipment *Equipment              `json:"equipment,omitempty"`
	Pools     map[string]*shared.Pool `json:"pools,omitempty"`

	Combat *CombatStats `json:"combat,omitempty"`

	Speed    int `json:"speed,omitempty"`
	FlySpeed int `json:"flySpeed,omitempty"`
}

// ToSnapshot converts the character to its serialization form. The
// snapshot owns deep copies, so later mutations of the character do
// not leak into it.
func (c *Character) ToSnapshot() *Snapshot {
	cp := c.Clone()
	return &Snapshot{
		ID:                  cp.ID,
		OwnerID:             cp.OwnerID,
		Name:                cp.Name,
		Level:               cp.Level,
		RaceID:              cp.RaceID,
		RaceName:            cp.RaceName,
		ClassID:             cp.ClassID,
		ClassName:           cp.ClassName,
		HitDie:              cp.HitDie,
		SubclassID:          cp.SubclassID,
		SubclassName:        cp.SubclassName,
		BackgroundID:        cp.BackgroundID,
		BackgroundName:      cp.BackgroundName,
		AbilityScores:       cp.AbilityScores,
		RacialBonuses:       cp.RacialBonuses,
		MaxHP:               cp.MaxHP,
		HP:                  cp.HP,
		TempHP:              cp.TempHP,
		SavingThrows:        cp.SavingThrows,
		Skills:              cp.Skills,
		ArmorProficiencies:  cp.ArmorProficiencies,
		WeaponProficiencies: cp.WeaponProficiencies,
		ToolProficiencies:   cp.ToolProficiencies,
		Languages:           cp.Languages,
		Features:            cp.Features,
		Spellcasting:        cp.Spellcasting,
		Infusions:           cp.Infusions,
		Invocations:         cp.Invocations,
		PactBoon:            cp.PactBoon,
		RaceGrants:          cp.RaceGrants,
		BackgroundGrants:    cp.BackgroundGrants,
		PendingChoices:      cp.PendingChoices,
		ResolvedChoices:     cp.ResolvedChoices,
		Equipment:           cp.Equipment,
		Pools:               cp.Pools,
		Combat:              cp.Combat,
		Speed:               cp.Speed,
		FlySpeed:            cp.FlySpeed,
	}
}

// FromSnapshot rebuilds a character from its serialization form
func FromSnapshot(s *Snapshot) *Character {
	if s == nil {
		return nil
	}
	c := &Character{
		ID:                  s.ID,
		OwnerID:             s.OwnerID,
		Name:                s.Name,
		Level:               s.Level,
		RaceID:              s.RaceID,
		RaceName:            s.RaceName,
		ClassID:             s.ClassID,
		ClassName:           s.ClassName,
		HitDie:              s.HitDie,
		SubclassID:          s.SubclassID,
		SubclassName:        s.SubclassName,
		BackgroundID:        s.BackgroundID,
		BackgroundName:      s.BackgroundName,
		AbilityScores:       s.AbilityScores,
		RacialBonuses:       s.RacialBonuses,
		MaxHP:               s.MaxHP,
		HP:                  s.HP,
		TempHP:              s.TempHP,
		SavingThrows:        s.SavingThrows,
		Skills:              s.Skills,
		ArmorProficiencies:  s.ArmorProficiencies,
		WeaponProficiencies: s.WeaponProficiencies,
		ToolProficiencies:   s.ToolProficiencies,
		Languages:           s.Languages,
		Features:            s.Features,
		Spellcasting:        s.Spellcasting,
		Infusions:           s.Infusions,
		Invocations:         s.Invocations,
		PactBoon:            s.PactBoon,
		RaceGrants:          s.RaceGrants,
		BackgroundGrants:    s.BackgroundGrants,
		PendingChoices:      s.PendingChoices,
		ResolvedChoices:     s.ResolvedChoices,
		Equipment:           s.Equipment,
		Pools:               s.Pools,
		Combat:              s.Combat,
		Speed:               s.Speed,
		FlySpeed:            s.FlySpeed,
	}
	c.EnsureCollections()
	return c
}
