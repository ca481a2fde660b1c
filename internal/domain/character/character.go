package character

import (
	"sync"

	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/shared"
)

// Character is the aggregate record for one player character. The
// progression engine mutates it; the calculators derive Combat from it.
type Character struct {
	ID      string
	OwnerID string
	Name    string
	Level   int

	RaceID   string
	RaceName string

	ClassID   string
	ClassName string
	HitDie    int

	SubclassID   string
	SubclassName string

	BackgroundID   string
	BackgroundName string

	// AbilityScores are the raw rolled/assigned scores; RacialBonuses
	// stay separate so changing race never corrupts the base scores
	AbilityScores map[shared.Ability]int
	RacialBonuses map[shared.Ability]int

	MaxHP  int
	HP     int
	TempHP int

	SavingThrows        *shared.Set
	Skills              *shared.Set
	ArmorProficiencies  *shared.Set
	WeaponProficiencies *shared.Set
	ToolProficiencies   *shared.Set
	Languages           *shared.Set

	Features []*rulebook.Feature

	Spellcasting *Spellcasting
	Infusions    *Infusions
	Invocations  *shared.Set
	PactBoon     string

	RaceGrants       *RaceGrants
	BackgroundGrants *BackgroundGrants

	PendingChoices  []*PendingChoice
	ResolvedChoices map[string][]string

	Equipment *Equipment
	Pools     map[string]*shared.Pool

	// Combat is derived state; never mutated directly, always replaced
	// wholesale by the calculators
	Combat *CombatStats

	Speed    int
	FlySpeed int

	mu sync.Mutex
}

// Equipment tracks what the character wears and carries
type Equipment struct {
	Armor   string   `json:"armor,omitempty"`
	Shield  bool     `json:"shield,omitempty"`
	Weapons []string `json:"weapons,omitempty"`
	Items   []string `json:"items,omitempty"`
	// WeaponBonuses holds per-weapon enhancement bonuses (a +1 blade),
	// keyed by weapon id, added to both attack and damage
	WeaponBonuses map[string]int `json:"weaponBonuses,omitempty"`
	// ACBonus is the sum of flat AC modifiers from magic items
	ACBonus int `json:"acBonus,omitempty"`
	// ACOverride replaces the computed AC entirely when positive
	ACOverride int `json:"acOverride,omitempty"`
}

// RaceGrants shadows exactly what the current race added, so a race
// change strips only what it granted.
type RaceGrants struct {
	Skills    *shared.Set `json:"skills,omitempty"`
	Weapons   *shared.Set `json:"weapons,omitempty"`
	Languages *shared.Set `json:"languages,omitempty"`
}

// BackgroundGrants shadows exactly what the current background added,
// so removing it strips only what it granted.
type BackgroundGrants struct {
	Skills    *shared.Set `json:"skills,omitempty"`
	Tools     *shared.Set `json:"tools,omitempty"`
	Languages *shared.Set `json:"languages,omitempty"`
	Vehicles  *shared.Set `json:"vehicles,omitempty"`
	FeatureID string      `json:"featureId,omitempty"`
	Equipment []string    `json:"equipment,omitempty"`
}

// New creates an empty character with every collection initialized
func New(id, ownerID, name string) *Character {
	return &Character{
		ID:                  id,
		OwnerID:             ownerID,
		Name:                name,
		Level:               1,
		AbilityScores:       make(map[shared.Ability]int),
		RacialBonuses:       make(map[shared.Ability]int),
		SavingThrows:        shared.NewSet(),
		Skills:              shared.NewSet(),
		ArmorProficiencies:  shared.NewSet(),
		WeaponProficiencies: shared.NewSet(),
		ToolProficiencies:   shared.NewSet(),
		Languages:           shared.NewSet(),
		Invocations:         shared.NewSet(),
		ResolvedChoices:     make(map[string][]string),
		Equipment:           &Equipment{},
		Pools:               make(map[string]*shared.Pool),
	}
}

// EnsureCollections initializes any nil collection so engine code never
// needs per-field guards. Snapshots from older exports may omit fields.
func (c *Character) EnsureCollections() {
	if c.AbilityScores == nil {
		c.AbilityScores = make(map[shared.Ability]int)
	}
	if c.RacialBonuses == nil {
		c.RacialBonuses = make(map[shared.Ability]int)
	}
	if c.SavingThrows == nil {
		c.SavingThrows = shared.NewSet()
	}
	if c.Skills == nil {
		c.Skills = shared.NewSet()
	}
	if c.ArmorProficiencies == nil {
		c.ArmorProficiencies = shared.NewSet()
	}
	if c.WeaponProficiencies == nil {
		c.WeaponProficiencies = shared.NewSet()
	}
	if c.ToolProficiencies == nil {
		c.ToolProficiencies = shared.NewSet()
	}
	if c.Languages == nil {
		c.Languages = shared.NewSet()
	}
	if c.Invocations == nil {
		c.Invocations = shared.NewSet()
	}
	if c.ResolvedChoices == nil {
		c.ResolvedChoices = make(map[string][]string)
	}
	if c.Equipment == nil {
		c.Equipment = &Equipment{}
	}
	if c.Pools == nil {
		c.Pools = make(map[string]*shared.Pool)
	}
}

// TotalAbilityScore returns raw score plus racial bonus
func (c *Character) TotalAbilityScore(a shared.Ability) int {
	return c.AbilityScores[a] + c.RacialBonuses[a]
}

// AddFeature appends a feature only if no feature with the same id is
// already present. Returns true when added.
func (c *Character) AddFeature(f *rulebook.Feature) bool {
	if f == nil {
		return false
	}
	for _, existing := range c.Features {
		if existing.ID == f.ID {
			return false
		}
	}
	c.Features = append(c.Features, f)
	return true
}

// RemoveFeature drops the feature with the given id. Returns true when
// something was removed.
func (c *Character) RemoveFeature(id string) bool {
	for i, f := range c.Features {
		if f.ID == id {
			c.Features = append(c.Features[:i], c.Features[i+1:]...)
			return true
		}
	}
	return false
}

// HasFeature reports whether a feature with the given id is present
func (c *Character) HasFeature(id string) bool {
	for _, f := range c.Features {
		if f.ID == id {
			return true
		}
	}
	return false
}

// HasEffect reports whether any feature carries the given effect tag
func (c *Character) HasEffect(tag string) bool {
	for _, f := range c.Features {
		for _, e := range f.Effects {
			if e == tag {
				return true
			}
		}
	}
	return false
}

// Damage applies damage, consuming temporary HP first
func (c *Character) Damage(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if amount <= 0 {
		return
	}
	if c.TempHP > 0 {
		absorbed := amount
		if absorbed > c.TempHP {
			absorbed = c.TempHP
		}
		c.TempHP -= absorbed
		amount -= absorbed
	}
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
}

// Heal restores HP up to the maximum
func (c *Character) Heal(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if amount <= 0 {
		return
	}
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}

// UsePool spends n from the named pool
func (c *Character) UsePool(name string, n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	pool, ok := c.Pools[name]
	if !ok {
		return false
	}
	return pool.Use(n)
}

// Clone returns a deep copy of the character
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	cp := &Character{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		Name:           c.Name,
		Level:          c.Level,
		RaceID:         c.RaceID,
		RaceName:       c.RaceName,
		ClassID:        c.ClassID,
		ClassName:      c.ClassName,
		HitDie:         c.HitDie,
		SubclassID:     c.SubclassID,
		SubclassName:   c.SubclassName,
		BackgroundID:   c.BackgroundID,
		BackgroundName: c.BackgroundName,
		MaxHP:          c.MaxHP,
		HP:             c.HP,
		TempHP:         c.TempHP,
		PactBoon:       c.PactBoon,
		Speed:          c.Speed,
		FlySpeed:       c.FlySpeed,

		AbilityScores: cloneIntMap(c.AbilityScores),
		RacialBonuses: cloneIntMap(c.RacialBonuses),

		SavingThrows:        c.SavingThrows.Clone(),
		Skills:              c.Skills.Clone(),
		ArmorProficiencies:  c.ArmorProficiencies.Clone(),
		WeaponProficiencies: c.WeaponProficiencies.Clone(),
		ToolProficiencies:   c.ToolProficiencies.Clone(),
		Languages:           c.Languages.Clone(),
		Invocations:         c.Invocations.Clone(),

		Spellcasting: c.Spellcasting.Clone(),
		Infusions:    c.Infusions.Clone(),
		Combat:       c.Combat.Clone(),
	}

	cp.Features = make([]*rulebook.Feature, len(c.Features))
	copy(cp.Features, c.Features)

	if c.RaceGrants != nil {
		cp.RaceGrants = &RaceGrants{
			Skills:    c.RaceGrants.Skills.Clone(),
			Weapons:   c.RaceGrants.Weapons.Clone(),
			Languages: c.RaceGrants.Languages.Clone(),
		}
	}

	if c.BackgroundGrants != nil {
		cp.BackgroundGrants = &BackgroundGrants{
			Skills:    c.BackgroundGrants.Skills.Clone(),
			Tools:     c.BackgroundGrants.Tools.Clone(),
			Languages: c.BackgroundGrants.Languages.Clone(),
			Vehicles:  c.BackgroundGrants.Vehicles.Clone(),
			FeatureID: c.BackgroundGrants.FeatureID,
			Equipment: append([]string(nil), c.BackgroundGrants.Equipment...),
		}
	}

	cp.PendingChoices = make([]*PendingChoice, len(c.PendingChoices))
	for i, pc := range c.PendingChoices {
		cpPC := *pc
		cpPC.From = append([]string(nil), pc.From...)
		cp.PendingChoices[i] = &cpPC
	}

	cp.ResolvedChoices = make(map[string][]string, len(c.ResolvedChoices))
	for k, v := range c.ResolvedChoices {
		cp.ResolvedChoices[k] = append([]string(nil), v...)
	}

	if c.Equipment != nil {
		eq := *c.Equipment
		eq.Weapons = append([]string(nil), c.Equipment.Weapons...)
		eq.Items = append([]string(nil), c.Equipment.Items...)
		if c.Equipment.WeaponBonuses != nil {
			eq.WeaponBonuses = make(map[string]int, len(c.Equipment.WeaponBonuses))
			for id, bonus := range c.Equipment.WeaponBonuses {
				eq.WeaponBonuses[id] = bonus
			}
		}
		cp.Equipment = &eq
	}

	cp.Pools = make(map[string]*shared.Pool, len(c.Pools))
	for name, pool := range c.Pools {
		cp.Pools[name] = pool.Clone()
	}

	return cp
}

func cloneIntMap(m map[shared.Ability]int) map[shared.Ability]int {
	out := make(map[shared.Ability]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
