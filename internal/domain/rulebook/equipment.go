package rulebook

// ArmorCategory determines the dex contribution to AC
type ArmorCategory string

const (
	ArmorCategoryLight  ArmorCategory = "light"
	ArmorCategoryMedium ArmorCategory = "medium"
	ArmorCategoryHeavy  ArmorCategory = "heavy"
	ArmorCategoryShield ArmorCategory = "shield"
)

// Armor is a single armor table entry
type Armor struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category ArmorCategory `json:"category"`
	BaseAC   int           `json:"baseAC"`
	// StrengthRequirement slows the wearer when unmet (heavy armor)
	StrengthRequirement int  `json:"strengthRequirement,omitempty"`
	StealthDisadvantage bool `json:"stealthDisadvantage,omitempty"`
}

// DexCap returns the maximum dex modifier the armor admits into AC;
// -1 means uncapped.
func (a *Armor) DexCap() int {
	switch a.Category {
	case ArmorCategoryLight:
		return -1
	case ArmorCategoryMedium:
		return 2
	default:
		return 0
	}
}

// WeaponCategory splits weapons into proficiency groups
type WeaponCategory string

const (
	WeaponCategorySimple  WeaponCategory = "simple"
	WeaponCategoryMartial WeaponCategory = "martial"
)

// Weapon is a single weapon table entry
type Weapon struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category WeaponCategory `json:"category"`
	Damage   string         `json:"damage"`
	// Properties: "finesse", "ranged", "two-handed", "light", ...
	Properties []string `json:"properties,omitempty"`
	Range      string   `json:"range,omitempty"`
}

// HasProperty reports whether the weapon carries the named property
func (w *Weapon) HasProperty(name string) bool {
	for _, p := range w.Properties {
		if p == name {
			return true
		}
	}
	return false
}
