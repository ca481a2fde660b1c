package character

// CombatStats is the derived combat block. The calculators rebuild it
// wholesale; nothing else writes to it.
type CombatStats struct {
	AC int `json:"ac"`
	// ArmorPenalty is set when wearing armor without proficiency
	ArmorPenalty bool `json:"armorPenalty,omitempty"`
	// StrengthPenalty is set when heavy armor's strength requirement
	// is unmet; it also costs 10 feet of speed
	StrengthPenalty bool `json:"strengthPenalty,omitempty"`

	Speed      int `json:"speed"`
	FlySpeed   int `json:"flySpeed,omitempty"`
	Initiative int `json:"initiative"`

	ProficiencyBonus int `json:"proficiencyBonus"`

	SpellSaveDC      int `json:"spellSaveDC,omitempty"`
	SpellAttackBonus int `json:"spellAttackBonus,omitempty"`
	PreparedCapacity int `json:"preparedCapacity,omitempty"`

	Attacks []AttackRow `json:"attacks,omitempty"`
}

// AttackRow is one weapon line on the sheet
type AttackRow struct {
	WeaponID    string `json:"weaponId"`
	Name        string `json:"name"`
	AttackBonus int    `json:"attackBonus"`
	Damage      string `json:"damage"`
	DamageBonus int    `json:"damageBonus"`
	Proficient  bool   `json:"proficient"`
}

// Clone returns a copy of the combat block
func (cs *CombatStats) Clone() *CombatStats {
	if cs == nil {
		return nil
	}
	cp := *cs
	cp.Attacks = append([]AttackRow(nil), cs.Attacks...)
	return &cp
}
