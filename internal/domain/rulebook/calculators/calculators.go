// Package calculators derives combat and casting numbers from a
// character record plus the equipment tables. Everything here is pure:
// no catalog access, no mutation except the explicit clamp helpers.
package calculators

import (
	"strconv"
	"strings"

	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/shared"
)

// EffectArmorMastery waives armor proficiency and strength penalties
const EffectArmorMastery = "armor-mastery"

// AbilityModifier converts an ability score to its modifier,
// rounding down for odd scores below 10.
func AbilityModifier(score int) int {
	d := score - 10
	if d >= 0 {
		return d / 2
	}
	return (d - 1) / 2
}

// ProficiencyBonus returns the bonus for a character level (2 at
// levels 1-4, rising by one every four levels).
func ProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	return 2 + (level-1)/4
}

// SpellSaveDC computes 8 + proficiency + casting ability modifier
func SpellSaveDC(level, abilityScore int) int {
	return 8 + ProficiencyBonus(level) + AbilityModifier(abilityScore)
}

// SpellAttackBonus computes proficiency + casting ability modifier
func SpellAttackBonus(level, abilityScore int) int {
	return ProficiencyBonus(level) + AbilityModifier(abilityScore)
}

// PreparedCapacity returns how many spells the character may keep
// prepared, minimum 1. Zero for non-casters, disabled blocks, and
// known-list casters.
func PreparedCapacity(ch *character.Character) int {
	sc := ch.Spellcasting
	if sc == nil || !sc.Enabled || sc.Type != rulebook.SpellcastingPrepared {
		return 0
	}
	mod := AbilityModifier(ch.TotalAbilityScore(sc.Ability))
	levelPart := ch.Level
	if sc.PreparedDivisor > 1 {
		levelPart = ch.Level / sc.PreparedDivisor
	}
	capacity := mod + levelPart
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

// ClampPreparedSpells trims the prepared list down to capacity,
// dropping from the end of the sorted order so the trim is
// deterministic. Always-prepared spells are never touched and never
// count against capacity. Returns the capacity.
func ClampPreparedSpells(ch *character.Character) int {
	sc := ch.Spellcasting
	// a disabled block is mid-replay state, never a reason to trim
	if sc == nil || !sc.Enabled || sc.Prepared == nil {
		return 0
	}
	capacity := PreparedCapacity(ch)
	prepared := sc.Prepared.Items()
	if len(prepared) <= capacity {
		return capacity
	}
	for _, id := range prepared[capacity:] {
		sc.Prepared.Remove(id)
	}
	return capacity
}

// CalculateCombat rebuilds the derived combat block from the character
// plus the armor and weapon tables. Callers replace ch.Combat with the
// result; nothing here mutates the character.
func CalculateCombat(ch *character.Character, armorTable []*rulebook.Armor, weaponTable []*rulebook.Weapon) *character.CombatStats {
	prof := ProficiencyBonus(ch.Level)
	strMod := AbilityModifier(ch.TotalAbilityScore(shared.AbilityStrength))
	dexMod := AbilityModifier(ch.TotalAbilityScore(shared.AbilityDexterity))

	stats := &character.CombatStats{
		ProficiencyBonus: prof,
		Initiative:       dexMod,
		Speed:            ch.Speed,
		FlySpeed:         ch.FlySpeed,
	}

	mastery := ch.HasEffect(EffectArmorMastery)
	armor := findArmor(armorTable, ch.Equipment.Armor)

	if armor == nil {
		stats.AC = 10 + dexMod + unarmoredBonus(ch)
	} else {
		dex := dexMod
		if limit := armor.DexCap(); limit >= 0 && dex > limit {
			dex = limit
		}
		stats.AC = armor.BaseAC + dex

		if !mastery {
			if !armorProficient(ch, armor) {
				stats.ArmorPenalty = true
			}
			if armor.StrengthRequirement > 0 &&
				ch.TotalAbilityScore(shared.AbilityStrength) < armor.StrengthRequirement {
				stats.StrengthPenalty = true
				stats.Speed -= 10
			}
		}
	}

	if ch.Equipment.Shield {
		stats.AC += 2
	}
	stats.AC += ch.Equipment.ACBonus
	if ch.Equipment.ACOverride > 0 {
		stats.AC = ch.Equipment.ACOverride
	}

	applySpeedEffects(ch, stats)

	if sc := ch.Spellcasting; sc != nil && sc.Enabled {
		score := ch.TotalAbilityScore(sc.Ability)
		stats.SpellSaveDC = SpellSaveDC(ch.Level, score)
		stats.SpellAttackBonus = SpellAttackBonus(ch.Level, score)
		stats.PreparedCapacity = PreparedCapacity(ch)
	}

	for _, weaponID := range ch.Equipment.Weapons {
		weapon := findWeapon(weaponTable, weaponID)
		if weapon == nil {
			continue
		}
		stats.Attacks = append(stats.Attacks, attackRow(ch, weapon, strMod, dexMod, prof))
	}

	return stats
}

func findArmor(table []*rulebook.Armor, id string) *rulebook.Armor {
	if id == "" {
		return nil
	}
	for _, a := range table {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func findWeapon(table []*rulebook.Weapon, id string) *rulebook.Weapon {
	for _, w := range table {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func armorProficient(ch *character.Character, armor *rulebook.Armor) bool {
	return ch.ArmorProficiencies.Has(armor.ID) ||
		ch.ArmorProficiencies.Has(string(armor.Category))
}

func weaponProficient(ch *character.Character, weapon *rulebook.Weapon) bool {
	return ch.WeaponProficiencies.Has(weapon.ID) ||
		ch.WeaponProficiencies.Has(string(weapon.Category))
}

func attackRow(ch *character.Character, weapon *rulebook.Weapon, strMod, dexMod, prof int) character.AttackRow {
	mod := strMod
	if weapon.HasProperty("ranged") {
		mod = dexMod
	} else if weapon.HasProperty("finesse") && dexMod > strMod {
		mod = dexMod
	}

	enh := ch.Equipment.WeaponBonuses[weapon.ID]

	row := character.AttackRow{
		WeaponID:    weapon.ID,
		Name:        weapon.Name,
		Damage:      weapon.Damage,
		DamageBonus: mod + enh,
		AttackBonus: mod + enh,
		Proficient:  weaponProficient(ch, weapon),
	}
	if row.Proficient {
		row.AttackBonus += prof
	}
	return row
}

// unarmoredBonus adds a second ability modifier for unarmored-defense
// features ("unarmored-defense:con", "unarmored-defense:wis")
func unarmoredBonus(ch *character.Character) int {
	for _, f := range ch.Features {
		for _, e := range f.Effects {
			if strings.HasPrefix(e, "unarmored-defense:") {
				ability := shared.Ability(strings.TrimPrefix(e, "unarmored-defense:"))
				if shared.IsValidAbility(ability) {
					return AbilityModifier(ch.TotalAbilityScore(ability))
				}
			}
		}
	}
	return 0
}

// applySpeedEffects folds feature speed tags into the combat block:
// "speed+N" and "fly-speed:N"
func applySpeedEffects(ch *character.Character, stats *character.CombatStats) {
	for _, f := range ch.Features {
		for _, e := range f.Effects {
			switch {
			case strings.HasPrefix(e, "speed+"):
				if n, err := strconv.Atoi(strings.TrimPrefix(e, "speed+")); err == nil {
					stats.Speed += n
				}
			case strings.HasPrefix(e, "fly-speed:"):
				if n, err := strconv.Atoi(strings.TrimPrefix(e, "fly-speed:")); err == nil && n > stats.FlySpeed {
					stats.FlySpeed = n
				}
			}
		}
	}
}
