package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook/calculators"
	"github.com/charforge/charforge/internal/domain/shared"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet <id>",
	Short: "Show the derived character sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService()
		if err != nil {
			return err
		}
		ch, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Print(sheetString(ch))
		return nil
	},
}

func sheetString(ch *character.Character) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s — level %d %s %s\n", ch.Name, ch.Level, ch.RaceName, ch.ClassName)
	if ch.SubclassName != "" {
		fmt.Fprintf(&b, "Subclass: %s\n", ch.SubclassName)
	}
	if ch.BackgroundName != "" {
		fmt.Fprintf(&b, "Background: %s\n", ch.BackgroundName)
	}
	fmt.Fprintf(&b, "HP: %d/%d", ch.HP, ch.MaxHP)
	if ch.TempHP > 0 {
		fmt.Fprintf(&b, " (+%d temp)", ch.TempHP)
	}
	b.WriteString("\n")

	for _, ability := range shared.Abilities {
		score := ch.TotalAbilityScore(ability)
		fmt.Fprintf(&b, "%s %d (%+d)  ", strings.ToUpper(string(ability)), score,
			calculators.AbilityModifier(score))
	}
	b.WriteString("\n")

	if c := ch.Combat; c != nil {
		fmt.Fprintf(&b, "AC %d  Speed %d  Initiative %+d  Proficiency %+d\n",
			c.AC, c.Speed, c.Initiative, c.ProficiencyBonus)
		if c.ArmorPenalty {
			b.WriteString("! wearing armor without proficiency\n")
		}
		if c.StrengthPenalty {
			b.WriteString("! armor strength requirement unmet\n")
		}
		if c.SpellSaveDC > 0 {
			fmt.Fprintf(&b, "Spell save DC %d  Spell attack %+d\n", c.SpellSaveDC, c.SpellAttackBonus)
		}
		for _, atk := range c.Attacks {
			fmt.Fprintf(&b, "  %s %+d (%s %+d)\n", atk.Name, atk.AttackBonus, atk.Damage, atk.DamageBonus)
		}
	}

	if skills := ch.Skills.Items(); len(skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(skills, ", "))
	}
	if saves := ch.SavingThrows.Items(); len(saves) > 0 {
		fmt.Fprintf(&b, "Saving throws: %s\n", strings.Join(saves, ", "))
	}

	if sc := ch.Spellcasting; sc != nil {
		if cantrips := sc.Cantrips.Items(); len(cantrips) > 0 {
			fmt.Fprintf(&b, "Cantrips: %s\n", strings.Join(cantrips, ", "))
		}
		if prepared := sc.Prepared.Items(); len(prepared) > 0 {
			fmt.Fprintf(&b, "Prepared: %s\n", strings.Join(prepared, ", "))
		}
		if always := sc.AlwaysPrepared.Items(); len(always) > 0 {
			fmt.Fprintf(&b, "Always prepared: %s\n", strings.Join(always, ", "))
		}
		var slots []string
		for lvl := 1; lvl <= 9; lvl++ {
			if max := sc.SlotsMax[lvl]; max > 0 {
				slots = append(slots, fmt.Sprintf("L%d %d/%d", lvl, max-sc.SlotsUsed[lvl], max))
			}
		}
		if len(slots) > 0 {
			fmt.Fprintf(&b, "Slots: %s\n", strings.Join(slots, "  "))
		}
	}

	for name, pool := range ch.Pools {
		fmt.Fprintf(&b, "%s: %d/%d\n", name, pool.Current, pool.Max)
	}

	if len(ch.PendingChoices) > 0 {
		b.WriteString("Pending choices:\n")
		for _, pc := range ch.PendingChoices {
			fmt.Fprintf(&b, "  %s (pick %d)\n", pc.Kind, pc.Choose)
		}
	}

	return b.String()
}

func init() {
	rootCmd.AddCommand(sheetCmd)
}
