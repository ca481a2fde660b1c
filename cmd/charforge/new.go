package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charforge/charforge/internal/dice"
	"github.com/charforge/charforge/internal/domain/shared"
	charservice "github.com/charforge/charforge/internal/services/character"
)

var (
	newOwner  string
	newName   string
	newRace   string
	newClass  string
	newLevel  int
	newRoll   bool
	newScores []string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a character",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService()
		if err != nil {
			return err
		}

		scores, err := abilityScores()
		if err != nil {
			return err
		}

		ch, err := svc.Create(cmd.Context(), &charservice.CreateInput{
			OwnerID:       newOwner,
			Name:          newName,
			RaceID:        newRace,
			ClassID:       newClass,
			Level:         newLevel,
			AbilityScores: scores,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created %s (%s)\n", ch.Name, ch.ID)
		for _, ability := range shared.Abilities {
			fmt.Printf("  %s %d\n", strings.ToUpper(string(ability)), ch.TotalAbilityScore(ability))
		}
		return nil
	},
}

// abilityScores builds the score map from --scores, or rolls
// 4d6-drop-lowest per ability with --roll
func abilityScores() (map[shared.Ability]int, error) {
	scores := make(map[shared.Ability]int)

	if newRoll {
		roller := dice.NewRandomRoller()
		for _, ability := range shared.Abilities {
			result, err := roller.RollAbilityScore()
			if err != nil {
				return nil, err
			}
			scores[ability] = result.Total
		}
		return scores, nil
	}

	for _, entry := range newScores {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad score %q, want ability=value", entry)
		}
		value, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad score %q: %w", entry, err)
		}
		scores[shared.Ability(parts[0])] = value
	}
	return scores, nil
}

func init() {
	newCmd.Flags().StringVar(&newOwner, "owner", "local", "owner id")
	newCmd.Flags().StringVar(&newName, "name", "", "character name")
	newCmd.Flags().StringVar(&newRace, "race", "", "race id")
	newCmd.Flags().StringVar(&newClass, "class", "", "class id")
	newCmd.Flags().IntVar(&newLevel, "level", 1, "starting level")
	newCmd.Flags().BoolVar(&newRoll, "roll", false, "roll ability scores (4d6 drop lowest)")
	newCmd.Flags().StringSliceVar(&newScores, "scores", nil, "ability scores, e.g. str=15,dex=14")
	_ = newCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(newCmd)
}
