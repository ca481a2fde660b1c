package dice

import (
	"errors"
	"math/rand"
)

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// RollAbilityScore rolls 4d6 and drops the lowest die
	RollAbilityScore() (*RollResult, error)
}

// RollResult holds the outcome of a single dice roll
type RollResult struct {
	Total int   `json:"total"`
	Rolls []int `json:"rolls"`
	Bonus int   `json:"bonus"`
	Count int   `json:"count"`
	Sides int   `json:"sides"`
}

type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	total := 0
	rolls := make([]int, count)
	for i := 0; i < count; i++ {
		roll := rand.Intn(sides) + 1
		rolls[i] = roll
		total += roll
	}

	return &RollResult{
		Total: total + bonus,
		Rolls: rolls,
		Bonus: bonus,
		Count: count,
		Sides: sides,
	}, nil
}

func (r *randomRoller) RollAbilityScore() (*RollResult, error) {
	result, err := r.Roll(4, 6, 0)
	if err != nil {
		return nil, err
	}

	lowest := result.Rolls[0]
	for _, roll := range result.Rolls[1:] {
		if roll < lowest {
			lowest = roll
		}
	}

	result.Total -= lowest
	return result, nil
}
