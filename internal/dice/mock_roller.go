package dice

import "errors"

// ManualMockRoller returns preset rolls in order. Used in tests that need
// deterministic dice without a gomock controller.
type ManualMockRoller struct {
	rolls []int
	index int
}

// NewManualMockRoller creates a mock roller with no preset rolls
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{}
}

// SetRolls sets the sequence of individual die results to return
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.rolls = rolls
	m.index = 0
}

// Reset clears preset rolls
func (m *ManualMockRoller) Reset() {
	m.rolls = nil
	m.index = 0
}

func (m *ManualMockRoller) next() (int, error) {
	if m.index >= len(m.rolls) {
		return 0, errors.New("no more preset rolls")
	}
	roll := m.rolls[m.index]
	m.index++
	return roll, nil
}

func (m *ManualMockRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	total := 0
	rolls := make([]int, count)
	for i := 0; i < count; i++ {
		roll, err := m.next()
		if err != nil {
			return nil, err
		}
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

func (m *ManualMockRoller) RollAbilityScore() (*RollResult, error) {
	result, err := m.Roll(4, 6, 0)
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
