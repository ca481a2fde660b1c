package rulebook

// SlotTable maps character level to spell slots per spell level.
// The slice is indexed by spell level minus one: SlotTable[5] = [4,3,2]
// means four 1st-, three 2nd-, two 3rd-level slots at level 5.
type SlotTable map[int][]int

// SlotsAt returns the slot row for a level, or nil when the table has
// no entry (non-caster levels, missing data).
func (t SlotTable) SlotsAt(level int) []int {
	if t == nil {
		return nil
	}
	return t[level]
}

// CantripsTable maps character level to the number of cantrips known
type CantripsTable map[int]int

// KnownAt returns cantrips known at a level, zero when absent
func (t CantripsTable) KnownAt(level int) int {
	if t == nil {
		return 0
	}
	return t[level]
}
