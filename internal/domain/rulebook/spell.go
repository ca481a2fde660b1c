package rulebook

// Spell is a single spell entry from a class spell list
type Spell struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Level         int    `json:"level"`
	School        string `json:"school,omitempty"`
	Ritual        bool   `json:"ritual,omitempty"`
	Concentration bool   `json:"concentration,omitempty"`
	Description   string `json:"description,omitempty"`
}

// IsCantrip reports whether the spell is a cantrip
func (s *Spell) IsCantrip() bool {
	return s.Level == 0
}
