package rulebook

// SubclassRef is a lightweight listing entry for subclass selection
type SubclassRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Subclass is the full rule definition for a subclass
type Subclass struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`

	// Features keyed by the character level that grants them
	Features map[int][]*Feature `json:"features,omitempty"`

	SkillProficiencies []string `json:"skillProficiencies,omitempty"`
	ToolProficiencies  []string `json:"toolProficiencies,omitempty"`

	// Spells maps character level to spell ids that become always
	// prepared once that level is reached
	Spells map[int][]string `json:"spells,omitempty"`
}

// FeaturesThrough returns all subclass features granted at or below level
func (s *Subclass) FeaturesThrough(level int) []*Feature {
	var out []*Feature
	for lvl := 1; lvl <= level; lvl++ {
		out = append(out, s.Features[lvl]...)
	}
	return out
}

// SpellsThrough returns all always-prepared spells granted at or below level
func (s *Subclass) SpellsThrough(level int) []string {
	var out []string
	for lvl := 1; lvl <= level; lvl++ {
		out = append(out, s.Spells[lvl]...)
	}
	return out
}
