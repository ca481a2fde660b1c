package rulebook

// Background is the rule definition for a character background
type Background struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	SkillProficiencies []string `json:"skillProficiencies,omitempty"`
	ToolProficiencies  []string `json:"toolProficiencies,omitempty"`
	Languages          []string `json:"languages,omitempty"`
	Vehicles           []string `json:"vehicles,omitempty"`

	// LanguageChoices / ToolChoices open pick-from-catalog decisions
	LanguageChoices int    `json:"languageChoices,omitempty"`
	ToolChoices     int    `json:"toolChoices,omitempty"`
	ToolCategory    string `json:"toolCategory,omitempty"`

	Feature   *Feature `json:"feature,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
}
