package rulebook

// Infusion is an artificer infusion entry
type Infusion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Level is the minimum artificer level to learn the infusion
	Level       int    `json:"level,omitempty"`
	Description string `json:"description,omitempty"`
}

// Invocation is a warlock eldritch invocation entry
type Invocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// PrerequisiteLevel gates the invocation by warlock level
	PrerequisiteLevel int `json:"prerequisiteLevel,omitempty"`
	// PrerequisitePact gates the invocation by pact boon id
	PrerequisitePact string `json:"prerequisitePact,omitempty"`
	Description      string `json:"description,omitempty"`
}

// PactBoon is a warlock pact boon entry
type PactBoon struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
