package rulebook

import "github.com/charforge/charforge/internal/domain/shared"

// Feature is a single class, subclass, race, or background feature.
// A feature either grants something directly or carries a Choice the
// player still has to make.
type Feature struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       int    `json:"level,omitempty"`
	Description string `json:"description,omitempty"`

	// SubclassPlaceholder marks the level slot where the subclass takes
	// over; the class feature walk skips these once a subclass is set.
	SubclassPlaceholder bool `json:"subclassPlaceholder,omitempty"`

	// Choice is present on features that open a player decision
	Choice *ChoiceDescriptor `json:"choice,omitempty"`

	// Effects carries mechanical tags the calculators read
	// (e.g. "armor-mastery", "speed+10", "fly-speed:30")
	Effects []string `json:"effects,omitempty"`
}

// ChoiceDescriptor describes a pending decision: pick Choose entries
// out of From. An empty From means the option list comes from the
// catalog (full spell list, language list, ...).
type ChoiceDescriptor struct {
	Kind   shared.ChoiceKind `json:"kind"`
	Key    string            `json:"key,omitempty"`
	Choose int               `json:"choose"`
	From   []string          `json:"from,omitempty"`
}
