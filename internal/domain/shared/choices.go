package shared

// ChoiceKind identifies a category of pending player decision
type ChoiceKind string

const (
	ChoiceKindSkills        ChoiceKind = "skills"
	ChoiceKindSubclass      ChoiceKind = "subclass"
	ChoiceKindSpells        ChoiceKind = "spells"
	ChoiceKindFeature       ChoiceKind = "feature"
	ChoiceKindTools         ChoiceKind = "tools"
	ChoiceKindLanguages     ChoiceKind = "languages"
	ChoiceKindInfusions     ChoiceKind = "infusions"
	ChoiceKindInvocations   ChoiceKind = "invocations"
	ChoiceKindPactBoon      ChoiceKind = "pact-boon"
	ChoiceKindBonusCantrips ChoiceKind = "bonus-cantrips"
)
