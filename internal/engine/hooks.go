package engine

import (
	"context"

	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/rulebook/calculators"
	"github.com/charforge/charforge/internal/domain/shared"
)

// Hook carries the rules that cannot be expressed as catalog data:
// level-scaled pools, cap-driven choice re-opening, pact magic.
// Hooks run at the end of every class application, so they must be
// idempotent for a fixed class and level.
type Hook interface {
	OnClassApplied(ctx context.Context, e *Engine, ch *character.Character, class *rulebook.Class) error
}

// HookFunc adapts a function to the Hook interface
type HookFunc func(ctx context.Context, e *Engine, ch *character.Character, class *rulebook.Class) error

// OnClassApplied implements Hook
func (f HookFunc) OnClassApplied(ctx context.Context, e *Engine, ch *character.Character, class *rulebook.Class) error {
	return f(ctx, e, ch, class)
}

func registerDefaultHooks(e *Engine) {
	e.RegisterHook("wizard", HookFunc(wizardHook))
	e.RegisterHook("artificer", HookFunc(artificerHook))
	e.RegisterHook("warlock", HookFunc(warlockHook))
	e.RegisterHook("ostrumite-gunner", HookFunc(ostrumiteGunnerHook))
	e.RegisterHook("bound-vanguard", HookFunc(boundVanguardHook))
}

// reopenCappedChoice keeps a cumulative pick (spells learned,
// infusions known, invocations) in step with its level-driven cap.
// Held picks stay; only the delta re-opens.
func reopenCappedChoice(ch *character.Character, key string, kind shared.ChoiceKind, capNow, held int, source string) {
	if capNow <= held {
		return
	}
	ch.ReopenChoice(&character.PendingChoice{
		Key:    key,
		Kind:   kind,
		Choose: capNow - held,
		Source: source,
	})
}

// wizardHook grows the spellbook: six spells at first level, two more
// at each level after
func wizardHook(ctx context.Context, e *Engine, ch *character.Character, class *rulebook.Class) error {
	sc := ch.Spellcasting
	if sc == nil {
		return nil
	}
	expected := 6 + 2*(ch.Level-1)
	reopenCappedChoice(ch, string(shared.ChoiceKindSpells), shared.ChoiceKindSpells,
		expected, sc.Known.Len(), class.ID)

	reopenCappedChoice(ch, string(shared.ChoiceKindBonusCantrips), shared.ChoiceKindBonusCantrips,
		sc.CantripsKnown, sc.Cantrips.Len(), class.ID)
	return nil
}

// artificer infusion caps by level: known infusions and how many can
// be active at once
func artificerInfusionCaps(level int) (known, active int) {
	switch {
	case level >= 18:
		return 12, 6
	case level >= 14:
		return 10, 5
	case level >= 10:
		return 8, 4
	case level >= 6:
		return 6, 3
	case level >= 2:
		return 4, 2
	default:
		return 0, 0
	}
}

// artificerHook manages infusions. Below level 2 the block is absent;
// from level 2 on, known infusions are a cumulative capped pick and
// the active set is clamped to the new cap.
func artificerHook(ctx context.Context, e *Engine, ch *character.Character, class *rulebook.Class) error {
	known, active := artificerInfusionCaps(ch.Level)
	if known == 0 {
		ch.Infusions = nil
		ch.RemovePendingChoice(string(shared.ChoiceKindInfusions))
		delete(ch.ResolvedChoices, string(shared.ChoiceKindInfusions))
		return nil
	}

	if ch.Infusions == nil {
		ch.Infusions = character.NewInfusions(known, active)
	}
	inf := ch.Infusions
	inf.KnownCap = known
	inf.ActiveCap = active

	for inf.Active.Len() > active {
		items := inf.Active.Items()
		inf.Active.Remove(items[len(items)-1])
	}

	reopenCappedChoice(ch, string(shared.ChoiceKindInfusions), shared.ChoiceKindInfusions,
		known, inf.Known.Len(), class.ID)

	if sc := ch.Spellcasting; sc != nil {
		reopenCappedChoice(ch, string(shared.ChoiceKindBonusCantrips), shared.ChoiceKindBonusCantrips,
			sc.CantripsKnown, sc.Cantrips.Len(), class.ID)
	}
	return nil
}

// warlock invocation count by level
func warlockInvocationCap(level int) int {
	switch {
	case level >= 18:
		return 8
	case level >= 15:
		return 7
	case level >= 12:
		return 6
	case level >= 9:
		return 5
	case level >= 7:
		return 4
	case level >= 5:
		return 3
	case level >= 2:
		return 2
	default:
		return 0
	}
}

// warlockHook marks pact magic, opens the invocation pick from level 2,
// and the pact boon pick from level 3
func warlockHook(ctx context.Context, e *Engine, ch *character.Character, class *rulebook.Class) error {
	if sc := ch.Spellcasting; sc != nil {
		sc.PactMagic = true
	}

	if capNow := warlockInvocationCap(ch.Level); capNow > 0 {
		reopenCappedChoice(ch, string(shared.ChoiceKindInvocations), shared.ChoiceKindInvocations,
			capNow, ch.Invocations.Len(), class.ID)
	}

	if ch.Level >= 3 && ch.PactBoon == "" {
		ch.AddPendingChoice(&character.PendingChoice{
			Key:    string(shared.ChoiceKindPactBoon),
			Kind:   shared.ChoiceKindPactBoon,
			Choose: 1,
			Source: class.ID,
		})
	}
	return nil
}

// ostrumiteGunnerHook maintains the charge pool:
// max(1, proficiency + int modifier), refilled on a long rest
func ostrumiteGunnerHook(ctx context.Context, e *Engine, ch *character.Character, class *rulebook.Class) error {
	intMod := calculators.AbilityModifier(ch.TotalAbilityScore(shared.AbilityIntelligence))
	max := calculators.ProficiencyBonus(ch.Level) + intMod
	if max < 1 {
		max = 1
	}
	resizePool(ch, "ostrumiteCharges", max, shared.RestTypeLong)
	return nil
}

// boundVanguardHook maintains manifest energy:
// max(1, level + charisma modifier), refilled on a long rest
func boundVanguardHook(ctx context.Context, e *Engine, ch *character.Character, class *rulebook.Class) error {
	chaMod := calculators.AbilityModifier(ch.TotalAbilityScore(shared.AbilityCharisma))
	max := ch.Level + chaMod
	if max < 1 {
		max = 1
	}
	resizePool(ch, "manifestEnergy", max, shared.RestTypeLong)
	return nil
}

// resizePool creates the pool full on first sight, then follows the
// cap: growth preserves spend, shrinking clamps.
func resizePool(ch *character.Character, name string, max int, reset shared.RestType) {
	pool, ok := ch.Pools[name]
	if !ok {
		ch.Pools[name] = shared.NewPool(max, reset)
		return
	}
	pool.SetMax(max)
}
