package engine

import (
	"context"
	"log"

	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook/calculators"
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/errors"
	"github.com/charforge/charforge/internal/events"
)

// ChoicePriority fixes the order pending choices are surfaced in.
// Structural decisions (skills, subclass) come before list picks, so
// a subclass chosen early can add to the lists the later picks draw on.
var ChoicePriority = []shared.ChoiceKind{
	shared.ChoiceKindSkills,
	shared.ChoiceKindSubclass,
	shared.ChoiceKindSpells,
	shared.ChoiceKindFeature,
	shared.ChoiceKindTools,
	shared.ChoiceKindLanguages,
	shared.ChoiceKindInfusions,
	shared.ChoiceKindInvocations,
	shared.ChoiceKindPactBoon,
	shared.ChoiceKindBonusCantrips,
}

// NextChoice returns the highest-priority pending choice with its
// option list filled in from the catalog, or nil when nothing is
// pending. Catalog misses leave the options empty rather than failing.
func (e *Engine) NextChoice(ctx context.Context, ch *character.Character) (*character.PendingChoice, error) {
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()

	pc := e.nextPending(ch)
	if pc == nil {
		return nil, nil
	}

	out := *pc
	out.From = append([]string(nil), pc.From...)
	if len(out.From) == 0 {
		options, err := e.optionsFor(ctx, ch, pc)
		if err != nil {
			log.Printf("WARN: no options available for %s choice: %v", pc.Kind, err)
		}
		out.From = options
	}
	return &out, nil
}

func (e *Engine) nextPending(ch *character.Character) *character.PendingChoice {
	for _, kind := range ChoicePriority {
		for _, pc := range ch.PendingChoices {
			if pc.Kind == kind {
				return pc
			}
		}
	}
	return nil
}

// optionsFor builds the catalog-backed option list for choices that
// do not carry one inline
func (e *Engine) optionsFor(ctx context.Context, ch *character.Character, pc *character.PendingChoice) ([]string, error) {
	switch pc.Kind {
	case shared.ChoiceKindSubclass:
		class, err := e.catalog.GetClass(ctx, ch.ClassID)
		if err != nil {
			return nil, err
		}
		refs, err := e.catalog.ListSubclasses(ctx, class.SubclassDir())
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(refs))
		for _, ref := range refs {
			out = append(out, ref.ID)
		}
		return out, nil

	case shared.ChoiceKindSpells:
		spells, err := e.catalog.GetSpellList(ctx, ch.ClassID)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, sp := range spells {
			if !sp.IsCantrip() && !spellKnown(ch, sp.ID) {
				out = append(out, sp.ID)
			}
		}
		return out, nil

	case shared.ChoiceKindBonusCantrips:
		spells, err := e.catalog.GetSpellList(ctx, ch.ClassID)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, sp := range spells {
			if sp.IsCantrip() && (ch.Spellcasting == nil || !ch.Spellcasting.Cantrips.Has(sp.ID)) {
				out = append(out, sp.ID)
			}
		}
		return out, nil

	case shared.ChoiceKindInfusions:
		infusions, err := e.catalog.GetInfusions(ctx, ch.ClassID)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, inf := range infusions {
			if inf.Level <= ch.Level && (ch.Infusions == nil || !ch.Infusions.Known.Has(inf.ID)) {
				out = append(out, inf.ID)
			}
		}
		return out, nil

	case shared.ChoiceKindInvocations:
		invocations, err := e.catalog.GetInvocations(ctx)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, inv := range invocations {
			if inv.PrerequisiteLevel > ch.Level {
				continue
			}
			if inv.PrerequisitePact != "" && inv.PrerequisitePact != ch.PactBoon {
				continue
			}
			if ch.Invocations.Has(inv.ID) {
				continue
			}
			out = append(out, inv.ID)
		}
		return out, nil

	case shared.ChoiceKindPactBoon:
		boons, err := e.catalog.GetPactBoons(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(boons))
		for _, boon := range boons {
			out = append(out, boon.ID)
		}
		return out, nil

	case shared.ChoiceKindLanguages:
		return e.catalog.GetLanguages(ctx)

	case shared.ChoiceKindTools:
		return e.catalog.GetTools(ctx, "")
	}
	return nil, nil
}

func spellKnown(ch *character.Character, spellID string) bool {
	return ch.Spellcasting != nil && ch.Spellcasting.Known.Has(spellID)
}

// ResolveChoice applies the player's selections to the first pending
// choice of the given kind. The selection count must match exactly;
// selections must be distinct and drawn from the choice's option list,
// inline or catalog-backed. Returns the next pending choice, nil when
// the queue is empty.
func (e *Engine) ResolveChoice(ctx context.Context, ch *character.Character, kind shared.ChoiceKind, selections []string) (*character.PendingChoice, error) {
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()

	var pc *character.PendingChoice
	for _, candidate := range ch.PendingChoices {
		if candidate.Kind == kind {
			pc = candidate
			break
		}
	}
	if pc == nil {
		return nil, errors.NotFoundf("no pending %s choice", kind)
	}

	options := pc.From
	if len(options) == 0 {
		built, err := e.optionsFor(ctx, ch, pc)
		if err != nil {
			// count and duplicate checks still apply below
			log.Printf("WARN: options unavailable for %s choice, skipping membership check: %v", pc.Kind, err)
		}
		options = built
	}

	if err := validateSelections(pc, options, selections); err != nil {
		return nil, err
	}

	if err := e.applySelections(ctx, ch, pc, selections); err != nil {
		return nil, err
	}

	ch.MarkResolved(pc.Key, selections)
	calculators.ClampPreparedSpells(ch)

	e.emit(events.KindChoiceResolved, ch.ID, map[string]interface{}{
		"kind":       string(kind),
		"selections": selections,
	})
	if err := e.recalculate(ctx, ch); err != nil {
		return nil, err
	}

	return e.nextPending(ch), nil
}

func validateSelections(pc *character.PendingChoice, options, selections []string) error {
	if len(selections) != pc.Choose {
		return errors.InvalidArgumentf("%s choice needs exactly %d selections, got %d",
			pc.Kind, pc.Choose, len(selections))
	}
	seen := make(map[string]bool, len(selections))
	for _, sel := range selections {
		if seen[sel] {
			return errors.InvalidArgumentf("duplicate selection %s", sel)
		}
		seen[sel] = true
		if len(options) > 0 && !contains(options, sel) {
			return errors.InvalidArgumentf("%s is not an option for the %s choice", sel, pc.Kind)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// applySelections mutates the record for one resolved choice
func (e *Engine) applySelections(ctx context.Context, ch *character.Character, pc *character.PendingChoice, selections []string) error {
	switch pc.Kind {
	case shared.ChoiceKindSkills:
		// The class skill pick replaces the skill set, then grants
		// from other sources are layered back on
		ch.Skills.Replace(selections...)
		if ch.RaceGrants != nil && ch.RaceGrants.Skills != nil {
			ch.Skills.AddAll(ch.RaceGrants.Skills.Items()...)
		}
		if ch.BackgroundGrants != nil && ch.BackgroundGrants.Skills != nil {
			ch.Skills.AddAll(ch.BackgroundGrants.Skills.Items()...)
		}

	case shared.ChoiceKindSubclass:
		class, err := e.catalog.GetClass(ctx, ch.ClassID)
		if err != nil {
			return errors.Wrapf(err, "loading class %s", ch.ClassID)
		}
		sub, err := e.catalog.GetSubclass(ctx, class.SubclassDir(), selections[0])
		if err != nil {
			return errors.Wrapf(err, "loading subclass %s", selections[0])
		}
		return e.applySubclass(ctx, ch, sub)

	case shared.ChoiceKindSpells:
		if ch.Spellcasting == nil {
			return errors.InvalidArgument("character has no spellcasting")
		}
		ch.Spellcasting.Known.AddAll(selections...)

	case shared.ChoiceKindBonusCantrips:
		if ch.Spellcasting == nil {
			return errors.InvalidArgument("character has no spellcasting")
		}
		ch.Spellcasting.Cantrips.AddAll(selections...)

	case shared.ChoiceKindTools:
		ch.ToolProficiencies.AddAll(selections...)
		if isBackgroundChoice(pc) && ch.BackgroundGrants != nil {
			ch.BackgroundGrants.Tools.AddAll(selections...)
		}

	case shared.ChoiceKindLanguages:
		ch.Languages.AddAll(selections...)
		switch {
		case isBackgroundChoice(pc) && ch.BackgroundGrants != nil:
			ch.BackgroundGrants.Languages.AddAll(selections...)
		case ch.RaceGrants != nil:
			// race-opened picks go with the race when it changes
			ch.RaceGrants.Languages.AddAll(selections...)
		}

	case shared.ChoiceKindInfusions:
		if ch.Infusions == nil {
			return errors.InvalidArgument("character has no infusions")
		}
		if ch.Infusions.Known.Len()+len(selections) > ch.Infusions.KnownCap {
			return errors.InvalidArgumentf("selections exceed the %d known infusion cap", ch.Infusions.KnownCap)
		}
		ch.Infusions.Known.AddAll(selections...)

	case shared.ChoiceKindInvocations:
		ch.Invocations.AddAll(selections...)

	case shared.ChoiceKindPactBoon:
		ch.PactBoon = selections[0]

	case shared.ChoiceKindFeature:
		// recorded in ResolvedChoices only; the feature itself is
		// already on the record

	default:
		return errors.InvalidArgumentf("unknown choice kind %s", pc.Kind)
	}
	return nil
}

func isBackgroundChoice(pc *character.PendingChoice) bool {
	return len(pc.Key) > len("background:") && pc.Key[:len("background:")] == "background:"
}
