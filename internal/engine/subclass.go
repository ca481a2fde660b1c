package engine

import (
	"context"

	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/rulebook/calculators"
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/errors"
	"github.com/charforge/charforge/internal/events"
)

// ApplySubclass sets the character's subclass: level-gated features,
// proficiency merges, and the always-prepared spell grants. A subclass
// for the wrong class is rejected; applying with no class set is too.
func (e *Engine) ApplySubclass(ctx context.Context, ch *character.Character, sub *rulebook.Subclass) error {
	if sub == nil {
		return errors.InvalidArgument("subclass is required")
	}
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()
	return e.applySubclass(ctx, ch, sub)
}

func (e *Engine) applySubclass(ctx context.Context, ch *character.Character, sub *rulebook.Subclass) error {
	if ch.ClassID == "" {
		return errors.InvalidArgument("character has no class")
	}
	if sub.Class != "" && sub.Class != ch.ClassID {
		return errors.InvalidArgumentf("subclass %s belongs to %s, not %s", sub.ID, sub.Class, ch.ClassID)
	}

	ch.EnsureCollections()

	if ch.SubclassID != "" && ch.SubclassID != sub.ID {
		e.removeSubclassGrants(ch)
	}

	ch.SubclassID = sub.ID
	ch.SubclassName = sub.Name

	// the placeholder slot gives way to the real subclass features
	kept := ch.Features[:0]
	for _, f := range ch.Features {
		if f.SubclassPlaceholder {
			continue
		}
		kept = append(kept, f)
	}
	ch.Features = kept

	for _, f := range sub.FeaturesThrough(ch.Level) {
		granted := *f
		ch.AddFeature(&granted)
		if f.Choice != nil {
			ch.AddPendingChoice(&character.PendingChoice{
				Key:    "feature:" + f.ID,
				Kind:   shared.ChoiceKindFeature,
				Choose: f.Choice.Choose,
				From:   append([]string(nil), f.Choice.From...),
				Source: sub.ID,
			})
		}
	}

	ch.Skills.AddAll(sub.SkillProficiencies...)
	ch.ToolProficiencies.AddAll(sub.ToolProficiencies...)

	if spells := sub.SpellsThrough(ch.Level); len(spells) > 0 {
		if ch.Spellcasting == nil {
			// martial classes with caster subclasses gain the block here
			ch.Spellcasting = character.NewSpellcasting(shared.AbilityIntelligence, rulebook.SpellcastingPrepared)
		}
		// the class replay may have disabled a subclass-granted block
		ch.Spellcasting.Enabled = true
		ch.Spellcasting.AlwaysPrepared.AddAll(spells...)
	}

	ch.MarkResolved(string(shared.ChoiceKindSubclass), []string{sub.ID})

	calculators.ClampPreparedSpells(ch)

	e.emit(events.KindSubclassUpdated, ch.ID, map[string]interface{}{"subclass": sub.ID})
	return e.recalculate(ctx, ch)
}

// removeSubclassGrants strips the previous subclass's always-prepared
// spells and features before a different one is applied
func (e *Engine) removeSubclassGrants(ch *character.Character) {
	kept := ch.Features[:0]
	for _, f := range ch.Features {
		if isSubclassFeature(f, ch.SubclassID) {
			ch.RemovePendingChoice("feature:" + f.ID)
			delete(ch.ResolvedChoices, "feature:"+f.ID)
			continue
		}
		kept = append(kept, f)
	}
	ch.Features = kept

	if ch.Spellcasting != nil {
		ch.Spellcasting.AlwaysPrepared.Clear()
	}
	delete(ch.ResolvedChoices, string(shared.ChoiceKindSubclass))
}

func isSubclassFeature(f *rulebook.Feature, subclassID string) bool {
	// subclass feature ids are namespaced "<subclass>-..." in the catalog
	return len(f.ID) > len(subclassID) && f.ID[:len(subclassID)+1] == subclassID+"-"
}
