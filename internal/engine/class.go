package engine

import (
	"context"
	"log"

	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/rulebook/calculators"
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/errors"
	"github.com/charforge/charforge/internal/events"
)

// ApplyClass applies a class at the given level. Reapplying the same
// class and level leaves the record unchanged; changing class resets
// everything the old class granted before the new one is applied.
func (e *Engine) ApplyClass(ctx context.Context, ch *character.Character, class *rulebook.Class, level int) error {
	if class == nil {
		return errors.InvalidArgument("class is required")
	}
	if level < 1 || level > 20 {
		return errors.InvalidArgumentf("level %d out of range", level)
	}
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()
	return e.applyClass(ctx, ch, class, level)
}

func (e *Engine) applyClass(ctx context.Context, ch *character.Character, class *rulebook.Class, level int) error {
	ch.EnsureCollections()

	if ch.ClassID != "" && ch.ClassID != class.ID {
		e.resetClassState(ch)
	}

	ch.ClassID = class.ID
	ch.ClassName = class.Name
	ch.Level = level
	ch.HitDie = class.HitDie

	// Saving throws are reset-then-set: the class is their only source,
	// so replaying any level always converges
	throws := make([]string, 0, len(class.SavingThrows))
	for _, a := range class.SavingThrows {
		throws = append(throws, string(a))
	}
	ch.SavingThrows.Replace(throws...)

	ch.ArmorProficiencies.AddAll(class.ArmorProficiencies...)
	ch.WeaponProficiencies.AddAll(class.WeaponProficiencies...)
	ch.ToolProficiencies.AddAll(class.ToolProficiencies...)

	if class.SkillChoices != nil {
		ch.AddPendingChoice(&character.PendingChoice{
			Key:    string(shared.ChoiceKindSkills),
			Kind:   shared.ChoiceKindSkills,
			Choose: class.SkillChoices.Choose,
			From:   append([]string(nil), class.SkillChoices.From...),
			Source: class.ID,
		})
	}

	e.applySpellcasting(ctx, ch, class, level)
	e.applyHitPoints(ch, class, level)
	e.walkClassLevels(ch, class, level)

	if hook := e.hooks[class.ID]; hook != nil {
		if err := hook.OnClassApplied(ctx, e, ch, class); err != nil {
			return err
		}
	}

	e.detectSubclassUnlock(ch, class, level)

	calculators.ClampPreparedSpells(ch)

	e.emit(events.KindFeaturesUpdated, ch.ID, nil)
	return e.recalculate(ctx, ch)
}

// resetClassState strips everything the previous class granted. Race
// and background grants are untouched; the background shadow sets make
// that split possible.
func (e *Engine) resetClassState(ch *character.Character) {
	ch.SavingThrows.Clear()
	ch.Spellcasting = nil
	ch.Infusions = nil
	ch.Invocations.Clear()
	ch.PactBoon = ""
	ch.SubclassID = ""
	ch.SubclassName = ""
	ch.Pools = make(map[string]*shared.Pool)

	// Class features carry a level; racial traits and the background
	// feature do not
	kept := ch.Features[:0]
	for _, f := range ch.Features {
		if f.Level > 0 {
			continue
		}
		kept = append(kept, f)
	}
	ch.Features = kept

	// Drop class-sourced decisions, resolved and pending, but keep the
	// background's own choice keys
	for _, key := range classChoiceKeys {
		ch.RemovePendingChoice(key)
		delete(ch.ResolvedChoices, key)
	}
	var keptPending []*character.PendingChoice
	for _, pc := range ch.PendingChoices {
		if pc.Kind == shared.ChoiceKindFeature {
			delete(ch.ResolvedChoices, pc.Key)
			continue
		}
		keptPending = append(keptPending, pc)
	}
	ch.PendingChoices = keptPending
}

var classChoiceKeys = []string{
	string(shared.ChoiceKindSkills),
	string(shared.ChoiceKindSubclass),
	string(shared.ChoiceKindSpells),
	string(shared.ChoiceKindInfusions),
	string(shared.ChoiceKindInvocations),
	string(shared.ChoiceKindPactBoon),
	string(shared.ChoiceKindBonusCantrips),
}

// applySpellcasting enables the casting block and fills the cantrip cap
// and slot row from the progression tables. A class without a casting
// descriptor only disables the block: spell sets survive, because a
// subclass grant may re-enable them during the same replay. Table
// lookups degrade to zero with a logged warning (homebrew classes often
// ship without tables).
func (e *Engine) applySpellcasting(ctx context.Context, ch *character.Character, class *rulebook.Class, level int) {
	info := class.Spellcasting
	if info == nil {
		if ch.Spellcasting != nil {
			ch.Spellcasting.Enabled = false
		}
		return
	}

	if ch.Spellcasting == nil {
		ch.Spellcasting = character.NewSpellcasting(info.Ability, info.Type)
	}
	sc := ch.Spellcasting
	sc.Enabled = true
	sc.Ability = info.Ability
	sc.Type = info.Type
	sc.PreparedDivisor = info.PreparedDivisor

	cantrips, err := e.catalog.GetCantripsTable(ctx, class.ID)
	if err != nil {
		log.Printf("WARN: no cantrips table for %s, defaulting to 0: %v", class.ID, err)
	}
	if e.stale(ch, class, level) {
		return
	}
	sc.CantripsKnown = cantrips.KnownAt(level)

	slots, err := e.catalog.GetSlotTable(ctx, class.ID)
	if err != nil {
		log.Printf("WARN: no slot table for %s, defaulting to none: %v", class.ID, err)
	}
	if e.stale(ch, class, level) {
		return
	}
	sc.SetSlots(slots.SlotsAt(level))

	e.emit(events.KindSpellSlotsUpdated, ch.ID, nil)
}

// stale reports whether the record moved on while a catalog lookup was
// in flight; stale results are discarded rather than applied
func (e *Engine) stale(ch *character.Character, class *rulebook.Class, level int) bool {
	return ch.ClassID != class.ID || ch.Level != level
}

// applyHitPoints recomputes max HP from hit die and constitution:
// full die at level 1, average (rounded up) per level after
func (e *Engine) applyHitPoints(ch *character.Character, class *rulebook.Class, level int) {
	conMod := calculators.AbilityModifier(ch.TotalAbilityScore(shared.AbilityConstitution))
	perLevel := class.HitDie/2 + 1 + conMod
	maxHP := class.HitDie + conMod + (level-1)*perLevel
	if maxHP < level {
		maxHP = level
	}

	if ch.MaxHP == 0 {
		ch.HP = maxHP
	} else {
		// keep damage taken across the recompute
		damage := ch.MaxHP - ch.HP
		ch.HP = maxHP - damage
		if ch.HP < 0 {
			ch.HP = 0
		}
	}
	ch.MaxHP = maxHP
	if ch.HP > ch.MaxHP {
		ch.HP = ch.MaxHP
	}
}

// walkClassLevels walks levels 1..level in order, appending features
// (id-unique) and opening any declared choices that were not already
// resolved. Subclass placeholder slots show until a subclass is
// chosen, then its real features take the slot.
func (e *Engine) walkClassLevels(ch *character.Character, class *rulebook.Class, level int) {
	for lvl := 1; lvl <= level; lvl++ {
		entry := class.Levels[lvl]
		if entry == nil {
			continue
		}
		for _, f := range entry.Features {
			if f.SubclassPlaceholder && ch.SubclassID != "" {
				continue
			}
			granted := *f
			if granted.Level == 0 {
				granted.Level = lvl
			}
			ch.AddFeature(&granted)
			if f.Choice != nil {
				ch.AddPendingChoice(&character.PendingChoice{
					Key:    "feature:" + f.ID,
					Kind:   shared.ChoiceKindFeature,
					Choose: f.Choice.Choose,
					From:   append([]string(nil), f.Choice.From...),
					Source: class.ID,
				})
			}
		}
		for _, choice := range entry.Choices {
			key := choice.Key
			if key == "" {
				key = string(choice.Kind)
			}
			ch.AddPendingChoice(&character.PendingChoice{
				Key:    key,
				Kind:   choice.Kind,
				Choose: choice.Choose,
				From:   append([]string(nil), choice.From...),
				Source: class.ID,
			})
		}
	}
}

// detectSubclassUnlock opens the subclass decision once the unlock
// level is reached and no subclass is set
func (e *Engine) detectSubclassUnlock(ch *character.Character, class *rulebook.Class, level int) {
	if class.SubclassLevel == 0 || level < class.SubclassLevel || ch.SubclassID != "" {
		return
	}
	ch.AddPendingChoice(&character.PendingChoice{
		Key:    string(shared.ChoiceKindSubclass),
		Kind:   shared.ChoiceKindSubclass,
		Choose: 1,
		Source: class.ID,
	})
}

// SetLevel replays the class (and subclass, when set) at the new
// level. Resource spend survives the replay: pool and slot usage is
// snapshotted before and restored after, clamped to the new maxima.
func (e *Engine) SetLevel(ctx context.Context, ch *character.Character, level int) error {
	if ch.ClassID == "" {
		return errors.InvalidArgument("character has no class")
	}
	if level < 1 || level > 20 {
		return errors.InvalidArgumentf("level %d out of range", level)
	}
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()

	class, err := e.catalog.GetClass(ctx, ch.ClassID)
	if err != nil {
		return errors.Wrapf(err, "loading class %s", ch.ClassID)
	}

	poolUsage := make(map[string]int, len(ch.Pools))
	for name, pool := range ch.Pools {
		poolUsage[name] = pool.Max - pool.Current
	}
	var slotUsage map[int]int
	if ch.Spellcasting != nil {
		slotUsage = make(map[int]int, len(ch.Spellcasting.SlotsUsed))
		for lvl, used := range ch.Spellcasting.SlotsUsed {
			slotUsage[lvl] = used
		}
	}

	if err := e.applyClass(ctx, ch, class, level); err != nil {
		return err
	}

	if ch.SubclassID != "" {
		sub, err := e.catalog.GetSubclass(ctx, class.SubclassDir(), ch.SubclassID)
		if err != nil {
			log.Printf("WARN: subclass %s unavailable during level change: %v", ch.SubclassID, err)
		} else if err := e.applySubclass(ctx, ch, sub); err != nil {
			return err
		}
	}

	for name, used := range poolUsage {
		pool, ok := ch.Pools[name]
		if !ok {
			continue
		}
		pool.Current = pool.Max - used
		if pool.Current < 0 {
			pool.Current = 0
		}
	}
	if ch.Spellcasting != nil && slotUsage != nil {
		for lvl, used := range slotUsage {
			max := ch.Spellcasting.SlotsMax[lvl]
			if used > max {
				used = max
			}
			if used > 0 {
				ch.Spellcasting.SlotsUsed[lvl] = used
			}
		}
	}

	e.emit(events.KindFeaturesUpdated, ch.ID, map[string]interface{}{"level": level})
	return e.recalculate(ctx, ch)
}
