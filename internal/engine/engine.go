// Package engine applies progression rules to a character record:
// class, subclass, race, and background application, level changes,
// and pending-choice resolution. All operations on one character are
// serialized; derived state is rebuilt after every mutation.
package engine

import (
	"context"
	"log"
	"sync"

	"github.com/charforge/charforge/internal/clients/catalog"
	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/rulebook/calculators"
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/errors"
	"github.com/charforge/charforge/internal/events"
)

// Config holds the engine's dependencies
type Config struct {
	Catalog catalog.Client
	Bus     *events.Bus
}

// Engine applies progression rules. Safe for concurrent use; calls
// touching the same character are serialized by a per-character lock.
type Engine struct {
	catalog catalog.Client
	bus     *events.Bus
	hooks   map[string]Hook

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an engine with the default class hooks registered
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if cfg.Catalog == nil {
		return nil, errors.InvalidArgument("config.Catalog is required")
	}
	e := &Engine{
		catalog: cfg.Catalog,
		bus:     cfg.Bus,
		hooks:   make(map[string]Hook),
		locks:   make(map[string]*sync.Mutex),
	}
	registerDefaultHooks(e)
	return e, nil
}

// RegisterHook attaches class-specific rules keyed by class id,
// replacing any hook already registered for that class.
func (e *Engine) RegisterHook(classID string, h Hook) {
	e.hooks[classID] = h
}

// lockFor returns the mutex serializing operations on one character
func (e *Engine) lockFor(characterID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[characterID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[characterID] = l
	}
	return l
}

func (e *Engine) emit(kind events.Kind, characterID string, payload map[string]interface{}) {
	e.bus.Emit(events.Event{Kind: kind, CharacterID: characterID, Payload: payload})
}

// Recalculate rebuilds the derived combat block from the current
// record. Equipment table misses degrade to an empty table with a
// logged warning, never an error.
func (e *Engine) Recalculate(ctx context.Context, ch *character.Character) error {
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()
	return e.recalculate(ctx, ch)
}

// recalculate is the unlocked form for callers already holding the
// character lock
func (e *Engine) recalculate(ctx context.Context, ch *character.Character) error {
	armor, err := e.catalog.GetArmor(ctx)
	if err != nil {
		log.Printf("WARN: armor table unavailable, AC computed without armor data: %v", err)
	}
	weapons, err := e.catalog.GetWeapons(ctx)
	if err != nil {
		log.Printf("WARN: weapon table unavailable, attacks omitted: %v", err)
	}
	ch.Combat = calculators.CalculateCombat(ch, armor, weapons)
	e.emit(events.KindCombatUpdated, ch.ID, nil)
	return nil
}

// ApplyRace sets the character's race: ability bonuses, base speed,
// traits, and racial proficiencies. Reapplying the same race is a
// no-op; changing race replaces the racial block entirely.
func (e *Engine) ApplyRace(ctx context.Context, ch *character.Character, race *rulebook.Race) error {
	if race == nil {
		return errors.InvalidArgument("race is required")
	}
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()

	ch.EnsureCollections()

	// reapplying rebuilds nothing: the shadow of what this race
	// granted must stay intact
	if ch.RaceID == race.ID {
		return nil
	}

	// Racial bonuses are reset-then-set so a race change never leaves
	// the old race's bonuses behind
	ch.RacialBonuses = make(map[shared.Ability]int, len(race.AbilityBonuses))
	for ability, bonus := range race.AbilityBonuses {
		ch.RacialBonuses[ability] = bonus
	}

	if ch.RaceID != "" {
		e.removeRaceGrants(ch)
	}

	ch.RaceID = race.ID
	ch.RaceName = race.Name
	ch.Speed = race.Speed
	ch.FlySpeed = race.FlySpeed

	for _, trait := range race.Traits {
		ch.AddFeature(trait)
	}

	// Shadow what the race actually adds, in the same way background
	// grants are shadowed: proficiencies already held from class or
	// background survive a later race change
	grants := &character.RaceGrants{
		Skills:    shared.NewSet(),
		Weapons:   shared.NewSet(),
		Languages: shared.NewSet(),
	}
	for _, skill := range race.SkillProficiencies {
		if ch.Skills.Add(skill) {
			grants.Skills.Add(skill)
		}
	}
	for _, weapon := range race.WeaponProficiencies {
		if ch.WeaponProficiencies.Add(weapon) {
			grants.Weapons.Add(weapon)
		}
	}
	for _, lang := range race.Languages {
		if ch.Languages.Add(lang) {
			grants.Languages.Add(lang)
		}
	}
	ch.RaceGrants = grants

	if race.LanguageChoices > 0 {
		ch.AddPendingChoice(&character.PendingChoice{
			Key:    string(shared.ChoiceKindLanguages),
			Kind:   shared.ChoiceKindLanguages,
			Choose: race.LanguageChoices,
			Source: race.ID,
		})
	}

	e.emit(events.KindFeaturesUpdated, ch.ID, nil)
	return e.recalculate(ctx, ch)
}

// removeRaceGrants strips everything the previous race granted:
// traits, shadowed proficiencies and languages, and the language
// decision the race opened
func (e *Engine) removeRaceGrants(ch *character.Character) {
	kept := ch.Features[:0]
	for _, f := range ch.Features {
		if f.Level == 0 && ch.RaceID != "" && isRacialTrait(f, ch.RaceID) {
			continue
		}
		kept = append(kept, f)
	}
	ch.Features = kept

	if grants := ch.RaceGrants; grants != nil {
		for _, skill := range grants.Skills.Items() {
			ch.Skills.Remove(skill)
		}
		for _, weapon := range grants.Weapons.Items() {
			ch.WeaponProficiencies.Remove(weapon)
		}
		for _, lang := range grants.Languages.Items() {
			ch.Languages.Remove(lang)
		}
		ch.RaceGrants = nil
	}

	ch.RemovePendingChoice(string(shared.ChoiceKindLanguages))
	delete(ch.ResolvedChoices, string(shared.ChoiceKindLanguages))
}

func isRacialTrait(f *rulebook.Feature, raceID string) bool {
	// racial trait ids are namespaced "<race>-..." in the catalog
	return len(f.ID) > len(raceID) && f.ID[:len(raceID)+1] == raceID+"-"
}

// ApplyBackground applies a background's grants, recording exactly what
// it added so RemoveBackground can strip it precisely. Applying a
// second background removes the first.
func (e *Engine) ApplyBackground(ctx context.Context, ch *character.Character, bg *rulebook.Background) error {
	if bg == nil {
		return errors.InvalidArgument("background is required")
	}
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()

	ch.EnsureCollections()

	if ch.BackgroundID == bg.ID {
		return nil
	}
	if ch.BackgroundID != "" {
		e.removeBackground(ch)
	}

	grants := &character.BackgroundGrants{
		Skills:    shared.NewSet(),
		Tools:     shared.NewSet(),
		Languages: shared.NewSet(),
		Vehicles:  shared.NewSet(),
		Equipment: append([]string(nil), bg.Equipment...),
	}

	// Only record what the background actually adds: grants the
	// character already has from class or race stay when the
	// background is later removed
	for _, skill := range bg.SkillProficiencies {
		if ch.Skills.Add(skill) {
			grants.Skills.Add(skill)
		}
	}
	for _, tool := range bg.ToolProficiencies {
		if ch.ToolProficiencies.Add(tool) {
			grants.Tools.Add(tool)
		}
	}
	for _, lang := range bg.Languages {
		if ch.Languages.Add(lang) {
			grants.Languages.Add(lang)
		}
	}
	for _, vehicle := range bg.Vehicles {
		if ch.ToolProficiencies.Add(vehicle) {
			grants.Vehicles.Add(vehicle)
		}
	}

	if bg.Feature != nil && ch.AddFeature(bg.Feature) {
		grants.FeatureID = bg.Feature.ID
	}
	ch.Equipment.Items = append(ch.Equipment.Items, bg.Equipment...)

	if bg.LanguageChoices > 0 {
		ch.AddPendingChoice(&character.PendingChoice{
			Key:    "background:" + string(shared.ChoiceKindLanguages),
			Kind:   shared.ChoiceKindLanguages,
			Choose: bg.LanguageChoices,
			Source: bg.ID,
		})
	}
	if bg.ToolChoices > 0 {
		ch.AddPendingChoice(&character.PendingChoice{
			Key:    "background:" + string(shared.ChoiceKindTools),
			Kind:   shared.ChoiceKindTools,
			Choose: bg.ToolChoices,
			Source: bg.ID,
		})
	}

	ch.BackgroundID = bg.ID
	ch.BackgroundName = bg.Name
	ch.BackgroundGrants = grants

	e.emit(events.KindBackgroundApplied, ch.ID, map[string]interface{}{"background": bg.ID})
	return e.recalculate(ctx, ch)
}

// RemoveBackground strips the current background and everything it
// granted. Removing when none is set is a no-op.
func (e *Engine) RemoveBackground(ctx context.Context, ch *character.Character) error {
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()

	if ch.BackgroundID == "" {
		return nil
	}
	e.removeBackground(ch)
	e.emit(events.KindBackgroundApplied, ch.ID, nil)
	return e.recalculate(ctx, ch)
}

func (e *Engine) removeBackground(ch *character.Character) {
	grants := ch.BackgroundGrants
	if grants != nil {
		for _, skill := range grants.Skills.Items() {
			ch.Skills.Remove(skill)
		}
		for _, tool := range grants.Tools.Items() {
			ch.ToolProficiencies.Remove(tool)
		}
		for _, lang := range grants.Languages.Items() {
			ch.Languages.Remove(lang)
		}
		for _, vehicle := range grants.Vehicles.Items() {
			ch.ToolProficiencies.Remove(vehicle)
		}
		if grants.FeatureID != "" {
			ch.RemoveFeature(grants.FeatureID)
		}
		for _, item := range grants.Equipment {
			removeItem(ch.Equipment, item)
		}
	}

	ch.RemovePendingChoice("background:" + string(shared.ChoiceKindLanguages))
	ch.RemovePendingChoice("background:" + string(shared.ChoiceKindTools))
	delete(ch.ResolvedChoices, "background:"+string(shared.ChoiceKindLanguages))
	delete(ch.ResolvedChoices, "background:"+string(shared.ChoiceKindTools))

	ch.BackgroundID = ""
	ch.BackgroundName = ""
	ch.BackgroundGrants = nil
}

func removeItem(eq *character.Equipment, item string) {
	for i, existing := range eq.Items {
		if existing == item {
			eq.Items = append(eq.Items[:i], eq.Items[i+1:]...)
			return
		}
	}
}

// ApplyInvocation adds an eldritch invocation after checking its
// level and pact prerequisites
func (e *Engine) ApplyInvocation(ctx context.Context, ch *character.Character, inv *rulebook.Invocation) error {
	if inv == nil {
		return errors.InvalidArgument("invocation is required")
	}
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()

	if inv.PrerequisiteLevel > 0 && ch.Level < inv.PrerequisiteLevel {
		return errors.InvalidArgumentf("invocation %s requires level %d", inv.ID, inv.PrerequisiteLevel)
	}
	if inv.PrerequisitePact != "" && ch.PactBoon != inv.PrerequisitePact {
		return errors.InvalidArgumentf("invocation %s requires pact %s", inv.ID, inv.PrerequisitePact)
	}
	ch.EnsureCollections()
	ch.Invocations.Add(inv.ID)
	e.emit(events.KindFeaturesUpdated, ch.ID, nil)
	return nil
}

// ApplyPactBoon sets the warlock pact boon
func (e *Engine) ApplyPactBoon(ctx context.Context, ch *character.Character, boon *rulebook.PactBoon) error {
	if boon == nil {
		return errors.InvalidArgument("pact boon is required")
	}
	lock := e.lockFor(ch.ID)
	lock.Lock()
	defer lock.Unlock()

	ch.PactBoon = boon.ID
	ch.MarkResolved(string(shared.ChoiceKindPactBoon), []string{boon.ID})
	e.emit(events.KindFeaturesUpdated, ch.ID, nil)
	return nil
}
