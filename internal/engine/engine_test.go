package engine_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockcatalog "github.com/charforge/charforge/internal/clients/catalog/mock"
	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/engine"
	"github.com/charforge/charforge/internal/errors"
	"github.com/charforge/charforge/internal/events"
)

type EngineSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockCatalog *mockcatalog.MockClient
	engine      *engine.Engine
	bus         *events.Bus
	ctx         context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCatalog = mockcatalog.NewMockClient(s.ctrl)
	s.bus = events.NewBus()
	s.ctx = context.Background()

	eng, err := engine.New(&engine.Config{Catalog: s.mockCatalog, Bus: s.bus})
	s.Require().NoError(err)
	s.engine = eng

	s.stubCatalog()
}

func (s *EngineSuite) TearDownTest() {
	s.ctrl.Finish()
}

// stubCatalog installs permissive defaults so tests only add the
// expectations they care about
func (s *EngineSuite) stubCatalog() {
	s.mockCatalog.EXPECT().GetArmor(gomock.Any()).
		Return([]*rulebook.Armor{}, nil).AnyTimes()
	s.mockCatalog.EXPECT().GetWeapons(gomock.Any()).
		Return([]*rulebook.Weapon{}, nil).AnyTimes()

	s.mockCatalog.EXPECT().GetLanguages(gomock.Any()).
		Return([]string{"common", "dwarvish", "elvish", "sylvan", "draconic", "infernal"}, nil).AnyTimes()

	s.mockCatalog.EXPECT().GetClass(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id string) (*rulebook.Class, error) {
			if class, ok := testClasses()[id]; ok {
				return class, nil
			}
			return nil, errors.NotFoundf("class %s", id)
		}).AnyTimes()

	s.mockCatalog.EXPECT().GetSubclass(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, source, id string) (*rulebook.Subclass, error) {
			if source == "wizard" && id == "evocation" {
				return evocationSubclass(), nil
			}
			if source == "fighter" && id == "eldritch-knight" {
				return eldritchKnightSubclass(), nil
			}
			return nil, errors.NotFoundf("subclass %s/%s", source, id)
		}).AnyTimes()

	s.mockCatalog.EXPECT().GetSlotTable(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id string) (rulebook.SlotTable, error) {
			switch id {
			case "wizard":
				return rulebook.SlotTable{
					1: {2}, 2: {3}, 3: {4, 2}, 4: {4, 3}, 5: {4, 3, 2},
				}, nil
			case "artificer":
				return rulebook.SlotTable{
					1: {2}, 2: {2}, 3: {3}, 4: {3}, 5: {4, 2}, 6: {4, 2},
				}, nil
			case "warlock":
				return rulebook.SlotTable{
					1: {1}, 2: {2}, 3: {0, 2}, 4: {0, 2}, 5: {0, 0, 2},
				}, nil
			}
			return nil, errors.NotFoundf("no slot table for %s", id)
		}).AnyTimes()

	s.mockCatalog.EXPECT().GetCantripsTable(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id string) (rulebook.CantripsTable, error) {
			switch id {
			case "wizard":
				return rulebook.CantripsTable{1: 3, 2: 3, 3: 3, 4: 4, 5: 4}, nil
			case "artificer":
				return rulebook.CantripsTable{1: 2, 2: 2, 3: 2, 4: 2, 5: 2, 6: 2}, nil
			case "warlock":
				return rulebook.CantripsTable{1: 2, 2: 2, 3: 2, 4: 3, 5: 3}, nil
			}
			return nil, errors.NotFoundf("no cantrips table for %s", id)
		}).AnyTimes()
}

func testClasses() map[string]*rulebook.Class {
	return map[string]*rulebook.Class{
		"fighter":          fighterClass(),
		"wizard":           wizardClass(),
		"artificer":        artificerClass(),
		"warlock":          warlockClass(),
		"bound-vanguard":   boundVanguardClass(),
		"ostrumite-gunner": ostrumiteGunnerClass(),
	}
}

func fighterClass() *rulebook.Class {
	return &rulebook.Class{
		ID:                  "fighter",
		Name:                "Fighter",
		HitDie:              10,
		SavingThrows:        []shared.Ability{shared.AbilityStrength, shared.AbilityConstitution},
		ArmorProficiencies:  []string{"light", "medium", "heavy", "shield"},
		WeaponProficiencies: []string{"simple", "martial"},
		SkillChoices: &rulebook.ChoiceDescriptor{
			Kind:   shared.ChoiceKindSkills,
			Choose: 2,
			From:   []string{"acrobatics", "athletics", "history", "insight", "intimidation", "perception", "survival"},
		},
		Levels: map[int]*rulebook.ClassLevel{
			1: {Features: []*rulebook.Feature{
				{ID: "fighter-second-wind", Name: "Second Wind"},
				{ID: "fighter-fighting-style", Name: "Fighting Style", Choice: &rulebook.ChoiceDescriptor{
					Kind:   shared.ChoiceKindFeature,
					Choose: 1,
					From:   []string{"archery", "defense", "dueling"},
				}},
			}},
			2: {Features: []*rulebook.Feature{{ID: "fighter-action-surge", Name: "Action Surge"}}},
			3: {Features: []*rulebook.Feature{{ID: "fighter-subclass", Name: "Martial Archetype", SubclassPlaceholder: true}}},
		},
		SubclassLevel: 3,
	}
}

func wizardClass() *rulebook.Class {
	return &rulebook.Class{
		ID:           "wizard",
		Name:         "Wizard",
		HitDie:       6,
		SavingThrows: []shared.Ability{shared.AbilityIntelligence, shared.AbilityWisdom},
		SkillChoices: &rulebook.ChoiceDescriptor{
			Kind:   shared.ChoiceKindSkills,
			Choose: 2,
			From:   []string{"arcana", "history", "insight", "investigation", "medicine", "religion"},
		},
		Spellcasting: &rulebook.SpellcastingInfo{
			Ability: shared.AbilityIntelligence,
			Type:    rulebook.SpellcastingPrepared,
		},
		Levels: map[int]*rulebook.ClassLevel{
			1: {Features: []*rulebook.Feature{{ID: "wizard-arcane-recovery", Name: "Arcane Recovery"}}},
			2: {Features: []*rulebook.Feature{{ID: "wizard-subclass", Name: "Arcane Tradition", SubclassPlaceholder: true}}},
		},
		SubclassLevel: 2,
	}
}

func artificerClass() *rulebook.Class {
	return &rulebook.Class{
		ID:                 "artificer",
		Name:               "Artificer",
		HitDie:             8,
		SavingThrows:       []shared.Ability{shared.AbilityConstitution, shared.AbilityIntelligence},
		ArmorProficiencies: []string{"light", "medium", "shield"},
		SkillChoices: &rulebook.ChoiceDescriptor{
			Kind:   shared.ChoiceKindSkills,
			Choose: 2,
			From:   []string{"arcana", "history", "investigation", "medicine", "nature", "perception"},
		},
		Spellcasting: &rulebook.SpellcastingInfo{
			Ability:         shared.AbilityIntelligence,
			Type:            rulebook.SpellcastingPrepared,
			PreparedDivisor: 2,
		},
		Levels: map[int]*rulebook.ClassLevel{
			1: {Features: []*rulebook.Feature{{ID: "artificer-magical-tinkering", Name: "Magical Tinkering"}}},
			2: {Features: []*rulebook.Feature{{ID: "artificer-infuse-item", Name: "Infuse Item"}}},
			3: {Features: []*rulebook.Feature{{ID: "artificer-subclass", Name: "Artificer Specialist", SubclassPlaceholder: true}}},
		},
		SubclassLevel: 3,
	}
}

func warlockClass() *rulebook.Class {
	return &rulebook.Class{
		ID:           "warlock",
		Name:         "Warlock",
		HitDie:       8,
		SavingThrows: []shared.Ability{shared.AbilityWisdom, shared.AbilityCharisma},
		Spellcasting: &rulebook.SpellcastingInfo{
			Ability: shared.AbilityCharisma,
			Type:    rulebook.SpellcastingKnown,
		},
		Levels: map[int]*rulebook.ClassLevel{
			1: {Features: []*rulebook.Feature{{ID: "warlock-otherworldly-patron", Name: "Otherworldly Patron", SubclassPlaceholder: true}}},
			2: {Features: []*rulebook.Feature{{ID: "warlock-eldritch-invocations", Name: "Eldritch Invocations"}}},
			3: {Features: []*rulebook.Feature{{ID: "warlock-pact-boon", Name: "Pact Boon"}}},
		},
		SubclassLevel: 1,
	}
}

func boundVanguardClass() *rulebook.Class {
	return &rulebook.Class{
		ID:           "bound-vanguard",
		Name:         "Bound Vanguard",
		HitDie:       10,
		SavingThrows: []shared.Ability{shared.AbilityStrength, shared.AbilityCharisma},
		Levels: map[int]*rulebook.ClassLevel{
			1: {Features: []*rulebook.Feature{{ID: "bound-vanguard-manifest", Name: "Manifest"}}},
		},
	}
}

func ostrumiteGunnerClass() *rulebook.Class {
	return &rulebook.Class{
		ID:           "ostrumite-gunner",
		Name:         "Ostrumite Gunner",
		HitDie:       8,
		SavingThrows: []shared.Ability{shared.AbilityDexterity, shared.AbilityIntelligence},
		Levels: map[int]*rulebook.ClassLevel{
			1: {Features: []*rulebook.Feature{{ID: "ostrumite-gunner-gunblade", Name: "Gunblade"}}},
		},
	}
}

func evocationSubclass() *rulebook.Subclass {
	return &rulebook.Subclass{
		ID:    "evocation",
		Name:  "School of Evocation",
		Class: "wizard",
		Features: map[int][]*rulebook.Feature{
			2:  {{ID: "evocation-sculpt-spells", Name: "Sculpt Spells", Level: 2}},
			6:  {{ID: "evocation-potent-cantrip", Name: "Potent Cantrip", Level: 6}},
			10: {{ID: "evocation-empowered-evocation", Name: "Empowered Evocation", Level: 10}},
		},
		Spells: map[int][]string{
			2: {"burning-hands"},
			6: {"fireball"},
		},
	}
}

func eldritchKnightSubclass() *rulebook.Subclass {
	return &rulebook.Subclass{
		ID:    "eldritch-knight",
		Name:  "Eldritch Knight",
		Class: "fighter",
		Features: map[int][]*rulebook.Feature{
			3: {{ID: "eldritch-knight-weapon-bond", Name: "Weapon Bond", Level: 3}},
		},
		Spells: map[int][]string{
			3: {"shield", "magic-missile"},
		},
	}
}

func (s *EngineSuite) newCharacter() *character.Character {
	ch := character.New("char-1", "owner-1", "Test")
	ch.AbilityScores = map[shared.Ability]int{
		shared.AbilityStrength:     10,
		shared.AbilityDexterity:    14,
		shared.AbilityConstitution: 14,
		shared.AbilityIntelligence: 16,
		shared.AbilityWisdom:       10,
		shared.AbilityCharisma:     12,
	}
	ch.Speed = 30
	return ch
}

func (s *EngineSuite) TestApplyClass_Basics() {
	ch := s.newCharacter()

	err := s.engine.ApplyClass(s.ctx, ch, fighterClass(), 2)
	s.Require().NoError(err)

	s.Equal("fighter", ch.ClassID)
	s.Equal(2, ch.Level)
	s.Equal(10, ch.HitDie)
	s.Equal([]string{"con", "str"}, ch.SavingThrows.Items())
	s.True(ch.ArmorProficiencies.Has("heavy"))
	s.True(ch.WeaponProficiencies.Has("martial"))

	s.True(ch.HasFeature("fighter-second-wind"))
	s.True(ch.HasFeature("fighter-action-surge"))
	s.False(ch.HasFeature("fighter-subclass"), "placeholder unlocks at level 3")

	// 10+2 at level 1, plus 6+2 at level 2
	s.Equal(20, ch.MaxHP)
	s.Equal(20, ch.HP)

	s.NotNil(ch.FindPendingChoice("skills"))
	s.NotNil(ch.FindPendingChoice("feature:fighter-fighting-style"))
	s.Nil(ch.Spellcasting, "fighters do not cast")
	s.NotNil(ch.Combat)
}

func (s *EngineSuite) TestApplyClass_Idempotent() {
	ch := s.newCharacter()

	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, artificerClass(), 5))
	first, err := json.Marshal(ch.ToSnapshot())
	s.Require().NoError(err)

	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, artificerClass(), 5))
	second, err := json.Marshal(ch.ToSnapshot())
	s.Require().NoError(err)

	s.Equal(string(first), string(second), "re-applying the same class and level changes nothing")
}

func (s *EngineSuite) TestApplyClass_MonotonicReplay() {
	stepped := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, stepped, artificerClass(), 1))
	for lvl := 2; lvl <= 5; lvl++ {
		s.Require().NoError(s.engine.SetLevel(s.ctx, stepped, lvl))
	}

	direct := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, direct, artificerClass(), 5))

	s.Equal(direct.SavingThrows.Items(), stepped.SavingThrows.Items())
	s.Equal(direct.MaxHP, stepped.MaxHP)
	s.Equal(direct.Spellcasting.SlotsMax, stepped.Spellcasting.SlotsMax)
	s.Equal(direct.Infusions.KnownCap, stepped.Infusions.KnownCap)
	sFeatures := func(ch *character.Character) []string {
		var ids []string
		for _, f := range ch.Features {
			ids = append(ids, f.ID)
		}
		return ids
	}
	s.ElementsMatch(sFeatures(direct), sFeatures(stepped))
}

func (s *EngineSuite) TestApplyClass_ChangeResetsSavingThrows() {
	ch := s.newCharacter()

	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 1))
	s.Equal([]string{"con", "str"}, ch.SavingThrows.Items())

	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, wizardClass(), 1))
	s.Equal([]string{"int", "wis"}, ch.SavingThrows.Items(), "old throws are gone")
	s.False(ch.HasFeature("fighter-second-wind"), "old class features are gone")
	s.NotNil(ch.Spellcasting)
}

func (s *EngineSuite) TestApplyClass_SpellcastingTables() {
	ch := s.newCharacter()

	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, wizardClass(), 3))

	s.Require().NotNil(ch.Spellcasting)
	s.Equal(shared.AbilityIntelligence, ch.Spellcasting.Ability)
	s.Equal(3, ch.Spellcasting.CantripsKnown)
	s.Equal(map[int]int{1: 4, 2: 2}, ch.Spellcasting.SlotsMax)
}

func (s *EngineSuite) TestApplyClass_MissingTablesDefaultToZero() {
	ch := s.newCharacter()

	class := wizardClass()
	class.ID = "homebrew-seer"
	class.Name = "Seer"

	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, class, 3))

	s.Require().NotNil(ch.Spellcasting)
	s.Equal(0, ch.Spellcasting.CantripsKnown)
	s.Empty(ch.Spellcasting.SlotsMax)
}

func (s *EngineSuite) TestApplyClass_SubclassUnlock() {
	ch := s.newCharacter()

	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 2))
	s.Nil(ch.FindPendingChoice("subclass"), "locked below level 3")

	s.Require().NoError(s.engine.SetLevel(s.ctx, ch, 3))
	s.NotNil(ch.FindPendingChoice("subclass"))
	s.True(ch.HasFeature("fighter-subclass"), "placeholder shows until a subclass is picked")
}

func (s *EngineSuite) TestApplySubclass() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, wizardClass(), 6))

	err := s.engine.ApplySubclass(s.ctx, ch, evocationSubclass())
	s.Require().NoError(err)

	s.Equal("evocation", ch.SubclassID)
	s.True(ch.HasFeature("evocation-sculpt-spells"))
	s.True(ch.HasFeature("evocation-potent-cantrip"))
	s.False(ch.HasFeature("evocation-empowered-evocation"), "level 10 feature is gated")

	s.True(ch.Spellcasting.AlwaysPrepared.Has("burning-hands"))
	s.True(ch.Spellcasting.AlwaysPrepared.Has("fireball"))

	s.Nil(ch.FindPendingChoice("subclass"))
	s.Equal([]string{"evocation"}, ch.ResolvedChoices["subclass"])
	s.False(ch.HasFeature("wizard-subclass"), "placeholder gives way to the real features")
}

func (s *EngineSuite) TestSubclassPlaceholderLifecycle() {
	ch := s.newCharacter()

	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, wizardClass(), 2))
	s.True(ch.HasFeature("wizard-subclass"), "placeholder shows at the unlock level")

	s.Require().NoError(s.engine.ApplySubclass(s.ctx, ch, evocationSubclass()))
	s.False(ch.HasFeature("wizard-subclass"))

	s.Require().NoError(s.engine.SetLevel(s.ctx, ch, 3))
	s.False(ch.HasFeature("wizard-subclass"), "stays gone across replays")
	s.True(ch.HasFeature("evocation-sculpt-spells"))
}

func (s *EngineSuite) TestSetLevel_SubclassSpellsSurviveReplay() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 3))
	s.Require().NoError(s.engine.ApplySubclass(s.ctx, ch, eldritchKnightSubclass()))

	s.Require().NotNil(ch.Spellcasting, "caster subclass gains the block")
	s.True(ch.Spellcasting.Enabled)
	ch.Spellcasting.Cantrips.Add("fire-bolt")
	ch.Spellcasting.Prepared.Add("absorb-elements")

	// levelling replays the class first; fighter has no casting of its
	// own, but the subclass grant must come through intact
	s.Require().NoError(s.engine.SetLevel(s.ctx, ch, 4))

	s.Require().NotNil(ch.Spellcasting)
	s.True(ch.Spellcasting.Enabled, "re-enabled by the subclass replay")
	s.True(ch.Spellcasting.AlwaysPrepared.Has("shield"))
	s.True(ch.Spellcasting.AlwaysPrepared.Has("magic-missile"))
	s.True(ch.Spellcasting.Cantrips.Has("fire-bolt"))
	s.True(ch.Spellcasting.Prepared.Has("absorb-elements"))
}

func (s *EngineSuite) TestApplySubclass_WrongClassRejected() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 3))

	err := s.engine.ApplySubclass(s.ctx, ch, evocationSubclass())
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineSuite) TestApplySubclass_NoClassRejected() {
	ch := s.newCharacter()
	err := s.engine.ApplySubclass(s.ctx, ch, evocationSubclass())
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineSuite) TestArtificerHook_InfusionUnlockAndDelta() {
	ch := s.newCharacter()

	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, artificerClass(), 1))
	s.Nil(ch.Infusions, "no infusions before level 2")

	s.Require().NoError(s.engine.SetLevel(s.ctx, ch, 2))
	s.Require().NotNil(ch.Infusions)
	s.Equal(4, ch.Infusions.KnownCap)
	s.Equal(2, ch.Infusions.ActiveCap)

	pc := ch.FindPendingChoice("infusions")
	s.Require().NotNil(pc)
	s.Equal(4, pc.Choose)

	// resolve the four picks directly on the record
	ch.Infusions.Known.AddAll("a", "b", "c", "d")
	ch.MarkResolved("infusions", []string{"a", "b", "c", "d"})

	// level 6 raises the cap to 6: only the delta re-opens
	s.Require().NoError(s.engine.SetLevel(s.ctx, ch, 6))
	pc = ch.FindPendingChoice("infusions")
	s.Require().NotNil(pc)
	s.Equal(2, pc.Choose, "4 held, cap 6, choose the delta")
	s.Equal(6, ch.Infusions.KnownCap)
	s.Equal(3, ch.Infusions.ActiveCap)
}

func (s *EngineSuite) TestWarlockHook() {
	ch := s.newCharacter()

	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, warlockClass(), 3))

	s.Require().NotNil(ch.Spellcasting)
	s.True(ch.Spellcasting.PactMagic)

	pc := ch.FindPendingChoice("invocations")
	s.Require().NotNil(pc)
	s.Equal(2, pc.Choose)

	s.NotNil(ch.FindPendingChoice("pact-boon"))
}

func (s *EngineSuite) TestOstrumiteGunnerHook_ChargePool() {
	ch := s.newCharacter()

	// prof 2 + int mod 3
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, ostrumiteGunnerClass(), 1))
	pool := ch.Pools["ostrumiteCharges"]
	s.Require().NotNil(pool)
	s.Equal(5, pool.Max)
	s.Equal(5, pool.Current)
	s.Equal(shared.RestTypeLong, pool.Reset)
}

func (s *EngineSuite) TestBoundVanguardHook_ManifestEnergy() {
	ch := s.newCharacter()

	// level 4 + cha mod 1
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, boundVanguardClass(), 4))
	pool := ch.Pools["manifestEnergy"]
	s.Require().NotNil(pool)
	s.Equal(5, pool.Max)
}

func (s *EngineSuite) TestSetLevel_PreservesPoolSpend() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, boundVanguardClass(), 4))

	ch.Pools["manifestEnergy"].Use(3)

	s.Require().NoError(s.engine.SetLevel(s.ctx, ch, 5))

	pool := ch.Pools["manifestEnergy"]
	s.Equal(6, pool.Max, "level 5 + cha mod 1")
	s.Equal(3, pool.Current, "the 3 spent stay spent")
}

func (s *EngineSuite) TestSetLevel_PreservesSlotSpend() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, wizardClass(), 3))

	ch.Spellcasting.UseSlot(1)
	ch.Spellcasting.UseSlot(1)

	s.Require().NoError(s.engine.SetLevel(s.ctx, ch, 4))

	s.Equal(2, ch.Spellcasting.SlotsUsed[1])
}

func (s *EngineSuite) TestSetLevel_NoClass() {
	ch := s.newCharacter()
	err := s.engine.SetLevel(s.ctx, ch, 3)
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineSuite) TestApplyRace() {
	ch := s.newCharacter()

	race := &rulebook.Race{
		ID:   "mountain-dwarf",
		Name: "Mountain Dwarf",
		AbilityBonuses: map[shared.Ability]int{
			shared.AbilityStrength:     2,
			shared.AbilityConstitution: 2,
		},
		Speed:               25,
		Traits:              []*rulebook.Feature{{ID: "mountain-dwarf-darkvision", Name: "Darkvision"}},
		WeaponProficiencies: []string{"battleaxe", "warhammer"},
		Languages:           []string{"common", "dwarvish"},
	}

	s.Require().NoError(s.engine.ApplyRace(s.ctx, ch, race))

	s.Equal(12, ch.TotalAbilityScore(shared.AbilityStrength), "10 raw + 2 racial")
	s.Equal(10, ch.AbilityScores[shared.AbilityStrength], "raw score untouched")
	s.Equal(25, ch.Speed)
	s.True(ch.HasFeature("mountain-dwarf-darkvision"))
	s.True(ch.WeaponProficiencies.Has("battleaxe"))
	s.True(ch.Languages.Has("dwarvish"))
}

func (s *EngineSuite) TestApplyRace_ChangeReplacesBonuses() {
	ch := s.newCharacter()

	s.Require().NoError(s.engine.ApplyRace(s.ctx, ch, &rulebook.Race{
		ID: "dwarf", Name: "Dwarf", Speed: 25,
		AbilityBonuses: map[shared.Ability]int{shared.AbilityConstitution: 2},
	}))
	s.Require().NoError(s.engine.ApplyRace(s.ctx, ch, &rulebook.Race{
		ID: "elf", Name: "Elf", Speed: 30,
		AbilityBonuses: map[shared.Ability]int{shared.AbilityDexterity: 2},
	}))

	s.Equal(0, ch.RacialBonuses[shared.AbilityConstitution], "dwarf bonus gone")
	s.Equal(2, ch.RacialBonuses[shared.AbilityDexterity])
	s.Equal(30, ch.Speed)
}

func (s *EngineSuite) TestApplyRace_ChangeStripsGrants() {
	ch := s.newCharacter()
	ch.Skills.Add("perception") // held before any race

	elf := &rulebook.Race{
		ID: "elf", Name: "Elf", Speed: 30,
		SkillProficiencies:  []string{"perception", "stealth"},
		WeaponProficiencies: []string{"longsword", "longbow"},
		Languages:           []string{"common", "elvish"},
		LanguageChoices:     1,
		Traits:              []*rulebook.Feature{{ID: "elf-fey-ancestry", Name: "Fey Ancestry"}},
	}
	s.Require().NoError(s.engine.ApplyRace(s.ctx, ch, elf))
	s.NotNil(ch.FindPendingChoice("languages"))

	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindLanguages, []string{"sylvan"})
	s.Require().NoError(err)
	s.True(ch.Languages.Has("sylvan"))

	dwarf := &rulebook.Race{
		ID: "dwarf", Name: "Dwarf", Speed: 25,
		Languages: []string{"common", "dwarvish"},
		Traits:    []*rulebook.Feature{{ID: "dwarf-darkvision", Name: "Darkvision"}},
	}
	s.Require().NoError(s.engine.ApplyRace(s.ctx, ch, dwarf))

	s.False(ch.HasFeature("elf-fey-ancestry"), "old traits gone")
	s.False(ch.Skills.Has("stealth"), "old racial skill gone")
	s.True(ch.Skills.Has("perception"), "pre-held skill survives")
	s.False(ch.WeaponProficiencies.Has("longsword"))
	s.False(ch.WeaponProficiencies.Has("longbow"))
	s.False(ch.Languages.Has("elvish"))
	s.False(ch.Languages.Has("sylvan"), "resolved racial pick goes too")
	s.True(ch.Languages.Has("common"), "regranted by the new race")
	s.True(ch.Languages.Has("dwarvish"))

	s.Nil(ch.FindPendingChoice("languages"), "dwarves open no language pick")
	s.Empty(ch.ResolvedChoices["languages"])
}

func (s *EngineSuite) TestBackground_ApplyAndRemove() {
	ch := s.newCharacter()
	ch.Skills.Add("insight") // already held before the background

	bg := &rulebook.Background{
		ID:                 "acolyte",
		Name:               "Acolyte",
		SkillProficiencies: []string{"insight", "religion"},
		Languages:          []string{"celestial"},
		LanguageChoices:    1,
		Feature:            &rulebook.Feature{ID: "acolyte-shelter", Name: "Shelter of the Faithful"},
		Equipment:          []string{"holy symbol", "prayer book"},
	}

	s.Require().NoError(s.engine.ApplyBackground(s.ctx, ch, bg))

	s.Equal("acolyte", ch.BackgroundID)
	s.True(ch.Skills.Has("religion"))
	s.True(ch.Languages.Has("celestial"))
	s.True(ch.HasFeature("acolyte-shelter"))
	s.Contains(ch.Equipment.Items, "holy symbol")
	s.NotNil(ch.FindPendingChoice("background:languages"))

	// the shadow set records only what was new
	s.False(ch.BackgroundGrants.Skills.Has("insight"))
	s.True(ch.BackgroundGrants.Skills.Has("religion"))

	s.Require().NoError(s.engine.RemoveBackground(s.ctx, ch))

	s.Empty(ch.BackgroundID)
	s.True(ch.Skills.Has("insight"), "pre-existing skill survives removal")
	s.False(ch.Skills.Has("religion"))
	s.False(ch.Languages.Has("celestial"))
	s.False(ch.HasFeature("acolyte-shelter"))
	s.NotContains(ch.Equipment.Items, "holy symbol")
	s.Nil(ch.FindPendingChoice("background:languages"))
}

func (s *EngineSuite) TestApplyBackground_Idempotent() {
	ch := s.newCharacter()
	bg := &rulebook.Background{ID: "sage", Name: "Sage", SkillProficiencies: []string{"arcana"}}

	s.Require().NoError(s.engine.ApplyBackground(s.ctx, ch, bg))
	s.Require().NoError(s.engine.ApplyBackground(s.ctx, ch, bg))

	s.Equal("sage", ch.BackgroundID)
	s.Equal(1, ch.Skills.Len())
}

func (s *EngineSuite) TestApplyInvocation_Prerequisites() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, warlockClass(), 2))

	err := s.engine.ApplyInvocation(s.ctx, ch, &rulebook.Invocation{
		ID: "voice-of-the-chain-master", PrerequisitePact: "pact-of-the-chain",
	})
	s.True(errors.IsInvalidArgument(err), "pact prerequisite unmet")

	err = s.engine.ApplyInvocation(s.ctx, ch, &rulebook.Invocation{
		ID: "ascendant-step", PrerequisiteLevel: 9,
	})
	s.True(errors.IsInvalidArgument(err), "level prerequisite unmet")

	s.Require().NoError(s.engine.ApplyInvocation(s.ctx, ch, &rulebook.Invocation{ID: "agonizing-blast"}))
	s.True(ch.Invocations.Has("agonizing-blast"))
}
