package engine_test

import (
	"go.uber.org/mock/gomock"

	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/errors"
)

func wizardSpellList() []*rulebook.Spell {
	return []*rulebook.Spell{
		{ID: "fire-bolt", Name: "Fire Bolt", Level: 0},
		{ID: "mage-hand", Name: "Mage Hand", Level: 0},
		{ID: "prestidigitation", Name: "Prestidigitation", Level: 0},
		{ID: "alarm", Name: "Alarm", Level: 1, Ritual: true},
		{ID: "magic-missile", Name: "Magic Missile", Level: 1},
		{ID: "shield", Name: "Shield", Level: 1},
		{ID: "sleep", Name: "Sleep", Level: 1},
		{ID: "misty-step", Name: "Misty Step", Level: 2},
		{ID: "fireball", Name: "Fireball", Level: 3},
	}
}

func (s *EngineSuite) TestNextChoice_PriorityOrder() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 3))

	// pending now: skills, feature:fighter-fighting-style, subclass
	pc, err := s.engine.NextChoice(s.ctx, ch)
	s.Require().NoError(err)
	s.Require().NotNil(pc)
	s.Equal(shared.ChoiceKindSkills, pc.Kind, "skills outrank feature and subclass picks")

	ch.MarkResolved("skills", []string{"athletics", "perception"})

	s.mockCatalog.EXPECT().ListSubclasses(gomock.Any(), "fighter").
		Return([]*rulebook.SubclassRef{{ID: "champion"}, {ID: "battle-master"}}, nil)

	pc, err = s.engine.NextChoice(s.ctx, ch)
	s.Require().NoError(err)
	s.Require().NotNil(pc)
	s.Equal(shared.ChoiceKindSubclass, pc.Kind)
	s.Equal([]string{"champion", "battle-master"}, pc.From, "options filled from the catalog")
}

func (s *EngineSuite) TestNextChoice_Empty() {
	ch := s.newCharacter()
	pc, err := s.engine.NextChoice(s.ctx, ch)
	s.Require().NoError(err)
	s.Nil(pc)
}

func (s *EngineSuite) TestNextChoice_CatalogMissLeavesOptionsEmpty() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 3))
	ch.MarkResolved("skills", []string{"athletics", "perception"})
	ch.RemovePendingChoice("feature:fighter-fighting-style")

	s.mockCatalog.EXPECT().ListSubclasses(gomock.Any(), "fighter").
		Return(nil, errors.NotFoundf("no subclasses"))

	pc, err := s.engine.NextChoice(s.ctx, ch)
	s.Require().NoError(err, "a catalog miss degrades, it does not fail")
	s.Require().NotNil(pc)
	s.Empty(pc.From)
}

func (s *EngineSuite) TestResolveChoice_CountMismatch() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 1))

	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindSkills, []string{"athletics"})
	s.True(errors.IsInvalidArgument(err), "two picks required, one given")
}

func (s *EngineSuite) TestResolveChoice_DuplicateSelection() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 1))

	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindSkills, []string{"athletics", "athletics"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineSuite) TestResolveChoice_OutsideOptionList() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 1))

	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindSkills, []string{"athletics", "stealth"})
	s.True(errors.IsInvalidArgument(err), "stealth is not on the fighter list")
}

func (s *EngineSuite) TestResolveChoice_NothingPending() {
	ch := s.newCharacter()
	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindSkills, []string{"athletics", "history"})
	s.True(errors.IsNotFound(err))
}

func (s *EngineSuite) TestResolveChoice_SkillsReplaceAndRelayer() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 1))
	s.Require().NoError(s.engine.ApplyBackground(s.ctx, ch, &rulebook.Background{
		ID: "sage", Name: "Sage", SkillProficiencies: []string{"arcana", "history"},
	}))

	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindSkills, []string{"athletics", "perception"})
	s.Require().NoError(err)

	s.True(ch.Skills.Has("athletics"))
	s.True(ch.Skills.Has("perception"))
	s.True(ch.Skills.Has("arcana"), "background grant survives the skill pick")
	s.True(ch.Skills.Has("history"))
	s.Nil(ch.FindPendingChoice("skills"))
	s.Equal([]string{"athletics", "perception"}, ch.ResolvedChoices["skills"])

	// picking again replaces the previous pick, not stacks it
	ch.ReopenChoice(&character.PendingChoice{
		Key:    string(shared.ChoiceKindSkills),
		Kind:   shared.ChoiceKindSkills,
		Choose: 2,
		From:   fighterClass().SkillChoices.From,
		Source: "fighter",
	})
	_, err = s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindSkills, []string{"insight", "survival"})
	s.Require().NoError(err)
	s.False(ch.Skills.Has("athletics"))
	s.True(ch.Skills.Has("insight"))
	s.True(ch.Skills.Has("arcana"), "background grant still survives")
}

func (s *EngineSuite) TestResolveChoice_SubclassChains() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, wizardClass(), 2))
	ch.MarkResolved("skills", []string{"arcana", "history"})

	s.mockCatalog.EXPECT().ListSubclasses(gomock.Any(), "wizard").
		Return([]*rulebook.SubclassRef{{ID: "evocation"}, {ID: "divination"}}, nil)

	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindSubclass, []string{"evocation"})
	s.Require().NoError(err)

	s.Equal("evocation", ch.SubclassID)
	s.True(ch.HasFeature("evocation-sculpt-spells"))
	s.True(ch.Spellcasting.AlwaysPrepared.Has("burning-hands"))
}

func (s *EngineSuite) TestResolveChoice_Spells() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, wizardClass(), 1))

	pc := ch.FindPendingChoice("spells")
	s.Require().NotNil(pc)
	s.Equal(6, pc.Choose, "a first-level wizard starts with six spells")

	s.mockCatalog.EXPECT().GetSpellList(gomock.Any(), "wizard").
		Return(wizardSpellList(), nil)

	picks := []string{"alarm", "magic-missile", "shield", "sleep", "misty-step", "fireball"}
	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindSpells, picks)
	s.Require().NoError(err)

	for _, spell := range picks {
		s.True(ch.Spellcasting.Known.Has(spell))
	}
}

func (s *EngineSuite) TestResolveChoice_SpellOptionsExcludeKnown() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, wizardClass(), 1))
	ch.MarkResolved("skills", []string{"arcana", "history"})
	ch.Spellcasting.Known.Add("magic-missile")

	s.mockCatalog.EXPECT().GetSpellList(gomock.Any(), "wizard").
		Return(wizardSpellList(), nil)

	pc, err := s.engine.NextChoice(s.ctx, ch)
	s.Require().NoError(err)
	s.Require().NotNil(pc)
	s.Equal(shared.ChoiceKindSpells, pc.Kind)
	s.NotContains(pc.From, "magic-missile", "already known")
	s.NotContains(pc.From, "fire-bolt", "cantrips live in their own pick")
	s.Contains(pc.From, "fireball")
}

func (s *EngineSuite) TestResolveChoice_BonusCantrips() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, wizardClass(), 1))

	pc := ch.FindPendingChoice("bonus-cantrips")
	s.Require().NotNil(pc)
	s.Equal(3, pc.Choose)

	s.mockCatalog.EXPECT().GetSpellList(gomock.Any(), "wizard").
		Return(wizardSpellList(), nil)

	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindBonusCantrips,
		[]string{"fire-bolt", "mage-hand", "prestidigitation"})
	s.Require().NoError(err)
	s.Equal(3, ch.Spellcasting.Cantrips.Len())
}

func (s *EngineSuite) TestResolveChoice_InfusionCapEnforced() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, artificerClass(), 2))
	ch.Infusions.Known.AddAll("a", "b", "c")

	pc := ch.FindPendingChoice("infusions")
	s.Require().NotNil(pc)
	s.Equal(4, pc.Choose)

	s.mockCatalog.EXPECT().GetInfusions(gomock.Any(), "artificer").
		Return([]*rulebook.Infusion{
			{ID: "d", Level: 2}, {ID: "e", Level: 2}, {ID: "f", Level: 2}, {ID: "g", Level: 2},
		}, nil)

	// four fresh picks would put the record at seven known against a cap of four
	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindInfusions,
		[]string{"d", "e", "f", "g"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineSuite) TestResolveChoice_BackgroundLanguagesShadowed() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyBackground(s.ctx, ch, &rulebook.Background{
		ID: "sage", Name: "Sage", LanguageChoices: 2,
	}))

	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindLanguages,
		[]string{"draconic", "infernal"})
	s.Require().NoError(err)

	s.True(ch.Languages.Has("draconic"))
	s.True(ch.BackgroundGrants.Languages.Has("draconic"), "recorded for later removal")

	s.Require().NoError(s.engine.RemoveBackground(s.ctx, ch))
	s.False(ch.Languages.Has("draconic"))
}

func (s *EngineSuite) TestResolveChoice_OutsideCatalogOptions() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyBackground(s.ctx, ch, &rulebook.Background{
		ID: "sage", Name: "Sage", LanguageChoices: 1,
	}))

	// the language pick carries no inline list; membership is checked
	// against the catalog
	_, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindLanguages, []string{"klingon"})
	s.True(errors.IsInvalidArgument(err))
	s.False(ch.Languages.Has("klingon"))
}

func (s *EngineSuite) TestResolveChoice_ReturnsNextPending() {
	ch := s.newCharacter()
	s.Require().NoError(s.engine.ApplyClass(s.ctx, ch, fighterClass(), 1))

	next, err := s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindSkills, []string{"athletics", "perception"})
	s.Require().NoError(err)
	s.Require().NotNil(next)
	s.Equal("feature:fighter-fighting-style", next.Key)

	next, err = s.engine.ResolveChoice(s.ctx, ch, shared.ChoiceKindFeature, []string{"defense"})
	s.Require().NoError(err)
	s.Nil(next, "queue drained")
	s.Equal([]string{"defense"}, ch.ResolvedChoices["feature:fighter-fighting-style"])
}
