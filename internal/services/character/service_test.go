package character_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockcatalog "github.com/charforge/charforge/internal/clients/catalog/mock"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/engine"
	"github.com/charforge/charforge/internal/errors"
	"github.com/charforge/charforge/internal/events"
	"github.com/charforge/charforge/internal/repositories/characters"
	charservice "github.com/charforge/charforge/internal/services/character"
)

// sequentialIDs hands out char-1, char-2, ... so tests can predict ids
type sequentialIDs struct{ n int }

func (g *sequentialIDs) New() string {
	g.n++
	return fmt.Sprintf("char-%d", g.n)
}

type ServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockCatalog *mockcatalog.MockClient
	svc         charservice.Service
	ctx         context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCatalog = mockcatalog.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	eng, err := engine.New(&engine.Config{Catalog: s.mockCatalog, Bus: events.NewBus()})
	s.Require().NoError(err)

	s.svc = charservice.NewService(&charservice.ServiceConfig{
		Repository:    characters.NewInMemoryRepository(),
		Engine:        eng,
		Catalog:       s.mockCatalog,
		UUIDGenerator: &sequentialIDs{},
	})

	s.stubCatalog()
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func artificerClass() *rulebook.Class {
	return &rulebook.Class{
		ID:           "artificer",
		Name:         "Artificer",
		HitDie:       8,
		SavingThrows: []shared.Ability{shared.AbilityConstitution, shared.AbilityIntelligence},
		SkillChoices: &rulebook.ChoiceDescriptor{
			Kind:   shared.ChoiceKindSkills,
			Choose: 2,
			From:   []string{"arcana", "history", "investigation", "perception"},
		},
		Spellcasting: &rulebook.SpellcastingInfo{
			Ability:         shared.AbilityIntelligence,
			Type:            rulebook.SpellcastingPrepared,
			PreparedDivisor: 2,
		},
		Levels: map[int]*rulebook.ClassLevel{
			1: {Features: []*rulebook.Feature{{ID: "artificer-magical-tinkering", Name: "Magical Tinkering"}}},
			2: {Features: []*rulebook.Feature{{ID: "artificer-infuse-item", Name: "Infuse Item"}}},
		},
		SubclassLevel: 3,
	}
}

func hillDwarfRace() *rulebook.Race {
	return &rulebook.Race{
		ID:   "hill-dwarf",
		Name: "Hill Dwarf",
		AbilityBonuses: map[shared.Ability]int{
			shared.AbilityConstitution: 2,
			shared.AbilityWisdom:       1,
		},
		Speed:     25,
		Languages: []string{"common", "dwarvish"},
	}
}

func (s *ServiceSuite) stubCatalog() {
	s.mockCatalog.EXPECT().GetClass(gomock.Any(), "artificer").
		Return(artificerClass(), nil).AnyTimes()
	s.mockCatalog.EXPECT().GetRace(gomock.Any(), "hill-dwarf").
		Return(hillDwarfRace(), nil).AnyTimes()
	s.mockCatalog.EXPECT().GetSlotTable(gomock.Any(), "artificer").
		Return(rulebook.SlotTable{1: {2}, 2: {2}, 3: {3}, 4: {3}, 5: {4, 2}}, nil).AnyTimes()
	s.mockCatalog.EXPECT().GetCantripsTable(gomock.Any(), "artificer").
		Return(rulebook.CantripsTable{1: 2, 2: 2, 3: 2, 4: 2, 5: 2}, nil).AnyTimes()
	s.mockCatalog.EXPECT().GetArmor(gomock.Any()).
		Return([]*rulebook.Armor{
			{ID: "scale-mail", Name: "Scale Mail", Category: rulebook.ArmorCategoryMedium, BaseAC: 14, StealthDisadvantage: true},
		}, nil).AnyTimes()
	s.mockCatalog.EXPECT().GetWeapons(gomock.Any()).
		Return([]*rulebook.Weapon{
			{ID: "warhammer", Name: "Warhammer", Category: rulebook.WeaponCategoryMartial, Damage: "1d8"},
		}, nil).AnyTimes()
}

func (s *ServiceSuite) createArtificer(level int) string {
	ch, err := s.svc.Create(s.ctx, &charservice.CreateInput{
		OwnerID: "owner-1",
		Name:    "Brynn",
		RaceID:  "hill-dwarf",
		ClassID: "artificer",
		Level:   level,
		AbilityScores: map[shared.Ability]int{
			shared.AbilityStrength:     10,
			shared.AbilityDexterity:    14,
			shared.AbilityConstitution: 14,
			shared.AbilityIntelligence: 16,
			shared.AbilityWisdom:       10,
			shared.AbilityCharisma:     8,
		},
	})
	s.Require().NoError(err)
	return ch.ID
}

func (s *ServiceSuite) TestCreate() {
	id := s.createArtificer(2)
	s.Equal("char-1", id)

	ch, err := s.svc.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Brynn", ch.Name)
	s.Equal("artificer", ch.ClassID)
	s.Equal(2, ch.Level)
	// con 14 raw + 2 racial = mod 3: (8+3) + (5+3)
	s.Equal(19, ch.MaxHP)
	s.Equal(25, ch.Speed)
	s.True(ch.Languages.Has("dwarvish"))
	s.NotNil(ch.Combat)
}

func (s *ServiceSuite) TestCreate_Validation() {
	_, err := s.svc.Create(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.Create(s.ctx, &charservice.CreateInput{OwnerID: "owner-1"})
	s.True(errors.IsInvalidArgument(err), "name required")

	_, err = s.svc.Create(s.ctx, &charservice.CreateInput{Name: "Brynn"})
	s.True(errors.IsInvalidArgument(err), "owner required")

	_, err = s.svc.Create(s.ctx, &charservice.CreateInput{
		OwnerID:       "owner-1",
		Name:          "Brynn",
		AbilityScores: map[shared.Ability]int{"luck": 18},
	})
	s.True(errors.IsInvalidArgument(err), "luck is not an ability")
}

func (s *ServiceSuite) TestSetLevel_Persists() {
	id := s.createArtificer(1)

	_, err := s.svc.SetLevel(s.ctx, id, 3)
	s.Require().NoError(err)

	ch, err := s.svc.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(3, ch.Level)
	s.True(ch.HasFeature("artificer-infuse-item"))
}

func (s *ServiceSuite) TestPrepareSpell_Capacity() {
	id := s.createArtificer(2)

	// int mod 3 + level 2 / divisor 2 = 4 prepared spells
	for _, spell := range []string{"cure-wounds", "faerie-fire", "grease", "identify"} {
		_, err := s.svc.PrepareSpell(s.ctx, id, spell)
		s.Require().NoError(err)
	}

	_, err := s.svc.PrepareSpell(s.ctx, id, "sanctuary")
	s.True(errors.IsInvalidArgument(err), "fifth spell is over capacity")

	// re-preparing a held spell is a quiet no-op
	_, err = s.svc.PrepareSpell(s.ctx, id, "grease")
	s.Require().NoError(err)

	ch, err := s.svc.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(4, ch.Spellcasting.Prepared.Len())
}

func (s *ServiceSuite) TestUnprepareSpell() {
	id := s.createArtificer(2)
	_, err := s.svc.PrepareSpell(s.ctx, id, "grease")
	s.Require().NoError(err)

	_, err = s.svc.UnprepareSpell(s.ctx, id, "grease")
	s.Require().NoError(err)

	ch, err := s.svc.Get(s.ctx, id)
	s.Require().NoError(err)
	s.False(ch.Spellcasting.Prepared.Has("grease"))
}

func (s *ServiceSuite) TestCastSpell() {
	id := s.createArtificer(2)
	_, err := s.svc.PrepareSpell(s.ctx, id, "cure-wounds")
	s.Require().NoError(err)

	// two first-level slots at level 2
	_, err = s.svc.CastSpell(s.ctx, id, "cure-wounds", 1)
	s.Require().NoError(err)
	_, err = s.svc.CastSpell(s.ctx, id, "cure-wounds", 1)
	s.Require().NoError(err)

	_, err = s.svc.CastSpell(s.ctx, id, "cure-wounds", 1)
	s.True(errors.IsInvalidArgument(err), "slots exhausted")

	_, err = s.svc.CastSpell(s.ctx, id, "grease", 1)
	s.True(errors.IsInvalidArgument(err), "unprepared spell")

	_, err = s.svc.CastSpell(s.ctx, id, "mending", 0)
	s.True(errors.IsInvalidArgument(err), "unknown cantrip")
}

func (s *ServiceSuite) TestRests() {
	id := s.createArtificer(2)
	_, err := s.svc.PrepareSpell(s.ctx, id, "cure-wounds")
	s.Require().NoError(err)
	_, err = s.svc.CastSpell(s.ctx, id, "cure-wounds", 1)
	s.Require().NoError(err)

	ch, err := s.svc.ShortRest(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(1, ch.Spellcasting.SlotsUsed[1], "artificer slots need a long rest")

	ch, err = s.svc.LongRest(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(0, ch.Spellcasting.SlotsUsed[1])
	s.Equal(ch.MaxHP, ch.HP)
}

func (s *ServiceSuite) TestEquip() {
	id := s.createArtificer(2)

	armor := "scale-mail"
	shield := true
	ch, err := s.svc.Equip(s.ctx, id, &charservice.EquipInput{Armor: &armor, Shield: &shield})
	s.Require().NoError(err)

	// 14 base + dex capped at 2 + shield 2
	s.Equal(18, ch.Combat.AC)
}

func (s *ServiceSuite) TestEquip_WeaponBonus() {
	id := s.createArtificer(2)

	ch, err := s.svc.Equip(s.ctx, id, &charservice.EquipInput{
		Weapons:       []string{"warhammer"},
		WeaponBonuses: map[string]int{"warhammer": 1},
	})
	s.Require().NoError(err)

	s.Require().Len(ch.Combat.Attacks, 1)
	row := ch.Combat.Attacks[0]
	// str mod 0 + enhancement 1, no martial proficiency from this build
	s.Equal(1, row.DamageBonus)
	s.Equal(1, row.AttackBonus)

	loaded, err := s.svc.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(1, loaded.Equipment.WeaponBonuses["warhammer"], "bonus persists")
}

func (s *ServiceSuite) TestResolveChoice_Persists() {
	id := s.createArtificer(1)

	next, err := s.svc.ResolveChoice(s.ctx, id, shared.ChoiceKindSkills, []string{"arcana", "perception"})
	s.Require().NoError(err)
	s.NotNil(next, "cantrip pick still open")

	ch, err := s.svc.Get(s.ctx, id)
	s.Require().NoError(err)
	s.True(ch.Skills.Has("arcana"))
	s.Nil(ch.FindPendingChoice("skills"))
}

func (s *ServiceSuite) TestExportImport_RoundTrip() {
	id := s.createArtificer(2)
	_, err := s.svc.PrepareSpell(s.ctx, id, "cure-wounds")
	s.Require().NoError(err)

	data, err := s.svc.Export(s.ctx, id)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, id))

	imported, err := s.svc.Import(s.ctx, data)
	s.Require().NoError(err)
	s.Equal(id, imported.ID, "export carries the id")
	s.True(imported.Spellcasting.Prepared.Has("cure-wounds"))
	s.NotNil(imported.Combat, "derived stats rebuilt on import")

	// importing again overwrites rather than failing
	_, err = s.svc.Import(s.ctx, data)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestImport_Malformed() {
	_, err := s.svc.Import(s.ctx, []byte("{not json"))
	s.True(errors.IsValidation(err))
}

func (s *ServiceSuite) TestList() {
	s.createArtificer(1)
	s.createArtificer(1)

	owned, err := s.svc.List(s.ctx, "owner-1")
	s.Require().NoError(err)
	s.Len(owned, 2)
}
