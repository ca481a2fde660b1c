package character

import (
	"context"
	"encoding/json"

	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/rulebook/calculators"
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/errors"
)

func (s *service) Create(ctx context.Context, input *CreateInput) (*character.Character, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("name is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	ch := character.New(s.uuid.New(), input.OwnerID, input.Name)
	for ability, score := range input.AbilityScores {
		if !shared.IsValidAbility(ability) {
			return nil, errors.InvalidArgumentf("unknown ability %s", ability)
		}
		ch.AbilityScores[ability] = score
	}

	if input.RaceID != "" {
		race, err := s.catalog.GetRace(ctx, input.RaceID)
		if err != nil {
			return nil, errors.Wrapf(err, "loading race %s", input.RaceID)
		}
		if err := s.engine.ApplyRace(ctx, ch, race); err != nil {
			return nil, err
		}
	}

	if input.ClassID != "" {
		level := input.Level
		if level == 0 {
			level = 1
		}
		class, err := s.catalog.GetClass(ctx, input.ClassID)
		if err != nil {
			return nil, errors.Wrapf(err, "loading class %s", input.ClassID)
		}
		if err := s.engine.ApplyClass(ctx, ch, class, level); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *service) Get(ctx context.Context, id string) (*character.Character, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, ownerID string) ([]*character.Character, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// mutate loads a character, applies fn, and persists the result
func (s *service) mutate(ctx context.Context, id string, fn func(ch *character.Character) error) (*character.Character, error) {
	ch, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(ch); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *service) SetRace(ctx context.Context, id, raceID string) (*character.Character, error) {
	race, err := s.catalog.GetRace(ctx, raceID)
	if err != nil {
		return nil, errors.Wrapf(err, "loading race %s", raceID)
	}
	return s.mutate(ctx, id, func(ch *character.Character) error {
		return s.engine.ApplyRace(ctx, ch, race)
	})
}

func (s *service) SetClass(ctx context.Context, id, classID string, level int) (*character.Character, error) {
	class, err := s.catalog.GetClass(ctx, classID)
	if err != nil {
		return nil, errors.Wrapf(err, "loading class %s", classID)
	}
	return s.mutate(ctx, id, func(ch *character.Character) error {
		return s.engine.ApplyClass(ctx, ch, class, level)
	})
}

func (s *service) SetLevel(ctx context.Context, id string, level int) (*character.Character, error) {
	return s.mutate(ctx, id, func(ch *character.Character) error {
		return s.engine.SetLevel(ctx, ch, level)
	})
}

func (s *service) SetBackground(ctx context.Context, id, backgroundID string) (*character.Character, error) {
	bg, err := s.catalog.GetBackground(ctx, backgroundID)
	if err != nil {
		return nil, errors.Wrapf(err, "loading background %s", backgroundID)
	}
	return s.mutate(ctx, id, func(ch *character.Character) error {
		return s.engine.ApplyBackground(ctx, ch, bg)
	})
}

func (s *service) RemoveBackground(ctx context.Context, id string) (*character.Character, error) {
	return s.mutate(ctx, id, func(ch *character.Character) error {
		return s.engine.RemoveBackground(ctx, ch)
	})
}

func (s *service) NextChoice(ctx context.Context, id string) (*character.PendingChoice, error) {
	ch, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.engine.NextChoice(ctx, ch)
}

func (s *service) ResolveChoice(ctx context.Context, id string, kind shared.ChoiceKind, selections []string) (*character.PendingChoice, error) {
	ch, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := s.engine.ResolveChoice(ctx, ch, kind, selections)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ch); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) Equip(ctx context.Context, id string, input *EquipInput) (*character.Character, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return s.mutate(ctx, id, func(ch *character.Character) error {
		eq := ch.Equipment
		if input.Armor != nil {
			eq.Armor = *input.Armor
		}
		if input.Shield != nil {
			eq.Shield = *input.Shield
		}
		if input.Weapons != nil {
			eq.Weapons = append([]string(nil), input.Weapons...)
		}
		if input.WeaponBonuses != nil {
			eq.WeaponBonuses = make(map[string]int, len(input.WeaponBonuses))
			for weaponID, bonus := range input.WeaponBonuses {
				eq.WeaponBonuses[weaponID] = bonus
			}
		}
		if input.ACBonus != nil {
			eq.ACBonus = *input.ACBonus
		}
		if input.ACOverride != nil {
			eq.ACOverride = *input.ACOverride
		}
		return s.engine.Recalculate(ctx, ch)
	})
}

func (s *service) ToggleInfusion(ctx context.Context, id, infusionID string) (*character.Character, error) {
	return s.mutate(ctx, id, func(ch *character.Character) error {
		if ch.Infusions == nil {
			return errors.InvalidArgument("character has no infusions")
		}
		if err := ch.Infusions.ToggleActive(infusionID); err != nil {
			return err
		}
		return s.engine.Recalculate(ctx, ch)
	})
}

func (s *service) PrepareSpell(ctx context.Context, id, spellID string) (*character.Character, error) {
	return s.mutate(ctx, id, func(ch *character.Character) error {
		sc := ch.Spellcasting
		if sc == nil || !sc.Enabled {
			return errors.InvalidArgument("character has no spellcasting")
		}
		if sc.Type != rulebook.SpellcastingPrepared {
			return errors.InvalidArgument("character does not prepare spells")
		}
		if sc.AlwaysPrepared.Has(spellID) || sc.Prepared.Has(spellID) {
			return nil
		}
		if sc.Prepared.Len() >= calculators.PreparedCapacity(ch) {
			return errors.InvalidArgumentf("already at the %d prepared spell limit", calculators.PreparedCapacity(ch))
		}
		sc.Prepared.Add(spellID)
		return nil
	})
}

func (s *service) UnprepareSpell(ctx context.Context, id, spellID string) (*character.Character, error) {
	return s.mutate(ctx, id, func(ch *character.Character) error {
		sc := ch.Spellcasting
		if sc == nil || !sc.Enabled {
			return errors.InvalidArgument("character has no spellcasting")
		}
		if sc.AlwaysPrepared.Has(spellID) {
			return errors.InvalidArgumentf("%s is always prepared and cannot be removed", spellID)
		}
		sc.Prepared.Remove(spellID)
		return nil
	})
}

func (s *service) CastSpell(ctx context.Context, id, spellID string, slotLevel int) (*character.Character, error) {
	return s.mutate(ctx, id, func(ch *character.Character) error {
		sc := ch.Spellcasting
		if sc == nil || !sc.Enabled {
			return errors.InvalidArgument("character has no spellcasting")
		}

		// cantrips never consume a slot
		if slotLevel == 0 {
			if !sc.Cantrips.Has(spellID) {
				return errors.InvalidArgumentf("cantrip %s is not known", spellID)
			}
			return nil
		}

		castable := sc.IsPrepared(spellID)
		if sc.Type == rulebook.SpellcastingKnown {
			castable = sc.Known.Has(spellID)
		}
		if !castable {
			return errors.InvalidArgumentf("spell %s is not ready to cast", spellID)
		}
		if !sc.UseSlot(slotLevel) {
			return errors.InvalidArgumentf("no level %d slots remaining", slotLevel)
		}
		return nil
	})
}

func (s *service) UsePool(ctx context.Context, id, pool string, amount int) (*character.Character, error) {
	return s.mutate(ctx, id, func(ch *character.Character) error {
		if !ch.UsePool(pool, amount) {
			return errors.InvalidArgumentf("pool %s cannot cover %d", pool, amount)
		}
		return nil
	})
}

func (s *service) ShortRest(ctx context.Context, id string) (*character.Character, error) {
	return s.mutate(ctx, id, func(ch *character.Character) error {
		ch.ShortRest()
		return nil
	})
}

func (s *service) LongRest(ctx context.Context, id string) (*character.Character, error) {
	return s.mutate(ctx, id, func(ch *character.Character) error {
		ch.LongRest()
		return nil
	})
}

func (s *service) Export(ctx context.Context, id string) ([]byte, error) {
	ch, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(ch.ToSnapshot(), "", "  ")
}

func (s *service) Import(ctx context.Context, data []byte) (*character.Character, error) {
	var snap character.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Validationf("malformed character export: %v", err)
	}
	if snap.ID == "" {
		snap.ID = s.uuid.New()
	}
	ch := character.FromSnapshot(&snap)

	if err := s.engine.Recalculate(ctx, ch); err != nil {
		return nil, err
	}

	err := s.repo.Create(ctx, ch)
	if errors.IsAlreadyExists(err) {
		err = s.repo.Update(ctx, ch)
	}
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *service) Recalculate(ctx context.Context, id string) (*character.Character, error) {
	return s.mutate(ctx, id, func(ch *character.Character) error {
		return s.engine.Recalculate(ctx, ch)
	})
}
