package character

//go:generate mockgen -destination=mock/mock_service.go -package=mockcharacter -source=service.go

import (
	"context"

	"github.com/charforge/charforge/internal/clients/catalog"
	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/engine"
	"github.com/charforge/charforge/internal/events"
	"github.com/charforge/charforge/internal/repositories/characters"
	"github.com/charforge/charforge/internal/uuid"
)

// CreateInput holds what a new character needs
type CreateInput struct {
	OwnerID       string
	Name          string
	RaceID        string
	ClassID       string
	Level         int
	AbilityScores map[shared.Ability]int
}

// EquipInput changes what the character wears and carries. Nil fields
// leave the current value alone.
type EquipInput struct {
	Armor         *string
	Shield        *bool
	Weapons       []string
	WeaponBonuses map[string]int
	ACBonus       *int
	ACOverride    *int
}

// Service orchestrates character operations: load, mutate through the
// engine, persist, notify.
type Service interface {
	Create(ctx context.Context, input *CreateInput) (*character.Character, error)
	Get(ctx context.Context, id string) (*character.Character, error)
	List(ctx context.Context, ownerID string) ([]*character.Character, error)
	Delete(ctx context.Context, id string) error

	SetRace(ctx context.Context, id, raceID string) (*character.Character, error)
	SetClass(ctx context.Context, id, classID string, level int) (*character.Character, error)
	SetLevel(ctx context.Context, id string, level int) (*character.Character, error)
	SetBackground(ctx context.Context, id, backgroundID string) (*character.Character, error)
	RemoveBackground(ctx context.Context, id string) (*character.Character, error)

	NextChoice(ctx context.Context, id string) (*character.PendingChoice, error)
	ResolveChoice(ctx context.Context, id string, kind shared.ChoiceKind, selections []string) (*character.PendingChoice, error)

	Equip(ctx context.Context, id string, input *EquipInput) (*character.Character, error)
	ToggleInfusion(ctx context.Context, id, infusionID string) (*character.Character, error)

	PrepareSpell(ctx context.Context, id, spellID string) (*character.Character, error)
	UnprepareSpell(ctx context.Context, id, spellID string) (*character.Character, error)
	CastSpell(ctx context.Context, id, spellID string, slotLevel int) (*character.Character, error)

	UsePool(ctx context.Context, id, pool string, amount int) (*character.Character, error)
	ShortRest(ctx context.Context, id string) (*character.Character, error)
	LongRest(ctx context.Context, id string) (*character.Character, error)

	Export(ctx context.Context, id string) ([]byte, error)
	Import(ctx context.Context, data []byte) (*character.Character, error)

	Recalculate(ctx context.Context, id string) (*character.Character, error)
}

// ServiceConfig holds the service's dependencies
type ServiceConfig struct {
	Repository    characters.Repository
	Engine        *engine.Engine
	Catalog       catalog.Client
	Bus           *events.Bus
	UUIDGenerator uuid.Generator
}

type service struct {
	repo    characters.Repository
	engine  *engine.Engine
	catalog catalog.Client
	bus     *events.Bus
	uuid    uuid.Generator
}

// NewService creates the character service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("Repository cannot be nil")
	}
	if cfg.Engine == nil {
		panic("Engine cannot be nil")
	}
	if cfg.Catalog == nil {
		panic("Catalog cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.NewGoogleUUIDGenerator()
	}
	return &service{
		repo:    cfg.Repository,
		engine:  cfg.Engine,
		catalog: cfg.Catalog,
		bus:     cfg.Bus,
		uuid:    cfg.UUIDGenerator,
	}
}
