package catalog

//go:generate mockgen -destination=mock/mock_client.go -package=mockcatalog -source=interface.go

import (
	"context"

	"github.com/charforge/charforge/internal/domain/rulebook"
)

// Client provides read access to the rule catalog: classes, subclasses,
// races, backgrounds, spell lists, progression tables, and equipment.
type Client interface {
	GetClass(ctx context.Context, id string) (*rulebook.Class, error)
	GetSubclass(ctx context.Context, source, id string) (*rulebook.Subclass, error)
	ListSubclasses(ctx context.Context, source string) ([]*rulebook.SubclassRef, error)
	GetRace(ctx context.Context, id string) (*rulebook.Race, error)
	GetBackground(ctx context.Context, id string) (*rulebook.Background, error)

	GetSpellList(ctx context.Context, classID string) ([]*rulebook.Spell, error)
	GetSlotTable(ctx context.Context, classID string) (rulebook.SlotTable, error)
	GetCantripsTable(ctx context.Context, classID string) (rulebook.CantripsTable, error)

	GetInfusions(ctx context.Context, classID string) ([]*rulebook.Infusion, error)
	GetInvocations(ctx context.Context) ([]*rulebook.Invocation, error)
	GetPactBoons(ctx context.Context) ([]*rulebook.PactBoon, error)

	GetArmor(ctx context.Context) ([]*rulebook.Armor, error)
	GetWeapons(ctx context.Context) ([]*rulebook.Weapon, error)
	GetTools(ctx context.Context, category string) ([]string, error)
	GetLanguages(ctx context.Context) ([]string, error)
}
