package characters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcharacters -source=repository.go

import (
	"context"

	"github.com/charforge/charforge/internal/domain/character"
)

// Repository persists character snapshots
type Repository interface {
	// Create stores a new character; fails when the id already exists
	Create(ctx context.Context, ch *character.Character) error

	// Get retrieves a character by id
	Get(ctx context.Context, id string) (*character.Character, error)

	// Update stores the current state of an existing character
	Update(ctx context.Context, ch *character.Character) error

	// Delete removes a character by id
	Delete(ctx context.Context, id string) error

	// GetByOwner retrieves all characters for an owner
	GetByOwner(ctx context.Context, ownerID string) ([]*character.Character, error)
}
