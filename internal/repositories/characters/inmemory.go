package characters

import (
	"context"
	"sync"

	"github.com/charforge/charforge/internal/domain/character"
	cferr "github.com/charforge/charforge/internal/errors"
)

// inMemoryRepo implements the Repository interface with a map. Useful
// for tests and for running without a Redis instance.
type inMemoryRepo struct {
	mu    sync.RWMutex
	chars map[string]*character.Snapshot
}

// NewInMemoryRepository creates an empty in-memory character repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{chars: make(map[string]*character.Snapshot)}
}

func (r *inMemoryRepo) Create(ctx context.Context, ch *character.Character) error {
	if ch == nil {
		return cferr.InvalidArgument("character cannot be nil")
	}
	if ch.ID == "" {
		return cferr.InvalidArgument("character ID is required")
	}
	if ch.OwnerID == "" {
		return cferr.InvalidArgument("character owner ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.chars[ch.ID]; exists {
		return cferr.AlreadyExistsf("character with ID '%s' already exists", ch.ID)
	}
	r.chars[ch.ID] = ch.ToSnapshot()
	return nil
}

func (r *inMemoryRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, cferr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.chars[id]
	if !ok {
		return nil, cferr.NotFoundf("character with ID '%s' not found", id)
	}
	// clone so callers never mutate the stored snapshot through
	// shared pointers
	return character.FromSnapshot(snap).Clone(), nil
}

func (r *inMemoryRepo) Update(ctx context.Context, ch *character.Character) error {
	if ch == nil {
		return cferr.InvalidArgument("character cannot be nil")
	}
	if ch.ID == "" {
		return cferr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.chars[ch.ID]; !exists {
		return cferr.NotFoundf("character with ID '%s' not found", ch.ID)
	}
	r.chars[ch.ID] = ch.ToSnapshot()
	return nil
}

func (r *inMemoryRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return cferr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.chars[id]; !exists {
		return cferr.NotFoundf("character with ID '%s' not found", id)
	}
	delete(r.chars, id)
	return nil
}

func (r *inMemoryRepo) GetByOwner(ctx context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, cferr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var chars []*character.Character
	for _, snap := range r.chars {
		if snap.OwnerID == ownerID {
			chars = append(chars, character.FromSnapshot(snap).Clone())
		}
	}
	return chars, nil
}
