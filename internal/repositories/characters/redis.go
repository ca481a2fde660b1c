package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/charforge/charforge/internal/domain/character"
	cferr "github.com/charforge/charforge/internal/errors"
)

// storedCharacter wraps a snapshot with storage timestamps
type storedCharacter struct {
	*character.Snapshot
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

// key generates the Redis key for a character
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

// ownerCharactersKey generates the Redis key for an owner's character list
func (r *redisRepo) ownerCharactersKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:characters", ownerID)
}

func (r *redisRepo) Create(ctx context.Context, ch *character.Character) error {
	if ch == nil {
		return cferr.InvalidArgument("character cannot be nil")
	}
	if ch.ID == "" {
		return cferr.InvalidArgument("character ID is required")
	}
	if ch.OwnerID == "" {
		return cferr.InvalidArgument("character owner ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(ch.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return cferr.AlreadyExistsf("character with ID '%s' already exists", ch.ID).
			WithMeta("character_id", ch.ID)
	}

	now := time.Now().UTC()
	stored := storedCharacter{Snapshot: ch.ToSnapshot(), CreatedAt: now, UpdatedAt: now}
	jsonData, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(ch.ID), jsonData, 0)
	pipe.SAdd(ctx, r.ownerCharactersKey(ch.OwnerID), ch.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, cferr.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, cferr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var stored storedCharacter
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &stored); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", unmarshalErr)
	}
	return character.FromSnapshot(stored.Snapshot), nil
}

func (r *redisRepo) Update(ctx context.Context, ch *character.Character) error {
	if ch == nil {
		return cferr.InvalidArgument("character cannot be nil")
	}
	if ch.ID == "" {
		return cferr.InvalidArgument("character ID is required")
	}

	existing, err := r.client.Get(ctx, r.key(ch.ID)).Result()
	if err == redis.Nil {
		return cferr.NotFoundf("character with ID '%s' not found", ch.ID).
			WithMeta("character_id", ch.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to get character: %w", err)
	}

	var prior storedCharacter
	createdAt := time.Now().UTC()
	if unmarshalErr := json.Unmarshal([]byte(existing), &prior); unmarshalErr == nil {
		createdAt = prior.CreatedAt
	}

	stored := storedCharacter{
		Snapshot:  ch.ToSnapshot(),
		CreatedAt: createdAt,
		UpdatedAt: time.Now().UTC(),
	}
	jsonData, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}
	if err := r.client.Set(ctx, r.key(ch.ID), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return cferr.InvalidArgument("character ID is required")
	}

	ch, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerCharactersKey(ch.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, cferr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerCharactersKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	chars := make([]*character.Character, 0, len(ids))
	for _, id := range ids {
		ch, err := r.Get(ctx, id)
		if err != nil {
			// skip entries that can't be loaded
			continue
		}
		chars = append(chars, ch)
	}
	return chars, nil
}
