package guild

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	redisclient "github.com/KirkDiggler/realm-api/internal/redis"
	"github.com/KirkDiggler/realm-api/internal/repositories/character"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
)

const (
	guildKeyPrefix = "guild:"
	nameKeyPrefix  = "guild:name:"

	// ReasonNameTaken marks a lost race for a guild name
	ReasonNameTaken = "NAME_TAKEN"

	errGuildNil     = "guild cannot be nil"
	errGuildIDEmpty = "guild ID cannot be empty"
)

// Key returns the redis key holding a guild
func Key(id string) string {
	return guildKeyPrefix + id
}

func nameKey(name string) string {
	return nameKeyPrefix + name
}

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis guild repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed guild repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	result, err := r.client.Get(ctx, Key(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("guild with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get guild")
	}

	var g entities.Guild
	if err := json.Unmarshal([]byte(result), &g); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal guild data")
	}

	return &GetOutput{Guild: &g}, nil
}

func (r *redisRepository) GetByName(ctx context.Context, input GetByNameInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("guild name cannot be empty")
	}

	id, err := r.client.Get(ctx, nameKey(input.Name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("guild named %q not found", input.Name)
		}
		return nil, errors.Wrapf(err, "failed to resolve guild name")
	}

	return r.Get(ctx, GetInput{ID: id})
}

func (r *redisRepository) NameTaken(ctx context.Context, name string) (bool, error) {
	n, err := r.client.Exists(ctx, nameKey(name)).Result()
	if err != nil {
		return false, errors.Wrapf(err, "failed to check guild name")
	}
	return n > 0, nil
}

func (r *redisRepository) Create(g *entities.Guild) ([]unitofwork.Write, error) {
	put, err := r.Put(nil, g)
	if err != nil {
		return nil, err
	}

	name := g.Name
	claim := &unitofwork.Claim{
		Key:   nameKey(name),
		Value: g.ID,
		Taken: func() error {
			return errors.FailedPreconditionf("guild name %q is taken", name).WithReason(ReasonNameTaken)
		},
	}

	return []unitofwork.Write{claim, put}, nil
}

func (r *redisRepository) Put(before, after *entities.Guild) (unitofwork.Write, error) {
	if after == nil {
		return nil, errors.InvalidArgument(errGuildNil)
	}
	if after.ID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	var expected int64
	if before != nil {
		if before.Name != after.Name {
			return nil, errors.InvalidArgument("guild names cannot change")
		}
		expected = before.Version
	}
	after.Version = expected + 1

	data, err := json.Marshal(after)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal guild data")
	}

	return &unitofwork.Put{Key: Key(after.ID), Expected: expected, Value: data}, nil
}

func (r *redisRepository) Disband(g *entities.Guild) []unitofwork.Write {
	id := g.ID
	return []unitofwork.Write{
		&unitofwork.Delete{
			Key:      Key(id),
			Expected: g.Version,
			Index: func(ctx context.Context, pipe redis.Pipeliner) {
				pipe.Del(ctx, character.GuildMembersKey(id))
			},
		},
		&unitofwork.Release{Key: nameKey(g.Name)},
	}
}
