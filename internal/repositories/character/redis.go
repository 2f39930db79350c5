package character

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	redisclient "github.com/KirkDiggler/realm-api/internal/redis"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
)

const (
	characterKeyPrefix = "character:"
	classIndexPrefix   = "character:class:"
	guildMembersPrefix = "guild:members:"

	// Error messages
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errGuildIDEmpty     = "guild ID cannot be empty"
)

// Key returns the redis key holding a character
func Key(id string) string {
	return characterKeyPrefix + id
}

// GuildMembersKey returns the sorted set of a guild's members scored by
// join time
func GuildMembersKey(guildID string) string {
	return guildMembersPrefix + guildID
}

func classKey(class entities.CharacterClass) string {
	return classIndexPrefix + string(class)
}

type redisRepository struct {
	client    redisclient.Client
	committer unitofwork.Committer
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client    redisclient.Client
	Committer unitofwork.Committer
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

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	committer := cfg.Committer
	if committer == nil {
		var err error
		committer, err = unitofwork.NewRedis(&unitofwork.Config{Client: cfg.Client})
		if err != nil {
			return nil, err
		}
	}

	return &redisRepository{
		client:    cfg.Client,
		committer: committer,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	result, err := r.client.Get(ctx, Key(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var c entities.Character
	if err := json.Unmarshal([]byte(result), &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character data")
	}

	return &GetOutput{Character: &c}, nil
}

func (r *redisRepository) GetMany(ctx context.Context, input GetManyInput) (*GetManyOutput, error) {
	characters, err := r.load(ctx, input.IDs)
	if err != nil {
		return nil, err
	}
	return &GetManyOutput{Characters: characters}, nil
}

func (r *redisRepository) ListByClass(ctx context.Context, input ListByClassInput) (*ListByClassOutput, error) {
	classes := input.Classes
	if len(classes) == 0 {
		classes = entities.AllClasses
	}

	keys := make([]string, 0, len(classes))
	for _, class := range classes {
		if !class.IsValid() {
			return nil, errors.InvalidArgumentf("unknown class %q", class)
		}
		keys = append(keys, classKey(class))
	}

	ids, err := r.client.SUnion(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read class index")
	}

	slog.DebugContext(ctx, "found characters by class",
		"classes", classes,
		"count", len(ids))

	characters, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &ListByClassOutput{Characters: characters}, nil
}

func (r *redisRepository) ListByGuild(ctx context.Context, input ListByGuildInput) (*ListByGuildOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	ids, err := r.client.ZRange(ctx, GuildMembersKey(input.GuildID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read guild roster")
	}

	characters, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	// The roster index and the characters are written together, but a
	// character read here may have been moved since the ZRANGE.
	members := characters[:0]
	for _, c := range characters {
		if c.GuildID == input.GuildID {
			members = append(members, c)
		}
	}

	return &ListByGuildOutput{Characters: members}, nil
}

func (r *redisRepository) CountByGuild(ctx context.Context, input CountByGuildInput) (*CountByGuildOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	n, err := r.client.ZCard(ctx, GuildMembersKey(input.GuildID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count guild members")
	}
	return &CountByGuildOutput{Count: int(n)}, nil
}

func (r *redisRepository) Put(before, after *entities.Character) (unitofwork.Write, error) {
	if after == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if after.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	var expected int64
	if before != nil {
		if before.ID != after.ID {
			return nil, errors.InvalidArgumentf("cannot replace character %s with %s", before.ID, after.ID)
		}
		expected = before.Version
	}
	after.Version = expected + 1

	data, err := json.Marshal(after)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character data")
	}

	prior := before
	if prior == nil {
		prior = &entities.Character{}
	}
	id := after.ID
	next := *after

	return &unitofwork.Put{
		Key:      Key(id),
		Expected: expected,
		Value:    data,
		Index: func(ctx context.Context, pipe redis.Pipeliner) {
			if prior.Class != next.Class {
				if prior.Class != entities.ClassNone {
					pipe.SRem(ctx, classKey(prior.Class), id)
				}
				if next.Class != entities.ClassNone {
					pipe.SAdd(ctx, classKey(next.Class), id)
				}
			}
			if prior.GuildID != next.GuildID {
				if prior.GuildID != "" {
					pipe.ZRem(ctx, GuildMembersKey(prior.GuildID), id)
				}
				if next.GuildID != "" {
					pipe.ZAdd(ctx, GuildMembersKey(next.GuildID), redis.Z{
						Score:  float64(next.GuildJoinedAt),
						Member: id,
					})
				}
			}
		},
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}

	w, err := r.Put(nil, input.Character)
	if err != nil {
		return nil, err
	}

	if err := r.committer.Commit(ctx, unitofwork.NewChangeset(w)); err != nil {
		if errors.IsAlreadyExists(err) {
			return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.ID)
		}
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: input.Character}, nil
}

// load fetches ids with one MGET, keeping their order and skipping ids
// whose character is gone
func (r *redisRepository) load(ctx context.Context, ids []string) ([]*entities.Character, error) {
	if len(ids) == 0 {
		return []*entities.Character{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get characters")
	}

	characters := make([]*entities.Character, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			slog.WarnContext(ctx, "indexed character not found",
				"character_id", ids[i])
			continue
		}

		var c entities.Character
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal character %s", ids[i])
		}
		characters = append(characters, &c)
	}

	return characters, nil
}
