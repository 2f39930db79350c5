// Package unitofwork commits writes to several entities as one optimistic
// redis transaction. Every write names the keys it depends on and checks
// them after WATCH; all writes are then queued in a single MULTI/EXEC.
package unitofwork

//go:generate mockgen -destination=mock/mock_committer.go -package=unitofworkmock github.com/KirkDiggler/realm-api/internal/repositories/unitofwork Committer

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/realm-api/internal/errors"
	redisclient "github.com/KirkDiggler/realm-api/internal/redis"
)

// Write is one staged change
type Write interface {
	// Keys returns the keys the write reads or overwrites
	Keys() []string
	// Check runs after WATCH and before MULTI
	Check(ctx context.Context, tx *redisclient.Tx) error
	// Stage queues the write's commands
	Stage(ctx context.Context, pipe redis.Pipeliner) error
}

// Changeset collects writes for one commit
type Changeset struct {
	writes []Write
}

// NewChangeset creates a changeset holding writes
func NewChangeset(writes ...Write) *Changeset {
	return &Changeset{writes: writes}
}

// Add appends writes
func (c *Changeset) Add(writes ...Write) *Changeset {
	c.writes = append(c.writes, writes...)
	return c
}

// Len returns the number of staged writes
func (c *Changeset) Len() int {
	return len(c.writes)
}

func (c *Changeset) keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, w := range c.writes {
		for _, k := range w.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Committer applies a changeset atomically
type Committer interface {
	// Commit applies every write or none.
	// Returns errors.Aborted (reason VERSION_CONFLICT) if a watched key changed
	// Returns the first Check error otherwise
	Commit(ctx context.Context, cs *Changeset) error
}

// Config configures the redis committer
type Config struct {
	Client redisclient.Client
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisCommitter struct {
	client redisclient.Client
}

// NewRedis creates a Committer over client
func NewRedis(cfg *Config) (Committer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisCommitter{client: cfg.Client}, nil
}

func (c *redisCommitter) Commit(ctx context.Context, cs *Changeset) error {
	if cs == nil || cs.Len() == 0 {
		return errors.InvalidArgument("changeset is empty")
	}

	keys := cs.keys()
	err := redisclient.Watch(ctx, c.client, func(tx *redisclient.Tx) error {
		for _, w := range cs.writes {
			if err := w.Check(ctx, tx); err != nil {
				return err
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, w := range cs.writes {
				if err := w.Stage(ctx, pipe); err != nil {
					return err
				}
			}
			return nil
		})
		return err
	}, keys...)
	if err != nil {
		slog.DebugContext(ctx, "changeset not committed",
			"keys", keys,
			"error", err.Error())
		return err
	}

	slog.DebugContext(ctx, "changeset committed",
		"writes", cs.Len(),
		"keys", keys)
	return nil
}
