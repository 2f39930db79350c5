package unitofwork

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/realm-api/internal/errors"
	redisclient "github.com/KirkDiggler/realm-api/internal/redis"
)

// IndexFunc queues secondary index maintenance next to a write
type IndexFunc func(ctx context.Context, pipe redis.Pipeliner)

// Put stores Value at Key if the stored version is still Expected.
// Expected 0 creates the key and fails if it already exists.
type Put struct {
	Key      string
	Expected int64
	Value    []byte
	Index    IndexFunc
}

// Keys implements Write
func (p *Put) Keys() []string { return []string{p.Key} }

// Check implements Write
func (p *Put) Check(ctx context.Context, tx *redisclient.Tx) error {
	return redisclient.CheckVersion(ctx, tx, p.Key, p.Expected)
}

// Stage implements Write
func (p *Put) Stage(ctx context.Context, pipe redis.Pipeliner) error {
	pipe.Set(ctx, p.Key, p.Value, 0)
	if p.Index != nil {
		p.Index(ctx, pipe)
	}
	return nil
}

// Delete removes Key if the stored version is still Expected
type Delete struct {
	Key      string
	Expected int64
	Index    IndexFunc
}

// Keys implements Write
func (d *Delete) Keys() []string { return []string{d.Key} }

// Check implements Write
func (d *Delete) Check(ctx context.Context, tx *redisclient.Tx) error {
	if d.Expected == 0 {
		return errors.InvalidArgumentf("delete of %s needs a version", d.Key)
	}
	return redisclient.CheckVersion(ctx, tx, d.Key, d.Expected)
}

// Stage implements Write
func (d *Delete) Stage(ctx context.Context, pipe redis.Pipeliner) error {
	pipe.Del(ctx, d.Key)
	if d.Index != nil {
		d.Index(ctx, pipe)
	}
	return nil
}

// Claim sets a unique key such as a name reservation. Taken builds the
// error returned when the key is already held.
type Claim struct {
	Key   string
	Value string
	Taken func() error
}

// Keys implements Write
func (c *Claim) Keys() []string { return []string{c.Key} }

// Check implements Write
func (c *Claim) Check(ctx context.Context, tx *redisclient.Tx) error {
	n, err := tx.Exists(ctx, c.Key).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to check %s", c.Key)
	}
	if n > 0 {
		if c.Taken != nil {
			return c.Taken()
		}
		return errors.AlreadyExistsf("%s is taken", c.Key)
	}
	return nil
}

// Stage implements Write
func (c *Claim) Stage(ctx context.Context, pipe redis.Pipeliner) error {
	pipe.Set(ctx, c.Key, c.Value, 0)
	return nil
}

// Release drops a claimed key
type Release struct {
	Key string
}

// Keys implements Write
func (r *Release) Keys() []string { return []string{r.Key} }

// Check implements Write
func (r *Release) Check(context.Context, *redisclient.Tx) error { return nil }

// Stage implements Write
func (r *Release) Stage(ctx context.Context, pipe redis.Pipeliner) error {
	pipe.Del(ctx, r.Key)
	return nil
}
