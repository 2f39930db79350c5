package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/realm-api/internal/errors"
)

// ReasonVersionConflict marks an optimistic commit that lost a race
const ReasonVersionConflict = "VERSION_CONFLICT"

// Tx is the transaction handle passed to Watch callbacks
type Tx = redis.Tx

// Watch runs fn inside WATCH/MULTI/EXEC over keys. If any watched key is
// written by someone else before EXEC the commit is dropped and Watch
// returns an Aborted error tagged VERSION_CONFLICT. Errors returned by fn
// pass through unchanged.
func Watch(ctx context.Context, client Client, fn func(tx *Tx) error, keys ...string) error {
	err := client.Watch(ctx, fn, keys...)
	if stderrors.Is(err, redis.TxFailedErr) {
		return errors.Aborted("concurrent update detected").
			WithReason(ReasonVersionConflict).
			WithMeta("keys", keys)
	}
	return err
}

// VersionMismatch builds the error returned when a stored version differs
// from the one the caller read
func VersionMismatch(key string, expected, actual int64) *errors.Error {
	return errors.Abortedf("version mismatch for %s: expected %d, found %d", key, expected, actual).
		WithReason(ReasonVersionConflict).
		WithMeta("key", key)
}

// IsNil reports whether err is the missing key reply
func IsNil(err error) bool {
	return stderrors.Is(err, redis.Nil)
}

type versionProbe struct {
	Version int64 `json:"version"`
}

// StoredVersion reads key inside tx and reports its version. A missing key
// reports exists=false and version 0.
func StoredVersion(ctx context.Context, tx *Tx, key string) (version int64, exists bool, err error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if err != nil {
		if IsNil(err) {
			return 0, false, nil
		}
		return 0, false, errors.Wrapf(err, "failed to read %s", key)
	}

	var probe versionProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, true, errors.Wrapf(err, "failed to decode version of %s", key)
	}
	return probe.Version, true, nil
}

// CheckVersion verifies that key currently holds expected. An expected
// version of 0 means the key must not exist yet.
func CheckVersion(ctx context.Context, tx *Tx, key string, expected int64) error {
	actual, exists, err := StoredVersion(ctx, tx, key)
	if err != nil {
		return err
	}
	if !exists {
		if expected == 0 {
			return nil
		}
		return errors.NotFoundf("%s no longer exists", key).WithMeta("key", key)
	}
	if expected == 0 {
		return errors.AlreadyExistsf("%s already exists", key).WithMeta("key", key)
	}
	if actual != expected {
		return VersionMismatch(key, expected, actual)
	}
	return nil
}
