package unitofwork_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/realm-api/internal/errors"
	redisclient "github.com/KirkDiggler/realm-api/internal/redis"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
	"github.com/KirkDiggler/realm-api/internal/testutils"
)

type CommitTestSuite struct {
	suite.Suite
	ctx       context.Context
	client    redisclient.Client
	committer unitofwork.Committer
}

func (s *CommitTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, _ = testutils.CreateTestRedisClient(s.T())

	committer, err := unitofwork.NewRedis(&unitofwork.Config{Client: s.client})
	s.Require().NoError(err)
	s.committer = committer
}

func (s *CommitTestSuite) put(key string, expected int64, version int64) *unitofwork.Put {
	return &unitofwork.Put{
		Key:      key,
		Expected: expected,
		Value:    []byte(`{"version":` + strconv.FormatInt(version, 10) + `}`),
	}
}

func (s *CommitTestSuite) TestCreateThenUpdate() {
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(s.put("thing:1", 0, 1))))
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(s.put("thing:1", 1, 2))))

	raw, err := s.client.Get(s.ctx, "thing:1").Result()
	s.Require().NoError(err)
	s.Equal(`{"version":2}`, raw)
}

func (s *CommitTestSuite) TestCreateExisting() {
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(s.put("thing:1", 0, 1))))

	err := s.committer.Commit(s.ctx, unitofwork.NewChangeset(s.put("thing:1", 0, 1)))
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *CommitTestSuite) TestStaleVersionIsAborted() {
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(s.put("thing:1", 0, 1))))
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(s.put("thing:1", 1, 2))))

	err := s.committer.Commit(s.ctx, unitofwork.NewChangeset(s.put("thing:1", 1, 2)))
	s.Require().Error(err)
	s.True(errors.IsAborted(err))
	s.Equal(redisclient.ReasonVersionConflict, errors.GetReason(err))
}

func (s *CommitTestSuite) TestAllOrNothing() {
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(s.put("thing:2", 0, 1))))

	cs := unitofwork.NewChangeset(s.put("thing:1", 0, 1)).
		Add(s.put("thing:2", 5, 6))
	s.Require().Error(s.committer.Commit(s.ctx, cs))

	n, err := s.client.Exists(s.ctx, "thing:1").Result()
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *CommitTestSuite) TestIndexRunsWithWrite() {
	p := s.put("thing:1", 0, 1)
	p.Index = func(ctx context.Context, pipe redis.Pipeliner) {
		pipe.SAdd(ctx, "things", "1")
	}
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(p)))

	members, err := s.client.SMembers(s.ctx, "things").Result()
	s.Require().NoError(err)
	s.Equal([]string{"1"}, members)

	del := &unitofwork.Delete{
		Key:      "thing:1",
		Expected: 1,
		Index: func(ctx context.Context, pipe redis.Pipeliner) {
			pipe.SRem(ctx, "things", "1")
		},
	}
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(del)))

	members, err = s.client.SMembers(s.ctx, "things").Result()
	s.Require().NoError(err)
	s.Empty(members)
}

func (s *CommitTestSuite) TestClaim() {
	claim := func() *unitofwork.Claim {
		return &unitofwork.Claim{
			Key:   "name:Knights",
			Value: "gld_1",
			Taken: func() error { return errors.FailedPrecondition("name taken").WithReason("NAME_TAKEN") },
		}
	}

	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(claim())))

	err := s.committer.Commit(s.ctx, unitofwork.NewChangeset(claim()))
	s.Equal("NAME_TAKEN", errors.GetReason(err))

	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(&unitofwork.Release{Key: "name:Knights"})))
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(claim())))
}

// racingWrite modifies its own key from outside the transaction during
// Check, the way a concurrent writer would
type racingWrite struct {
	unitofwork.Put
	other redisclient.Client
}

func (w *racingWrite) Check(ctx context.Context, tx *redisclient.Tx) error {
	if err := w.Put.Check(ctx, tx); err != nil {
		return err
	}
	return w.other.Set(ctx, w.Key, `{"version":9}`, 0).Err()
}

func (s *CommitTestSuite) TestConcurrentWriterAbortsCommit() {
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(s.put("thing:1", 0, 1))))

	w := &racingWrite{Put: *s.put("thing:1", 1, 2), other: s.client}
	err := s.committer.Commit(s.ctx, unitofwork.NewChangeset(w))
	s.Require().Error(err)
	s.True(errors.IsAborted(err))

	raw, err := s.client.Get(s.ctx, "thing:1").Result()
	s.Require().NoError(err)
	s.Equal(`{"version":9}`, raw)
}

func (s *CommitTestSuite) TestEmptyChangeset() {
	err := s.committer.Commit(s.ctx, unitofwork.NewChangeset())
	s.True(errors.IsInvalidArgument(err))
}

func TestCommitTestSuite(t *testing.T) {
	suite.Run(t, new(CommitTestSuite))
}
