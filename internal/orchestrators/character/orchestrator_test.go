package character_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/realm-api/internal/engine/progression"
	"github.com/KirkDiggler/realm-api/internal/engine/stats"
	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	characterorch "github.com/KirkDiggler/realm-api/internal/orchestrators/character"
	"github.com/KirkDiggler/realm-api/internal/pkg/idgen"
	"github.com/KirkDiggler/realm-api/internal/services/character"
	"github.com/KirkDiggler/realm-api/internal/testutils"
	"github.com/KirkDiggler/realm-api/internal/testutils/builders"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx   context.Context
	realm *testutils.Realm
	orch  *characterorch.Orchestrator
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.realm = testutils.NewRealm(s.T())

	orch, err := characterorch.New(&characterorch.Config{
		CharacterRepo:  s.realm.Characters,
		Committer:      s.realm.Committer,
		Tuning:         s.realm.Tuning,
		Clock:          s.realm.Clock,
		IDGenerator:    idgen.NewSequential("chr"),
		CommitAttempts: 10,
	})
	s.Require().NoError(err)
	s.orch = orch
}

func (s *OrchestratorTestSuite) TestNewRequiresDependencies() {
	_, err := characterorch.New(&characterorch.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCreateCharacter() {
	out, err := s.orch.CreateCharacter(s.ctx, &character.CreateCharacterInput{Name: "Aria"})
	s.Require().NoError(err)

	c := out.Character
	s.Equal("chr_1", c.ID)
	s.Equal(1, c.Level)
	s.Equal(entities.ClassNone, c.Class)
	s.Equal(s.realm.Tuning.Starter.AvailablePoints, c.AvailablePoints)
	s.Equal(s.realm.Tuning.Starter.Gold, c.Gold)
	s.Equal(s.realm.Tuning.Starter.Inventory, c.Inventory)
	s.Equal("bronze", c.PvP.RankTier)
	s.Equal(c.Stats.MaxHealth, c.Stats.Health)
	s.Equal(testutils.TestEpoch.Unix(), c.CreatedAt)

	stored := s.realm.Character(s.T(), c.ID)
	s.Equal(int64(1), stored.Version)
	s.Equal(c.Stats, stored.Stats)
}

func (s *OrchestratorTestSuite) TestCreateCharacterValidation() {
	_, err := s.orch.CreateCharacter(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.CreateCharacter(s.ctx, &character.CreateCharacterInput{Name: "  "})
	s.True(errors.IsInvalidArgument(err))

	long := "abcdefghijklmnopqrstuvwxyzabcdefgh"
	_, err = s.orch.CreateCharacter(s.ctx, &character.CreateCharacterInput{Name: long})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetCharacterNotFound() {
	_, err := s.orch.GetCharacter(s.ctx, &character.GetCharacterInput{CharacterID: "chr_missing"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestChooseClass() {
	c := s.realm.SeedCharacter(s.T(), builders.NewCharacter("chr_1").Build())

	out, err := s.orch.ChooseClass(s.ctx, &character.ChooseClassInput{
		CharacterID: c.ID,
		Class:       entities.ClassWarrior,
	})
	s.Require().NoError(err)
	s.Equal(entities.ClassWarrior, out.Character.Class)
	s.Equal(212, out.Character.Stats.MaxHealth)
	s.Equal(212, out.Character.Stats.Health)
	s.Equal(int64(2), out.Character.Version)

	_, err = s.orch.ChooseClass(s.ctx, &character.ChooseClassInput{
		CharacterID: c.ID,
		Class:       entities.ClassMage,
	})
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(characterorch.ReasonClassAlreadyChosen, errors.GetReason(err))
}

func (s *OrchestratorTestSuite) TestChooseClassRejectsUnknownClass() {
	c := s.realm.SeedCharacter(s.T(), builders.NewCharacter("chr_1").Build())

	_, err := s.orch.ChooseClass(s.ctx, &character.ChooseClassInput{
		CharacterID: c.ID,
		Class:       "bard",
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestAllocatePoints() {
	c := s.realm.SeedCharacter(s.T(), builders.NewCharacter("chr_1").
		WithClass(entities.ClassWarrior).
		WithPoints(10).
		Build())

	out, err := s.orch.AllocatePoints(s.ctx, &character.AllocatePointsInput{
		CharacterID: c.ID,
		Points:      entities.Attributes{Strength: 3, Luck: 2},
	})
	s.Require().NoError(err)
	s.Equal(8, out.Character.Attributes.Strength)
	s.Equal(7, out.Character.Attributes.Luck)
	s.Equal(5, out.Character.AvailablePoints)
	s.Equal(out.Character.Stats.MaxHealth, out.Character.Stats.Health)
	s.Greater(out.Character.Stats.Attack, 0)
}

func (s *OrchestratorTestSuite) TestAllocatePointsErrors() {
	c := s.realm.SeedCharacter(s.T(), builders.NewCharacter("chr_1").WithPoints(2).Build())

	_, err := s.orch.AllocatePoints(s.ctx, &character.AllocatePointsInput{CharacterID: c.ID})
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(stats.ReasonNoChange, errors.GetReason(err))

	_, err = s.orch.AllocatePoints(s.ctx, &character.AllocatePointsInput{
		CharacterID: c.ID,
		Points:      entities.Attributes{Magic: 3},
	})
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(stats.ReasonInsufficientPoints, errors.GetReason(err))

	_, err = s.orch.AllocatePoints(s.ctx, &character.AllocatePointsInput{
		CharacterID: c.ID,
		Points:      entities.Attributes{Magic: -1},
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.AllocatePoints(s.ctx, &character.AllocatePointsInput{
		CharacterID: c.ID,
		Points:      entities.Attributes{Strength: math.MaxInt, Magic: math.MaxInt},
	})
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(stats.ReasonInsufficientPoints, errors.GetReason(err))

	stored := s.realm.Character(s.T(), c.ID)
	s.Equal(int64(1), stored.Version)
}

func (s *OrchestratorTestSuite) TestGrantExperienceLevelsUp() {
	c := s.realm.SeedCharacter(s.T(), builders.NewCharacter("chr_1").Build())

	out, err := s.orch.GrantExperience(s.ctx, &character.GrantExperienceInput{
		CharacterID: c.ID,
		Amount:      250,
	})
	s.Require().NoError(err)
	s.Equal(2, out.LevelsGained)
	s.Equal(3, out.Character.Level)
	s.Equal(0, out.Character.Experience)
	s.Equal(2*s.realm.Tuning.CharacterLevels.PointsPerLevel, out.Character.AvailablePoints)
	s.Equal(out.Character.Stats.MaxHealth, out.Character.Stats.Health)
}

func (s *OrchestratorTestSuite) TestGrantExperienceRejectsNonPositive() {
	c := s.realm.SeedCharacter(s.T(), builders.NewCharacter("chr_1").Build())

	_, err := s.orch.GrantExperience(s.ctx, &character.GrantExperienceInput{CharacterID: c.ID})
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(progression.ReasonNonPositiveAmount, errors.GetReason(err))
}

func (s *OrchestratorTestSuite) TestGrantExperienceSaturates() {
	c := s.realm.SeedCharacter(s.T(), builders.NewCharacter("chr_1").Build())

	for i := 0; i < 2; i++ {
		out, err := s.orch.GrantExperience(s.ctx, &character.GrantExperienceInput{
			CharacterID: c.ID,
			Amount:      math.MaxInt,
		})
		s.Require().NoError(err)
		s.GreaterOrEqual(out.Character.Experience, 0)
		s.Greater(out.Character.Level, 1)
	}
}

func (s *OrchestratorTestSuite) TestConcurrentGrantsAllLand() {
	c := s.realm.SeedCharacter(s.T(), builders.NewCharacter("chr_1").Build())

	const writers = 5
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.orch.GrantExperience(s.ctx, &character.GrantExperienceInput{
				CharacterID: c.ID,
				Amount:      10,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	stored := s.realm.Character(s.T(), c.ID)
	s.Equal(50, stored.Experience)
	s.Equal(int64(1+writers), stored.Version)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
