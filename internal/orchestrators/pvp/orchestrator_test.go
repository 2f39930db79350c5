package pvp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	pvporch "github.com/KirkDiggler/realm-api/internal/orchestrators/pvp"
	"github.com/KirkDiggler/realm-api/internal/services/pvp"
	"github.com/KirkDiggler/realm-api/internal/testutils"
	"github.com/KirkDiggler/realm-api/internal/testutils/builders"
)

// lowRoller always rolls a one
type lowRoller struct{}

func (lowRoller) Roll(int) (int, error) { return 1, nil }

func (lowRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctx   context.Context
	realm *testutils.Realm
	orch  *pvporch.Orchestrator
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.realm = testutils.NewRealm(s.T())

	orch, err := pvporch.New(&pvporch.Config{
		CharacterRepo:  s.realm.Characters,
		Committer:      s.realm.Committer,
		Tuning:         s.realm.Tuning,
		Clock:          s.realm.Clock,
		Roller:         lowRoller{},
		CommitAttempts: 10,
	})
	s.Require().NoError(err)
	s.orch = orch
}

func (s *OrchestratorTestSuite) seed(id string, class entities.CharacterClass) {
	s.realm.SeedCharacter(s.T(), builders.NewCharacter(id).WithClass(class).Build())
}

func (s *OrchestratorTestSuite) TestFindOpponents() {
	s.seed("chr_me", entities.ClassWarrior)
	s.seed("chr_classless", entities.ClassNone)
	for _, id := range []string{"chr_a", "chr_b", "chr_c", "chr_d", "chr_e", "chr_f"} {
		s.seed(id, entities.ClassMage)
	}

	out, err := s.orch.FindOpponents(s.ctx, &pvp.FindOpponentsInput{CharacterID: "chr_me"})
	s.Require().NoError(err)
	s.Equal("chr_me", out.Self.ID)
	s.Len(out.Opponents, s.realm.Tuning.PvP.OpponentCount)

	seen := map[string]bool{}
	for _, o := range out.Opponents {
		s.NotEqual("chr_me", o.ID)
		s.NotEqual("chr_classless", o.ID)
		s.False(seen[o.ID], "duplicate opponent %s", o.ID)
		seen[o.ID] = true
	}
}

func (s *OrchestratorTestSuite) TestFindOpponentsEmptyPool() {
	s.seed("chr_me", entities.ClassArcher)

	out, err := s.orch.FindOpponents(s.ctx, &pvp.FindOpponentsInput{CharacterID: "chr_me"})
	s.Require().NoError(err)
	s.NotNil(out.Opponents)
	s.Empty(out.Opponents)
}

func (s *OrchestratorTestSuite) TestFindOpponentsRequiresClass() {
	s.seed("chr_me", entities.ClassNone)

	_, err := s.orch.FindOpponents(s.ctx, &pvp.FindOpponentsInput{CharacterID: "chr_me"})
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(pvporch.ReasonNoClass, errors.GetReason(err))
}

func (s *OrchestratorTestSuite) TestRecordBattle() {
	s.seed("chr_a", entities.ClassWarrior)
	s.seed("chr_d", entities.ClassMage)

	out, err := s.orch.RecordBattle(s.ctx, &pvp.RecordBattleInput{
		AttackerID:  "chr_a",
		DefenderID:  "chr_d",
		AttackerWon: true,
	})
	s.Require().NoError(err)
	s.Equal(1, out.Attacker.Wins)
	s.Equal(1, out.Attacker.WinStreak)
	s.Equal(s.realm.Tuning.PvP.HonorPerWin, out.Attacker.HonorPoints)
	s.Equal(1, out.Defender.Losses)
	s.Equal(0, out.Defender.HonorPoints)

	out, err = s.orch.RecordBattle(s.ctx, &pvp.RecordBattleInput{
		AttackerID: "chr_a",
		DefenderID: "chr_d",
	})
	s.Require().NoError(err)
	s.Equal(0, out.Attacker.WinStreak)
	s.Equal(1, out.Attacker.BestWinStreak)
	s.Equal(1, out.Defender.Wins)

	stored := s.realm.Character(s.T(), "chr_a")
	s.Equal(2, stored.PvP.TotalBattles)
	s.Equal(int64(3), stored.Version)
}

func (s *OrchestratorTestSuite) TestRecordBattleRejections() {
	s.seed("chr_a", entities.ClassWarrior)

	_, err := s.orch.RecordBattle(s.ctx, &pvp.RecordBattleInput{AttackerID: "chr_a", DefenderID: "chr_a"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.RecordBattle(s.ctx, &pvp.RecordBattleInput{AttackerID: "chr_a", DefenderID: "chr_missing"})
	s.True(errors.IsNotFound(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
