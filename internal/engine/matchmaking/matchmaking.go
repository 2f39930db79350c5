// Package matchmaking picks PvP opponents and keeps arena records
package matchmaking

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

// DefaultLimit is how many opponents are offered when no limit is given
const DefaultLimit = 4

// Eligible reports whether c may be offered to requesterID
func Eligible(requesterID string, c *entities.Character) bool {
	return c != nil && c.ID != requesterID && c.HasClass()
}

// Sampler draws opponents uniformly at random
type Sampler struct {
	roller dice.Roller
}

// NewSampler creates a sampler drawing randomness from roller
func NewSampler(roller dice.Roller) *Sampler {
	return &Sampler{roller: roller}
}

// Sample shuffles the eligible part of pool and returns the first limit
// entries as snapshots. No eligible opponents yields an empty slice.
func (s *Sampler) Sample(requesterID string, pool []*entities.Character, limit int) ([]entities.OpponentSummary, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	eligible := make([]*entities.Character, 0, len(pool))
	seen := make(map[string]bool, len(pool))
	for _, c := range pool {
		if !Eligible(requesterID, c) || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		eligible = append(eligible, c)
	}

	if err := s.shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}); err != nil {
		return nil, err
	}

	n := min(limit, len(eligible))
	out := make([]entities.OpponentSummary, 0, n)
	for _, c := range eligible[:n] {
		out = append(out, entities.SummaryOf(c))
	}
	return out, nil
}

// shuffle is Fisher-Yates: position i swaps with a uniform pick in [0, i]
func (s *Sampler) shuffle(n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		roll, err := s.roller.Roll(i + 1)
		if err != nil {
			return errors.Wrap(err, "failed to roll for shuffle")
		}
		swap(i, roll-1)
	}
	return nil
}

// ApplyBattle updates both records after a fight
func ApplyBattle(winner, loser entities.PvPStats, rules tuning.PvPRules) (entities.PvPStats, entities.PvPStats) {
	winner.Wins++
	winner.TotalBattles++
	winner.WinStreak++
	winner.BestWinStreak = max(winner.BestWinStreak, winner.WinStreak)
	winner.HonorPoints += rules.HonorPerWin
	winner.RankTier = RankTier(winner.HonorPoints, rules.Tiers)

	loser.Losses++
	loser.TotalBattles++
	loser.WinStreak = 0
	loser.HonorPoints = max(0, loser.HonorPoints-rules.HonorPerLoss)
	loser.RankTier = RankTier(loser.HonorPoints, rules.Tiers)

	return winner, loser
}

// RankTier returns the highest tier whose threshold honor meets. Tiers are
// sorted ascending by MinHonor.
func RankTier(honor int, tiers []tuning.RankTier) string {
	name := ""
	for _, t := range tiers {
		if honor < t.MinHonor {
			break
		}
		name = t.Name
	}
	return name
}
