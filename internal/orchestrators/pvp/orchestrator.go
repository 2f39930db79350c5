// Package pvp implements the arena orchestrator
package pvp

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/realm-api/internal/engine/matchmaking"
	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/pkg/clock"
	"github.com/KirkDiggler/realm-api/internal/pkg/retry"
	characterrepo "github.com/KirkDiggler/realm-api/internal/repositories/character"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
	"github.com/KirkDiggler/realm-api/internal/services/pvp"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

// ReasonNoClass is reported when a classless character enters the arena
const ReasonNoClass = "NO_CLASS"

// Config holds the dependencies for the pvp orchestrator
type Config struct {
	CharacterRepo  characterrepo.Repository
	Committer      unitofwork.Committer
	Tuning         *tuning.Tuning
	Clock          clock.Clock
	Roller         dice.Roller
	CommitAttempts int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Committer == nil {
		vb.RequiredField("Committer")
	}
	if c.Tuning == nil {
		vb.RequiredField("Tuning")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Orchestrator implements the pvp.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	committer     unitofwork.Committer
	rules         tuning.PvPRules
	sampler       *matchmaking.Sampler
	clock         clock.Clock
	attempts      int
}

// New creates a new pvp orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		committer:     cfg.Committer,
		rules:         cfg.Tuning.PvP,
		sampler:       matchmaking.NewSampler(cfg.Roller),
		clock:         cfg.Clock,
		attempts:      cfg.CommitAttempts,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ pvp.Service = (*Orchestrator)(nil)

// FindOpponents offers a random selection of classed characters
func (o *Orchestrator) FindOpponents(ctx context.Context, input *pvp.FindOpponentsInput) (*pvp.FindOpponentsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character")
	}
	requester := out.Character
	if !requester.HasClass() {
		return nil, errors.FailedPrecondition("choose a class before entering the arena").
			WithReason(ReasonNoClass)
	}

	pool, err := o.characterRepo.ListByClass(ctx, characterrepo.ListByClassInput{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load opponent pool")
	}

	opponents, err := o.sampler.Sample(requester.ID, pool.Characters, o.rules.OpponentCount)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sample opponents")
	}

	slog.DebugContext(ctx, "opponents sampled",
		"character_id", requester.ID,
		"pool_size", len(pool.Characters),
		"offered", len(opponents))

	return &pvp.FindOpponentsOutput{
		Self:      entities.SummaryOf(requester),
		Record:    requester.PvP,
		Opponents: opponents,
	}, nil
}

// RecordBattle updates both fighters' arena records in one commit
func (o *Orchestrator) RecordBattle(ctx context.Context, input *pvp.RecordBattleInput) (*pvp.RecordBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("attackerID", input.AttackerID, vb)
	errors.ValidateRequired("defenderID", input.DefenderID, vb)
	if input.AttackerID != "" && input.AttackerID == input.DefenderID {
		vb.Field("defenderID", "must differ from attackerID")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var attacker, defender entities.PvPStats
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		out, err := o.characterRepo.GetMany(ctx, characterrepo.GetManyInput{
			IDs: []string{input.AttackerID, input.DefenderID},
		})
		if err != nil {
			return err
		}
		if len(out.Characters) != 2 {
			return errors.NotFound("both fighters must exist")
		}
		a, d := out.Characters[0], out.Characters[1]
		if !a.HasClass() || !d.HasClass() {
			return errors.FailedPrecondition("both fighters need a class").
				WithReason(ReasonNoClass)
		}

		nextA, nextD := a.Clone(), d.Clone()
		if input.AttackerWon {
			nextA.PvP, nextD.PvP = matchmaking.ApplyBattle(a.PvP, d.PvP, o.rules)
		} else {
			nextD.PvP, nextA.PvP = matchmaking.ApplyBattle(d.PvP, a.PvP, o.rules)
		}
		now := o.clock.Now().Unix()
		nextA.UpdatedAt, nextD.UpdatedAt = now, now

		wa, err := o.characterRepo.Put(a, nextA)
		if err != nil {
			return err
		}
		wd, err := o.characterRepo.Put(d, nextD)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(wa, wd)); err != nil {
			return err
		}

		attacker, defender = nextA.PvP, nextD.PvP
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to record battle")
	}

	return &pvp.RecordBattleOutput{Attacker: attacker, Defender: defender}, nil
}
