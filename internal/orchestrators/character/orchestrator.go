// Package character implements the character orchestrator
package character

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/realm-api/internal/engine/matchmaking"
	"github.com/KirkDiggler/realm-api/internal/engine/progression"
	"github.com/KirkDiggler/realm-api/internal/engine/stats"
	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/pkg/clock"
	"github.com/KirkDiggler/realm-api/internal/pkg/idgen"
	"github.com/KirkDiggler/realm-api/internal/pkg/retry"
	characterrepo "github.com/KirkDiggler/realm-api/internal/repositories/character"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
	"github.com/KirkDiggler/realm-api/internal/services/character"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

// Named failure reasons
const (
	ReasonClassAlreadyChosen = "CLASS_ALREADY_CHOSEN"
)

const maxNameLength = 32

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo  characterrepo.Repository
	Committer      unitofwork.Committer
	Tuning         *tuning.Tuning
	Clock          clock.Clock
	IDGenerator    idgen.Generator
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
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	committer     unitofwork.Committer
	tuning        *tuning.Tuning
	stats         *stats.Engine
	curve         progression.Curve
	clock         clock.Clock
	idGenerator   idgen.Generator
	attempts      int
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		committer:     cfg.Committer,
		tuning:        cfg.Tuning,
		stats:         stats.NewEngine(cfg.Tuning.Stats),
		curve:         progression.CurveFrom(cfg.Tuning.CharacterLevels),
		clock:         cfg.Clock,
		idGenerator:   cfg.IDGenerator,
		attempts:      cfg.CommitAttempts,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

// CreateCharacter creates a classless level 1 character with the starter kit
func (o *Orchestrator) CreateCharacter(
	ctx context.Context,
	input *character.CreateCharacterInput,
) (*character.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateLength("name", input.Name, 0, maxNameLength, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	starter := o.tuning.Starter
	now := o.clock.Now().Unix()
	c := &entities.Character{
		ID:              o.idGenerator.Generate(),
		Name:            input.Name,
		ProfileImage:    input.ProfileImage,
		Level:           1,
		AvailablePoints: starter.AvailablePoints,
		Attributes:      starter.Attributes,
		Gold:            starter.Gold,
		Diamonds:        starter.Diamonds,
		Inventory:       entities.CloneStacks(starter.Inventory),
		Equipped:        map[entities.EquipmentSlot]*entities.ItemStack{},
		PvP:             entities.PvPStats{RankTier: matchmaking.RankTier(0, o.tuning.PvP.Tiers)},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if c.Inventory == nil {
		c.Inventory = []entities.ItemStack{}
	}
	c.Stats = o.stats.Derive(c.Attributes, c.Level, c.Class)

	out, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: c})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	slog.InfoContext(ctx, "character created",
		"character_id", c.ID,
		"name", c.Name)

	return &character.CreateCharacterOutput{Character: out.Character}, nil
}

// GetCharacter retrieves a character
func (o *Orchestrator) GetCharacter(
	ctx context.Context,
	input *character.GetCharacterInput,
) (*character.GetCharacterOutput, error) {
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

	return &character.GetCharacterOutput{Character: out.Character}, nil
}

// ChooseClass sets the class of a classless character
func (o *Orchestrator) ChooseClass(
	ctx context.Context,
	input *character.ChooseClassInput,
) (*character.ChooseClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateEnum("class", string(input.Class), classNames(), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	updated, err := o.mutate(ctx, input.CharacterID, func(c *entities.Character) error {
		if c.HasClass() {
			return errors.FailedPreconditionf("character already chose %s", c.Class).
				WithReason(ReasonClassAlreadyChosen)
		}
		c.Class = input.Class
		c.Stats = stats.Refresh(c.Stats, o.stats.Derive(c.Attributes, c.Level, c.Class))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to choose class")
	}

	return &character.ChooseClassOutput{Character: updated}, nil
}

// AllocatePoints spends available points and recomputes stats
func (o *Orchestrator) AllocatePoints(
	ctx context.Context,
	input *character.AllocatePointsInput,
) (*character.AllocatePointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	updated, err := o.mutate(ctx, input.CharacterID, func(c *entities.Character) error {
		attrs, left, err := stats.Allocate(c.Attributes, c.AvailablePoints, input.Points)
		if err != nil {
			return err
		}
		c.Attributes = attrs
		c.AvailablePoints = left
		c.Stats = stats.Refresh(c.Stats, o.stats.Derive(c.Attributes, c.Level, c.Class))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to allocate points")
	}

	return &character.AllocatePointsOutput{Character: updated}, nil
}

// GrantExperience adds experience and applies any level ups
func (o *Orchestrator) GrantExperience(
	ctx context.Context,
	input *character.GrantExperienceInput,
) (*character.GrantExperienceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, errors.FailedPreconditionf("experience must be positive, got %d", input.Amount).
			WithReason(progression.ReasonNonPositiveAmount)
	}

	var gained int
	updated, err := o.mutate(ctx, input.CharacterID, func(c *entities.Character) error {
		c.Level, c.Experience, _, gained = o.curve.Advance(c.Level, c.Experience, input.Amount)
		if gained > 0 {
			c.AvailablePoints += gained * o.tuning.CharacterLevels.PointsPerLevel
			c.Stats = stats.Refresh(c.Stats, o.stats.Derive(c.Attributes, c.Level, c.Class))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to grant experience")
	}

	if gained > 0 {
		slog.InfoContext(ctx, "character leveled up",
			"character_id", updated.ID,
			"level", updated.Level,
			"levels_gained", gained)
	}

	return &character.GrantExperienceOutput{
		Character:    updated,
		LevelsGained: gained,
	}, nil
}

// mutate runs one read → change → commit cycle for a character, retrying
// when another writer got there first
func (o *Orchestrator) mutate(
	ctx context.Context,
	characterID string,
	change func(c *entities.Character) error,
) (*entities.Character, error) {
	var result *entities.Character
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: characterID})
		if err != nil {
			return err
		}

		before := out.Character
		after := before.Clone()
		if err := change(after); err != nil {
			return err
		}
		after.UpdatedAt = o.clock.Now().Unix()

		w, err := o.characterRepo.Put(before, after)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(w)); err != nil {
			return err
		}

		result = after
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func classNames() []string {
	names := make([]string, len(entities.AllClasses))
	for i, c := range entities.AllClasses {
		names[i] = string(c)
	}
	return names
}
