// Package guild implements the guild orchestrator
package guild

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/realm-api/internal/engine/progression"
	"github.com/KirkDiggler/realm-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/pkg/clock"
	"github.com/KirkDiggler/realm-api/internal/pkg/idgen"
	"github.com/KirkDiggler/realm-api/internal/pkg/retry"
	characterrepo "github.com/KirkDiggler/realm-api/internal/repositories/character"
	guildrepo "github.com/KirkDiggler/realm-api/internal/repositories/guild"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
	"github.com/KirkDiggler/realm-api/internal/services/guild"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

// Config holds the dependencies for the guild orchestrator
type Config struct {
	CharacterRepo  characterrepo.Repository
	GuildRepo      guildrepo.Repository
	Committer      unitofwork.Committer
	Tuning         *tuning.Tuning
	Clock          clock.Clock
	IDGenerator    idgen.Generator
	Publisher      *rpgtoolkit.Publisher
	CommitAttempts int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.GuildRepo == nil {
		vb.RequiredField("GuildRepo")
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
	if c.Publisher == nil {
		vb.RequiredField("Publisher")
	}

	return vb.Build()
}

// Orchestrator implements the guild.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	guildRepo     guildrepo.Repository
	committer     unitofwork.Committer
	rules         tuning.GuildRules
	curve         progression.Curve
	clock         clock.Clock
	idGenerator   idgen.Generator
	publisher     *rpgtoolkit.Publisher
	attempts      int
}

// New creates a new guild orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		guildRepo:     cfg.GuildRepo,
		committer:     cfg.Committer,
		rules:         cfg.Tuning.Guild,
		curve:         progression.CurveFrom(cfg.Tuning.GuildLevels),
		clock:         cfg.Clock,
		idGenerator:   cfg.IDGenerator,
		publisher:     cfg.Publisher,
		attempts:      cfg.CommitAttempts,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ guild.Service = (*Orchestrator)(nil)

// CreateGuild founds a guild with the creator as leader
func (o *Orchestrator) CreateGuild(ctx context.Context, input *guild.CreateGuildInput) (*guild.CreateGuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if input.JoinType != "" && !input.JoinType.IsValid() {
		vb.InvalidField("joinType", "must be open or closed")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	guildID := o.idGenerator.Generate()
	var (
		created *entities.Guild
		leader  *entities.Character
	)
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
		if err != nil {
			return err
		}
		before := out.Character

		taken, err := o.guildRepo.NameTaken(ctx, input.Name)
		if err != nil {
			return err
		}
		if err := progression.ValidateCreate(o.rules, input.Name, before, taken); err != nil {
			return err
		}

		now := o.clock.Now()
		g := progression.NewGuild(o.curve, o.rules, progression.Founding{
			ID:          guildID,
			Name:        input.Name,
			Description: input.Description,
			JoinType:    input.JoinType,
		}, before, now.Unix())

		after := before.Clone()
		after.JoinGuild(g.ID, entities.GuildRoleLeader, now.UnixMicro())
		after.UpdatedAt = now.Unix()

		writes, err := o.guildRepo.Create(g)
		if err != nil {
			return err
		}
		charWrite, err := o.characterRepo.Put(before, after)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(writes...).Add(charWrite)); err != nil {
			return err
		}

		created, leader = g, after
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create guild")
	}

	slog.InfoContext(ctx, "guild created",
		"guild_id", created.ID,
		"name", created.Name,
		"leader_id", leader.ID)

	return &guild.CreateGuildOutput{
		Guild:   created,
		Members: []entities.GuildMember{entities.MemberOf(leader)},
	}, nil
}

// GetGuild returns a guild and its members in join order
func (o *Orchestrator) GetGuild(ctx context.Context, input *guild.GetGuildInput) (*guild.GetGuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("guildID", input.GuildID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	g, roster, err := o.load(ctx, input.GuildID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get guild")
	}

	return &guild.GetGuildOutput{Guild: g, Members: members(roster)}, nil
}

// JoinGuild adds a character to an open guild
func (o *Orchestrator) JoinGuild(ctx context.Context, input *guild.JoinGuildInput) (*guild.JoinGuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("guildID", input.GuildID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var (
		joined *entities.Guild
		roster []*entities.Character
	)
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
		if err != nil {
			return err
		}
		before := out.Character

		g, current, err := o.load(ctx, input.GuildID)
		if err != nil {
			return err
		}
		if err := progression.ValidateJoin(g, len(current), before); err != nil {
			return err
		}

		now := o.clock.Now()
		after := before.Clone()
		after.JoinGuild(g.ID, entities.GuildRoleMember, now.UnixMicro())
		after.UpdatedAt = now.Unix()

		// the guild write makes concurrent joins conflict so the member
		// cap holds
		nextGuild := g.Clone()
		nextGuild.UpdatedAt = now.Unix()

		charWrite, err := o.characterRepo.Put(before, after)
		if err != nil {
			return err
		}
		guildWrite, err := o.guildRepo.Put(g, nextGuild)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(guildWrite, charWrite)); err != nil {
			return err
		}

		joined, roster = nextGuild, append(current, after)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to join guild %s", input.GuildID)
	}

	return &guild.JoinGuildOutput{Guild: joined, Members: members(roster)}, nil
}

// LeaveGuild removes a character from their guild, handing leadership on
// or disbanding the guild when the leader is the last to go
func (o *Orchestrator) LeaveGuild(ctx context.Context, input *guild.LeaveGuildInput) (*guild.LeaveGuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var (
		transition *progression.Transition
		previous   *entities.Guild
	)
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
		if err != nil {
			return err
		}
		if !out.Character.InGuild() {
			return errors.FailedPrecondition("character is not in a guild").
				WithReason(progression.ReasonNotMember)
		}

		g, roster, err := o.load(ctx, out.Character.GuildID)
		if err != nil {
			return err
		}

		t, err := progression.Depart(g, members(roster), input.CharacterID)
		if err != nil {
			return err
		}

		writes, err := o.departureWrites(g, roster, input.CharacterID, t)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(writes...)); err != nil {
			return err
		}

		transition, previous = t, g
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to leave guild")
	}

	o.announceDeparture(ctx, previous, transition)

	return &guild.LeaveGuildOutput{
		Kind:        transition.Kind,
		Guild:       transition.Guild,
		SuccessorID: transition.SuccessorID,
	}, nil
}

// KickMember removes a lower ranked member
func (o *Orchestrator) KickMember(ctx context.Context, input *guild.KickMemberInput) (*guild.KickMemberOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("actorID", input.ActorID, vb)
	errors.ValidateRequired("targetID", input.TargetID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var transition *progression.Transition
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		g, roster, err := o.loadForActor(ctx, input.ActorID)
		if err != nil {
			return err
		}

		entries := members(roster)
		actor, _ := progression.FindMember(entries, input.ActorID)
		target, ok := progression.FindMember(entries, input.TargetID)
		if !ok {
			return errors.NotFoundf("character %s is not a member of guild %s", input.TargetID, g.ID).
				WithReason(progression.ReasonNotMember)
		}
		if err := progression.ValidateKick(actor, target); err != nil {
			return err
		}

		// the target never outranks the actor, so this is never a leader
		// departure
		t, err := progression.Depart(g, entries, input.TargetID)
		if err != nil {
			return err
		}
		writes, err := o.departureWrites(g, roster, input.TargetID, t)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(writes...)); err != nil {
			return err
		}

		transition = t
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to kick %s", input.TargetID)
	}

	slog.InfoContext(ctx, "guild member kicked",
		"guild_id", transition.Guild.ID,
		"actor_id", input.ActorID,
		"target_id", input.TargetID)

	return &guild.KickMemberOutput{Guild: transition.Guild, Members: transition.Roster}, nil
}

// SetMemberRole promotes or demotes a member
func (o *Orchestrator) SetMemberRole(
	ctx context.Context,
	input *guild.SetMemberRoleInput,
) (*guild.SetMemberRoleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("actorID", input.ActorID, vb)
	errors.ValidateRequired("targetID", input.TargetID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var roster []*entities.Character
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		g, current, err := o.loadForActor(ctx, input.ActorID)
		if err != nil {
			return err
		}

		entries := members(current)
		actor, _ := progression.FindMember(entries, input.ActorID)
		target, ok := progression.FindMember(entries, input.TargetID)
		if !ok {
			return errors.NotFoundf("character %s is not a member of guild %s", input.TargetID, g.ID).
				WithReason(progression.ReasonNotMember)
		}
		if err := progression.ValidateRoleChange(g, actor, target, input.Role); err != nil {
			return err
		}

		next := make([]*entities.Character, len(current))
		var cs *unitofwork.Changeset
		for i, c := range current {
			next[i] = c
			if c.ID != input.TargetID {
				continue
			}
			after := c.Clone()
			after.GuildRole = input.Role
			after.UpdatedAt = o.clock.Now().Unix()
			w, err := o.characterRepo.Put(c, after)
			if err != nil {
				return err
			}
			cs = unitofwork.NewChangeset(w)
			next[i] = after
		}
		if err := o.committer.Commit(ctx, cs); err != nil {
			return err
		}

		roster = next
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set role of %s", input.TargetID)
	}

	return &guild.SetMemberRoleOutput{Members: members(roster)}, nil
}

// Contribute adds guild experience on behalf of a member
func (o *Orchestrator) Contribute(ctx context.Context, input *guild.ContributeInput) (*guild.ContributeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("guildID", input.GuildID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var (
		updated *entities.Guild
		gained  int
		member  *entities.Character
	)
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
		if err != nil {
			return err
		}
		if out.Character.GuildID != input.GuildID {
			return errors.PermissionDenied("only members can contribute to a guild").
				WithReason(progression.ReasonNotMember)
		}

		gout, err := o.guildRepo.Get(ctx, guildrepo.GetInput{ID: input.GuildID})
		if err != nil {
			return err
		}
		before := gout.Guild

		after, levels, err := progression.Contribute(o.curve, before, input.Amount)
		if err != nil {
			return err
		}
		after.UpdatedAt = o.clock.Now().Unix()

		w, err := o.guildRepo.Put(before, after)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(w)); err != nil {
			return err
		}

		updated, gained, member = after, levels, out.Character
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to contribute to guild %s", input.GuildID)
	}

	if gained > 0 {
		o.publisher.Publish(ctx, rpgtoolkit.EventGuildLeveledUp,
			rpgtoolkit.WrapCharacter(member), rpgtoolkit.WrapGuild(updated),
			map[string]any{"level": updated.Level, "levels_gained": gained})
	}

	return &guild.ContributeOutput{Guild: updated, LevelsGained: gained}, nil
}

// UpdateSettings changes the description or join type. Only the leader
// may do this.
func (o *Orchestrator) UpdateSettings(
	ctx context.Context,
	input *guild.UpdateSettingsInput,
) (*guild.UpdateSettingsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("actorID", input.ActorID, vb)
	if input.JoinType != nil && !input.JoinType.IsValid() {
		vb.InvalidField("joinType", "must be open or closed")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var updated *entities.Guild
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.ActorID})
		if err != nil {
			return err
		}
		if !out.Character.InGuild() {
			return errors.FailedPrecondition("character is not in a guild").
				WithReason(progression.ReasonNotMember)
		}

		gout, err := o.guildRepo.Get(ctx, guildrepo.GetInput{ID: out.Character.GuildID})
		if err != nil {
			return err
		}
		before := gout.Guild
		if before.LeaderID != input.ActorID {
			return errors.PermissionDenied("only the guild leader can change settings").
				WithReason(progression.ReasonNotLeader)
		}

		after := before.Clone()
		if input.Description != nil {
			after.Description = *input.Description
		}
		if input.JoinType != nil {
			after.Settings.JoinType = *input.JoinType
		}
		after.UpdatedAt = o.clock.Now().Unix()

		w, err := o.guildRepo.Put(before, after)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(w)); err != nil {
			return err
		}

		updated = after
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update guild settings")
	}

	return &guild.UpdateSettingsOutput{Guild: updated}, nil
}

// load reads a guild and its roster
func (o *Orchestrator) load(ctx context.Context, guildID string) (*entities.Guild, []*entities.Character, error) {
	gout, err := o.guildRepo.Get(ctx, guildrepo.GetInput{ID: guildID})
	if err != nil {
		return nil, nil, err
	}
	rout, err := o.characterRepo.ListByGuild(ctx, characterrepo.ListByGuildInput{GuildID: guildID})
	if err != nil {
		return nil, nil, err
	}
	return gout.Guild, rout.Characters, nil
}

// loadForActor reads the guild actorID belongs to
func (o *Orchestrator) loadForActor(ctx context.Context, actorID string) (*entities.Guild, []*entities.Character, error) {
	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: actorID})
	if err != nil {
		return nil, nil, err
	}
	if !out.Character.InGuild() {
		return nil, nil, errors.FailedPrecondition("character is not in a guild").
			WithReason(progression.ReasonNotMember)
	}
	return o.load(ctx, out.Character.GuildID)
}

// departureWrites stages the stored effects of a transition: the departing
// character loses membership, and the guild is updated or removed
func (o *Orchestrator) departureWrites(
	g *entities.Guild,
	roster []*entities.Character,
	departingID string,
	t *progression.Transition,
) ([]unitofwork.Write, error) {
	now := o.clock.Now().Unix()

	var writes []unitofwork.Write
	for _, c := range roster {
		var after *entities.Character
		switch c.ID {
		case departingID:
			after = c.Clone()
			after.LeaveGuild()
		case t.SuccessorID:
			after = c.Clone()
			after.GuildRole = entities.GuildRoleLeader
		default:
			continue
		}
		after.UpdatedAt = now

		w, err := o.characterRepo.Put(c, after)
		if err != nil {
			return nil, err
		}
		writes = append(writes, w)
	}

	if t.Kind == progression.Disbanded {
		return append(writes, o.guildRepo.Disband(g)...), nil
	}

	t.Guild.UpdatedAt = now
	w, err := o.guildRepo.Put(g, t.Guild)
	if err != nil {
		return nil, err
	}
	return append(writes, w), nil
}

func (o *Orchestrator) announceDeparture(ctx context.Context, g *entities.Guild, t *progression.Transition) {
	switch t.Kind {
	case progression.LeaderSucceeded:
		o.publisher.Publish(ctx, rpgtoolkit.EventGuildLeaderChanged,
			rpgtoolkit.WrapGuild(t.Guild), nil,
			map[string]any{"previous_leader_id": g.LeaderID, "leader_id": t.SuccessorID})
	case progression.Disbanded:
		o.publisher.Publish(ctx, rpgtoolkit.EventGuildDisbanded,
			rpgtoolkit.WrapGuild(g), nil,
			map[string]any{"name": g.Name})
	}
}

func members(roster []*entities.Character) []entities.GuildMember {
	out := make([]entities.GuildMember, len(roster))
	for i, c := range roster {
		out[i] = entities.MemberOf(c)
	}
	return out
}
