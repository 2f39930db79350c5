package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/services/guild"
)

type actorTarget struct {
	ActorID  string `json:"actor_id"`
	TargetID string `json:"target_id"`
}

func guildView(g *entities.Guild, members []entities.GuildMember) map[string]any {
	if members == nil {
		members = []entities.GuildMember{}
	}
	return map[string]any{
		"guild":   g,
		"members": members,
	}
}

// CreateGuild founds a guild led by the requesting character
func (h *Handler) CreateGuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string `json:"character_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		JoinType    string `json:"join_type"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.guildService.CreateGuild(ctx, &guild.CreateGuildInput{
		CharacterID: body.CharacterID,
		Name:        body.Name,
		Description: body.Description,
		JoinType:    entities.JoinType(body.JoinType),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(guildView(out.Guild, out.Members))
}

// GetGuild returns a guild with its roster
func (h *Handler) GetGuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		GuildID string `json:"guild_id"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.guildService.GetGuild(ctx, &guild.GetGuildInput{GuildID: body.GuildID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(guildView(out.Guild, out.Members))
}

// JoinGuild adds the character to an open guild
func (h *Handler) JoinGuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string `json:"character_id"`
		GuildID     string `json:"guild_id"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.guildService.JoinGuild(ctx, &guild.JoinGuildInput{
		CharacterID: body.CharacterID,
		GuildID:     body.GuildID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(guildView(out.Guild, out.Members))
}

// LeaveGuild removes the character from its guild
func (h *Handler) LeaveGuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body characterRef
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.guildService.LeaveGuild(ctx, &guild.LeaveGuildInput{
		CharacterID: body.CharacterID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := map[string]any{"kind": out.Kind}
	if out.Guild != nil {
		resp["guild"] = out.Guild
	}
	if out.SuccessorID != "" {
		resp["successor_id"] = out.SuccessorID
	}
	return respond(resp)
}

// KickMember removes a lower ranked member
func (h *Handler) KickMember(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body actorTarget
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.guildService.KickMember(ctx, &guild.KickMemberInput{
		ActorID:  body.ActorID,
		TargetID: body.TargetID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(guildView(out.Guild, out.Members))
}

// SetMemberRole promotes or demotes a member
func (h *Handler) SetMemberRole(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		actorTarget
		Role string `json:"role"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.guildService.SetMemberRole(ctx, &guild.SetMemberRoleInput{
		ActorID:  body.ActorID,
		TargetID: body.TargetID,
		Role:     entities.GuildRole(body.Role),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	members := out.Members
	if members == nil {
		members = []entities.GuildMember{}
	}
	return respond(map[string]any{"members": members})
}

// Contribute donates experience to the character's guild
func (h *Handler) Contribute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string `json:"character_id"`
		GuildID     string `json:"guild_id"`
		Amount      int    `json:"amount"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.guildService.Contribute(ctx, &guild.ContributeInput{
		CharacterID: body.CharacterID,
		GuildID:     body.GuildID,
		Amount:      body.Amount,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"guild":         out.Guild,
		"levels_gained": out.LevelsGained,
	})
}

// UpdateGuildSettings changes the description or join type. Absent fields
// are left as they are.
func (h *Handler) UpdateGuildSettings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		ActorID     string  `json:"actor_id"`
		Description *string `json:"description"`
		JoinType    *string `json:"join_type"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	input := &guild.UpdateSettingsInput{
		ActorID:     body.ActorID,
		Description: body.Description,
	}
	if body.JoinType != nil {
		jt := entities.JoinType(*body.JoinType)
		input.JoinType = &jt
	}

	out, err := h.guildService.UpdateSettings(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"guild": out.Guild})
}
