// Package guild defines the interface for guild operations
package guild

//go:generate mockgen -destination=mock/mock_service.go -package=guildmock github.com/KirkDiggler/realm-api/internal/services/guild Service

import (
	"context"

	"github.com/KirkDiggler/realm-api/internal/engine/progression"
	"github.com/KirkDiggler/realm-api/internal/entities"
)

// Service defines the interface for guild operations
type Service interface {
	CreateGuild(ctx context.Context, input *CreateGuildInput) (*CreateGuildOutput, error)
	GetGuild(ctx context.Context, input *GetGuildInput) (*GetGuildOutput, error)

	// Membership
	JoinGuild(ctx context.Context, input *JoinGuildInput) (*JoinGuildOutput, error)
	LeaveGuild(ctx context.Context, input *LeaveGuildInput) (*LeaveGuildOutput, error)
	KickMember(ctx context.Context, input *KickMemberInput) (*KickMemberOutput, error)
	SetMemberRole(ctx context.Context, input *SetMemberRoleInput) (*SetMemberRoleOutput, error)

	// Contribute adds guild experience on behalf of a member
	Contribute(ctx context.Context, input *ContributeInput) (*ContributeOutput, error)

	// UpdateSettings lets the leader change description and join type
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error)
}

// CreateGuildInput defines the request for founding a guild
type CreateGuildInput struct {
	CharacterID string
	Name        string
	Description string
	JoinType    entities.JoinType
}

// CreateGuildOutput defines the response for founding a guild
type CreateGuildOutput struct {
	Guild   *entities.Guild
	Members []entities.GuildMember
}

// GetGuildInput defines the request for reading a guild
type GetGuildInput struct {
	GuildID string
}

// GetGuildOutput holds the guild and its members in join order
type GetGuildOutput struct {
	Guild   *entities.Guild
	Members []entities.GuildMember
}

// JoinGuildInput defines the request for joining a guild
type JoinGuildInput struct {
	CharacterID string
	GuildID     string
}

// JoinGuildOutput defines the response for joining a guild
type JoinGuildOutput struct {
	Guild   *entities.Guild
	Members []entities.GuildMember
}

// LeaveGuildInput defines the request for leaving a guild
type LeaveGuildInput struct {
	CharacterID string
}

// LeaveGuildOutput describes what the departure did. Guild is nil when the
// guild was disbanded.
type LeaveGuildOutput struct {
	Kind        progression.TransitionKind
	Guild       *entities.Guild
	SuccessorID string
}

// KickMemberInput defines the request for removing a member
type KickMemberInput struct {
	ActorID  string
	TargetID string
}

// KickMemberOutput defines the response for removing a member
type KickMemberOutput struct {
	Guild   *entities.Guild
	Members []entities.GuildMember
}

// SetMemberRoleInput defines the request for promoting or demoting
type SetMemberRoleInput struct {
	ActorID  string
	TargetID string
	Role     entities.GuildRole
}

// SetMemberRoleOutput defines the response for promoting or demoting
type SetMemberRoleOutput struct {
	Members []entities.GuildMember
}

// ContributeInput defines the request for contributing experience
type ContributeInput struct {
	CharacterID string
	GuildID     string
	Amount      int
}

// ContributeOutput defines the response for contributing experience
type ContributeOutput struct {
	Guild        *entities.Guild
	LevelsGained int
}

// UpdateSettingsInput defines the request for changing guild settings.
// Nil fields are left unchanged.
type UpdateSettingsInput struct {
	ActorID     string
	Description *string
	JoinType    *entities.JoinType
}

// UpdateSettingsOutput defines the response for changing guild settings
type UpdateSettingsOutput struct {
	Guild *entities.Guild
}
