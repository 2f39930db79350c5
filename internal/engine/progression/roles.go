package progression

import (
	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
)

// Reasons for rank checks
const (
	ReasonNotLeader        = "NOT_LEADER"
	ReasonInsufficientRank = "INSUFFICIENT_RANK"
	ReasonInvalidRole      = "INVALID_ROLE"
	ReasonSelfTarget       = "SELF_TARGET"
)

// ValidateRoleChange checks that actor may set target's role. Only the
// leader assigns roles and only between member and officer; leadership
// changes hands through departure.
func ValidateRoleChange(guild *entities.Guild, actor, target entities.GuildMember, role entities.GuildRole) error {
	if role != entities.GuildRoleMember && role != entities.GuildRoleOfficer {
		return errors.InvalidArgumentf("role must be member or officer, got %q", role).
			WithReason(ReasonInvalidRole)
	}
	if actor.CharacterID != guild.LeaderID {
		return errors.PermissionDenied("only the guild leader can change roles").
			WithReason(ReasonNotLeader)
	}
	if target.CharacterID == actor.CharacterID {
		return errors.FailedPrecondition("the leader cannot change their own role").
			WithReason(ReasonSelfTarget)
	}
	return nil
}

// ValidateKick checks that actor outranks target and holds at least officer
func ValidateKick(actor, target entities.GuildMember) error {
	if actor.CharacterID == target.CharacterID {
		return errors.FailedPrecondition("use leave to exit a guild").
			WithReason(ReasonSelfTarget)
	}
	if actor.Role.Rank() < entities.GuildRoleOfficer.Rank() || actor.Role.Rank() <= target.Role.Rank() {
		return errors.PermissionDeniedf("%s cannot remove %s", actor.Role, target.Role).
			WithReason(ReasonInsufficientRank)
	}
	return nil
}

// FindMember returns the roster entry for characterID
func FindMember(roster []entities.GuildMember, characterID string) (entities.GuildMember, bool) {
	for _, m := range roster {
		if m.CharacterID == characterID {
			return m, true
		}
	}
	return entities.GuildMember{}, false
}
