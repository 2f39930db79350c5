package entities

// GuildRole is a member's rank inside a guild
type GuildRole string

// Guild roles, lowest to highest
const (
	GuildRoleNone    GuildRole = ""
	GuildRoleMember  GuildRole = "member"
	GuildRoleOfficer GuildRole = "officer"
	GuildRoleLeader  GuildRole = "leader"
)

// Rank orders roles so permission checks can compare them
func (r GuildRole) Rank() int {
	switch r {
	case GuildRoleMember:
		return 1
	case GuildRoleOfficer:
		return 2
	case GuildRoleLeader:
		return 3
	default:
		return 0
	}
}

// JoinType controls whether anyone may join a guild
type JoinType string

// Join types
const (
	JoinTypeOpen   JoinType = "open"
	JoinTypeClosed JoinType = "closed"
)

// IsValid reports whether j is a known join type
func (j JoinType) IsValid() bool {
	return j == JoinTypeOpen || j == JoinTypeClosed
}

// GuildSettings holds leader-editable options
type GuildSettings struct {
	JoinType JoinType `json:"join_type"`
}

// Guild is a player organisation. The roster is not stored here: members
// are the characters whose GuildID points at the guild.
type Guild struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description,omitempty"`
	Level            int           `json:"level"`
	Experience       int           `json:"experience"`
	ExperienceToNext int           `json:"experience_to_next"`
	LeaderID         string        `json:"leader_id"`
	MaxMembers       int           `json:"max_members"`
	Settings         GuildSettings `json:"settings"`

	Version   int64 `json:"version"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Clone returns a copy of the guild
func (g *Guild) Clone() *Guild {
	if g == nil {
		return nil
	}
	out := *g
	return &out
}

// GuildMember is one roster entry as the progression rules see it
type GuildMember struct {
	CharacterID string         `json:"character_id"`
	Name        string         `json:"name"`
	Role        GuildRole      `json:"role"`
	Level       int            `json:"level"`
	Class       CharacterClass `json:"class,omitempty"`
}

// MemberOf builds the roster entry for a character
func MemberOf(c *Character) GuildMember {
	return GuildMember{
		CharacterID: c.ID,
		Name:        c.Name,
		Role:        c.GuildRole,
		Level:       c.Level,
		Class:       c.Class,
	}
}
