// Package progression holds the guild rules: experience and leveling,
// leadership succession and who may create or join a guild.
package progression

import (
	"math"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

// Named failure reasons
const (
	ReasonNonPositiveAmount = "NON_POSITIVE_AMOUNT"
	ReasonNoClass           = "NO_CLASS"
	ReasonAlreadyInGuild    = "ALREADY_IN_GUILD"
	ReasonNameTaken         = "NAME_TAKEN"
	ReasonGuildClosed       = "GUILD_CLOSED"
	ReasonGuildFull         = "GUILD_FULL"
	ReasonNotMember         = "NOT_MEMBER"
)

// Curve is an experience curve: level L needs floor(Base * Growth^(L-1))
type Curve struct {
	Base   int
	Growth float64
}

// CurveFrom adapts a tuning curve
func CurveFrom(c tuning.LevelCurve) Curve {
	return Curve{Base: c.Base, Growth: c.Growth}
}

// ExperienceToNext returns the experience needed to leave level
func (c Curve) ExperienceToNext(level int) int {
	if level < 1 {
		level = 1
	}
	need := math.Floor(float64(c.Base) * math.Pow(c.Growth, float64(level-1)))
	if math.IsNaN(need) || need >= math.MaxInt {
		return math.MaxInt
	}
	return int(need)
}

// Advance adds amount to experience and levels up while the threshold is
// met. It returns the new level, leftover experience, next threshold and
// how many levels were gained. Experience saturates at math.MaxInt.
func (c Curve) Advance(level, experience, amount int) (newLevel, newExperience, next, gained int) {
	newLevel = level
	newExperience = experience + amount
	if amount > 0 && experience > math.MaxInt-amount {
		newExperience = math.MaxInt
	}
	next = c.ExperienceToNext(newLevel)
	for next > 0 && newExperience >= next {
		newExperience -= next
		newLevel++
		gained++
		next = c.ExperienceToNext(newLevel)
	}
	return newLevel, newExperience, next, gained
}

// Contribute adds experience to a guild. The returned guild is a copy.
func Contribute(curve Curve, guild *entities.Guild, amount int) (*entities.Guild, int, error) {
	if amount <= 0 {
		return nil, 0, errors.FailedPreconditionf("contribution must be positive, got %d", amount).
			WithReason(ReasonNonPositiveAmount)
	}

	out := guild.Clone()
	var gained int
	out.Level, out.Experience, out.ExperienceToNext, gained = curve.Advance(guild.Level, guild.Experience, amount)
	return out, gained, nil
}

// SuccessionOrder lists who would take over from departingID: officers
// first, then members, each in roster order.
func SuccessionOrder(roster []entities.GuildMember, departingID string) []entities.GuildMember {
	var officers, members []entities.GuildMember
	for _, m := range roster {
		if m.CharacterID == departingID {
			continue
		}
		switch m.Role {
		case entities.GuildRoleOfficer:
			officers = append(officers, m)
		case entities.GuildRoleMember:
			members = append(members, m)
		}
	}
	return append(officers, members...)
}

// TransitionKind says what a departure did to the guild
type TransitionKind string

// Transition kinds
const (
	MemberLeft      TransitionKind = "member_left"
	LeaderSucceeded TransitionKind = "leader_succeeded"
	Disbanded       TransitionKind = "disbanded"
)

// Transition is the result of a member leaving
type Transition struct {
	Kind TransitionKind
	// Guild is the updated guild, nil when disbanded
	Guild *entities.Guild
	// Roster is the remaining members in join order with updated roles
	Roster      []entities.GuildMember
	SuccessorID string
}

// Depart removes departingID from the guild. A departing leader hands the
// guild to the first candidate in SuccessionOrder; with no candidate the
// guild is disbanded.
func Depart(guild *entities.Guild, roster []entities.GuildMember, departingID string) (*Transition, error) {
	var departing *entities.GuildMember
	remaining := make([]entities.GuildMember, 0, len(roster))
	for i := range roster {
		if roster[i].CharacterID == departingID {
			departing = &roster[i]
			continue
		}
		remaining = append(remaining, roster[i])
	}
	if departing == nil {
		return nil, errors.NotFoundf("character %s is not a member of guild %s", departingID, guild.ID).
			WithReason(ReasonNotMember)
	}

	if guild.LeaderID != departingID {
		return &Transition{Kind: MemberLeft, Guild: guild.Clone(), Roster: remaining}, nil
	}

	candidates := SuccessionOrder(roster, departingID)
	if len(candidates) == 0 {
		return &Transition{Kind: Disbanded}, nil
	}

	successor := candidates[0].CharacterID
	for i := range remaining {
		if remaining[i].CharacterID == successor {
			remaining[i].Role = entities.GuildRoleLeader
		}
	}
	out := guild.Clone()
	out.LeaderID = successor

	return &Transition{
		Kind:        LeaderSucceeded,
		Guild:       out,
		Roster:      remaining,
		SuccessorID: successor,
	}, nil
}

// Founding is what a new guild needs
type Founding struct {
	ID          string
	Name        string
	Description string
	JoinType    entities.JoinType
}

// ValidateCreate checks whether creator may found a guild called name
func ValidateCreate(rules tuning.GuildRules, name string, creator *entities.Character, nameTaken bool) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateLength("name", name, rules.NameMin, rules.NameMax, vb)
	if err := vb.Build(); err != nil {
		return err
	}
	if err := eligible(creator, "creating"); err != nil {
		return err
	}
	if nameTaken {
		return errors.FailedPreconditionf("guild name %q is taken", name).
			WithReason(ReasonNameTaken)
	}
	return nil
}

// NewGuild builds a level one guild led by creator. The caller is
// responsible for setting creator's membership.
func NewGuild(curve Curve, rules tuning.GuildRules, f Founding, creator *entities.Character, now int64) *entities.Guild {
	joinType := f.JoinType
	if !joinType.IsValid() {
		joinType = entities.JoinTypeOpen
	}
	return &entities.Guild{
		ID:               f.ID,
		Name:             f.Name,
		Description:      f.Description,
		Level:            1,
		Experience:       0,
		ExperienceToNext: curve.ExperienceToNext(1),
		LeaderID:         creator.ID,
		MaxMembers:       rules.MaxMembers,
		Settings:         entities.GuildSettings{JoinType: joinType},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ValidateJoin checks whether joiner may enter guild
func ValidateJoin(guild *entities.Guild, memberCount int, joiner *entities.Character) error {
	if err := eligible(joiner, "joining"); err != nil {
		return err
	}
	if guild.Settings.JoinType == entities.JoinTypeClosed {
		return errors.FailedPreconditionf("guild %s is closed", guild.Name).
			WithReason(ReasonGuildClosed)
	}
	if memberCount >= guild.MaxMembers {
		return errors.FailedPreconditionf("guild %s is full", guild.Name).
			WithReason(ReasonGuildFull).
			WithMeta("max_members", guild.MaxMembers)
	}
	return nil
}

// eligible checks the rules shared by creating and joining; action names
// which one in the error text
func eligible(c *entities.Character, action string) error {
	if !c.HasClass() {
		return errors.FailedPreconditionf("choose a class before %s a guild", action).
			WithReason(ReasonNoClass)
	}
	if c.InGuild() {
		return errors.FailedPrecondition("already in a guild").
			WithReason(ReasonAlreadyInGuild).
			WithMeta("guild_id", c.GuildID)
	}
	return nil
}
