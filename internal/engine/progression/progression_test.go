package progression_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/realm-api/internal/engine/progression"
	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

var curve = progression.Curve{Base: 100, Growth: 1.5}

func TestExperienceToNext(t *testing.T) {
	assert.Equal(t, 100, curve.ExperienceToNext(1))
	assert.Equal(t, 150, curve.ExperienceToNext(2))
	assert.Equal(t, 225, curve.ExperienceToNext(3))
	assert.Equal(t, 337, curve.ExperienceToNext(4))

	assert.Equal(t, math.MaxInt, curve.ExperienceToNext(500))
	assert.Equal(t, math.MaxInt, progression.Curve{Base: 100, Growth: math.Inf(1)}.ExperienceToNext(3))
}

func TestContribute(t *testing.T) {
	t.Run("levels up twice on a large contribution", func(t *testing.T) {
		guild := &entities.Guild{ID: "gld_1", Level: 1, Experience: 0, ExperienceToNext: 100}

		out, gained, err := progression.Contribute(curve, guild, 250)
		require.NoError(t, err)

		assert.Equal(t, 3, out.Level)
		assert.Equal(t, 0, out.Experience)
		assert.Equal(t, 225, out.ExperienceToNext)
		assert.Equal(t, 2, gained)
		assert.Equal(t, 1, guild.Level, "input must not change")
	})

	t.Run("partial progress", func(t *testing.T) {
		guild := &entities.Guild{Level: 2, Experience: 100, ExperienceToNext: 150}

		out, gained, err := progression.Contribute(curve, guild, 20)
		require.NoError(t, err)
		assert.Equal(t, 2, out.Level)
		assert.Equal(t, 120, out.Experience)
		assert.Zero(t, gained)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, _, err := progression.Contribute(curve, &entities.Guild{Level: 1}, 0)
		require.Error(t, err)
		assert.True(t, errors.IsFailedPrecondition(err))
		assert.Equal(t, progression.ReasonNonPositiveAmount, errors.GetReason(err))
	})

	t.Run("max contributions never wrap", func(t *testing.T) {
		guild := &entities.Guild{Level: 1, ExperienceToNext: 100}
		for i := 0; i < 3; i++ {
			out, _, err := progression.Contribute(curve, guild, math.MaxInt)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, out.Experience, 0)
			assert.Less(t, out.Experience, out.ExperienceToNext)
			assert.GreaterOrEqual(t, out.Level, guild.Level)
			guild = out
		}
	})

	t.Run("experience stays below threshold", func(t *testing.T) {
		guild := &entities.Guild{Level: 1, ExperienceToNext: 100}
		for _, amount := range []int{1, 99, 1000, 37, 5000} {
			out, _, err := progression.Contribute(curve, guild, amount)
			require.NoError(t, err)
			assert.Less(t, out.Experience, out.ExperienceToNext)
			assert.Equal(t, curve.ExperienceToNext(out.Level), out.ExperienceToNext)
			guild = out
		}
	})
}

func roster() []entities.GuildMember {
	return []entities.GuildMember{
		{CharacterID: "leader", Role: entities.GuildRoleLeader},
		{CharacterID: "m1", Role: entities.GuildRoleMember},
		{CharacterID: "o1", Role: entities.GuildRoleOfficer},
		{CharacterID: "m2", Role: entities.GuildRoleMember},
		{CharacterID: "o2", Role: entities.GuildRoleOfficer},
	}
}

func ids(members []entities.GuildMember) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.CharacterID)
	}
	return out
}

func TestSuccessionOrder(t *testing.T) {
	got := progression.SuccessionOrder(roster(), "leader")
	assert.Equal(t, []string{"o1", "o2", "m1", "m2"}, ids(got))

	assert.Empty(t, progression.SuccessionOrder(roster()[:1], "leader"))
}

func TestDepart(t *testing.T) {
	guild := &entities.Guild{ID: "gld_1", LeaderID: "leader"}

	t.Run("member leaves", func(t *testing.T) {
		tr, err := progression.Depart(guild, roster(), "m1")
		require.NoError(t, err)
		assert.Equal(t, progression.MemberLeft, tr.Kind)
		assert.Equal(t, "leader", tr.Guild.LeaderID)
		assert.Equal(t, []string{"leader", "o1", "m2", "o2"}, ids(tr.Roster))
	})

	t.Run("officer succeeds leader", func(t *testing.T) {
		tr, err := progression.Depart(guild, roster(), "leader")
		require.NoError(t, err)
		assert.Equal(t, progression.LeaderSucceeded, tr.Kind)
		assert.Equal(t, "o1", tr.SuccessorID)
		assert.Equal(t, "o1", tr.Guild.LeaderID)

		successor, ok := progression.FindMember(tr.Roster, "o1")
		require.True(t, ok)
		assert.Equal(t, entities.GuildRoleLeader, successor.Role)
		assert.Equal(t, "leader", guild.LeaderID, "input must not change")
	})

	t.Run("member succeeds when there are no officers", func(t *testing.T) {
		r := []entities.GuildMember{
			{CharacterID: "leader", Role: entities.GuildRoleLeader},
			{CharacterID: "m1", Role: entities.GuildRoleMember},
			{CharacterID: "m2", Role: entities.GuildRoleMember},
		}
		tr, err := progression.Depart(guild, r, "leader")
		require.NoError(t, err)
		assert.Equal(t, "m1", tr.SuccessorID)
	})

	t.Run("last member disbands", func(t *testing.T) {
		tr, err := progression.Depart(guild, roster()[:1], "leader")
		require.NoError(t, err)
		assert.Equal(t, progression.Disbanded, tr.Kind)
		assert.Nil(t, tr.Guild)
		assert.Empty(t, tr.Roster)
	})

	t.Run("non-member", func(t *testing.T) {
		_, err := progression.Depart(guild, roster(), "stranger")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestValidateCreate(t *testing.T) {
	rules := tuning.GuildRules{MaxMembers: 20, NameMin: 3, NameMax: 30}
	warrior := &entities.Character{ID: "chr_1", Class: entities.ClassWarrior}

	assert.NoError(t, progression.ValidateCreate(rules, "Knights", warrior, false))
	assert.NoError(t, progression.ValidateCreate(rules, "Ærø", warrior, false), "length counts runes")

	err := progression.ValidateCreate(rules, "ab", warrior, false)
	assert.True(t, errors.IsInvalidArgument(err))

	err = progression.ValidateCreate(rules, "Knights", warrior, true)
	assert.True(t, errors.IsFailedPrecondition(err))
	assert.Equal(t, progression.ReasonNameTaken, errors.GetReason(err))

	err = progression.ValidateCreate(rules, "Knights", &entities.Character{ID: "chr_2"}, false)
	assert.Equal(t, progression.ReasonNoClass, errors.GetReason(err))
	assert.Contains(t, err.Error(), "choose a class before creating a guild")

	member := &entities.Character{ID: "chr_3", Class: entities.ClassMage, GuildID: "gld_9", GuildRole: entities.GuildRoleMember}
	err = progression.ValidateCreate(rules, "Knights", member, false)
	assert.Equal(t, progression.ReasonAlreadyInGuild, errors.GetReason(err))
}

func TestNewGuild(t *testing.T) {
	rules := tuning.GuildRules{MaxMembers: 20, NameMin: 3, NameMax: 30}
	creator := &entities.Character{ID: "chr_1", Class: entities.ClassWarrior}

	g := progression.NewGuild(curve, rules, progression.Founding{ID: "gld_1", Name: "Knights"}, creator, 42)

	assert.Equal(t, 1, g.Level)
	assert.Equal(t, 0, g.Experience)
	assert.Equal(t, 100, g.ExperienceToNext)
	assert.Equal(t, "chr_1", g.LeaderID)
	assert.Equal(t, 20, g.MaxMembers)
	assert.Equal(t, entities.JoinTypeOpen, g.Settings.JoinType)
	assert.Equal(t, int64(42), g.CreatedAt)
}

func TestValidateJoin(t *testing.T) {
	guild := &entities.Guild{Name: "Knights", MaxMembers: 2, Settings: entities.GuildSettings{JoinType: entities.JoinTypeOpen}}
	joiner := &entities.Character{ID: "chr_1", Class: entities.ClassArcher}

	assert.NoError(t, progression.ValidateJoin(guild, 1, joiner))

	err := progression.ValidateJoin(guild, 1, &entities.Character{ID: "chr_2"})
	assert.Equal(t, progression.ReasonNoClass, errors.GetReason(err))
	assert.Contains(t, err.Error(), "choose a class before joining a guild")

	err = progression.ValidateJoin(guild, 2, joiner)
	assert.Equal(t, progression.ReasonGuildFull, errors.GetReason(err))

	closed := guild.Clone()
	closed.Settings.JoinType = entities.JoinTypeClosed
	err = progression.ValidateJoin(closed, 0, joiner)
	assert.Equal(t, progression.ReasonGuildClosed, errors.GetReason(err))
	assert.True(t, errors.IsFailedPrecondition(err))
}

func TestRoles(t *testing.T) {
	guild := &entities.Guild{LeaderID: "leader"}
	leader := entities.GuildMember{CharacterID: "leader", Role: entities.GuildRoleLeader}
	officer := entities.GuildMember{CharacterID: "o1", Role: entities.GuildRoleOfficer}
	member := entities.GuildMember{CharacterID: "m1", Role: entities.GuildRoleMember}

	assert.NoError(t, progression.ValidateRoleChange(guild, leader, member, entities.GuildRoleOfficer))
	assert.True(t, errors.IsPermissionDenied(progression.ValidateRoleChange(guild, officer, member, entities.GuildRoleOfficer)))
	assert.True(t, errors.IsInvalidArgument(progression.ValidateRoleChange(guild, leader, member, entities.GuildRoleLeader)))

	assert.NoError(t, progression.ValidateKick(officer, member))
	assert.NoError(t, progression.ValidateKick(leader, officer))
	assert.True(t, errors.IsPermissionDenied(progression.ValidateKick(officer, leader)))
	other := entities.GuildMember{CharacterID: "m2", Role: entities.GuildRoleMember}
	assert.True(t, errors.IsPermissionDenied(progression.ValidateKick(member, other)))
	assert.True(t, errors.IsFailedPrecondition(progression.ValidateKick(officer, officer)))
}
