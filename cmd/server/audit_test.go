package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/realm-api/internal/entities"
	characterrepo "github.com/KirkDiggler/realm-api/internal/repositories/character"
	"github.com/KirkDiggler/realm-api/internal/testutils"
	"github.com/KirkDiggler/realm-api/internal/testutils/builders"
)

func TestAuditCleanRealm(t *testing.T) {
	fixture := testutils.NewRealm(t)
	ctx := context.Background()

	leader := builders.NewCharacter("chr_1").
		WithClass(entities.ClassWarrior).
		InGuild("gld_1", entities.GuildRoleLeader, 1).
		Build()
	fixture.SeedGuild(t, builders.NewGuild("gld_1", "chr_1").Build(), leader)
	fixture.SeedCharacter(t, builders.NewCharacter("chr_2").Build())

	findings, checked, err := auditRosters(ctx, fixture.Client)
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, 2, checked)
}

func TestAuditFindsDisagreements(t *testing.T) {
	fixture := testutils.NewRealm(t)
	ctx := context.Background()

	leader := builders.NewCharacter("chr_1").
		WithClass(entities.ClassWarrior).
		InGuild("gld_1", entities.GuildRoleLeader, 1).
		Build()
	member := builders.NewCharacter("chr_2").
		InGuild("gld_1", entities.GuildRoleMember, 2).
		Build()
	fixture.SeedGuild(t, builders.NewGuild("gld_1", "chr_1").Build(), leader, member)
	fixture.SeedCharacter(t, builders.NewCharacter("chr_3").Build())
	fixture.SeedCharacter(t, builders.NewCharacter("chr_4").
		InGuild("gld_gone", entities.GuildRoleLeader, 3).
		Build())

	require.NoError(t, fixture.Client.Set(ctx, characterrepo.Key("chr_bad"), "{not json", 0).Err())
	require.NoError(t, fixture.Client.ZRem(ctx, characterrepo.GuildMembersKey("gld_1"), "chr_2").Err())
	require.NoError(t, fixture.Client.ZAdd(ctx, characterrepo.GuildMembersKey("gld_1"),
		redis.Z{Score: 4, Member: "chr_3"}).Err())

	findings, checked, err := auditRosters(ctx, fixture.Client)
	require.NoError(t, err)
	assert.Equal(t, 5, checked)

	problems := map[string]string{}
	for _, f := range findings {
		problems[f.Key+"|"+f.ID] = f.Problem
	}
	assert.Equal(t, problemCorrupt, problems[characterrepo.Key("chr_bad")+"|"])
	assert.Equal(t, problemNotOnRoster, problems[characterrepo.Key("chr_2")+"|gld_1"])
	assert.Equal(t, problemMissingGuild, problems[characterrepo.Key("chr_4")+"|gld_gone"])
	assert.Equal(t, problemStrayMember, problems[characterrepo.GuildMembersKey("gld_1")+"|chr_3"])
	assert.Len(t, findings, 4)

	removed, err := removeStrayMembers(ctx, fixture.Client, findings)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	var out bytes.Buffer
	findings, checked, err = auditRosters(ctx, fixture.Client)
	require.NoError(t, err)
	report(&out, findings, checked)
	assert.Contains(t, out.String(), "found 3 problems")
}
