package testutils

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/pkg/clock"
	"github.com/KirkDiggler/realm-api/internal/redis"
	characterrepo "github.com/KirkDiggler/realm-api/internal/repositories/character"
	guildrepo "github.com/KirkDiggler/realm-api/internal/repositories/guild"
	"github.com/KirkDiggler/realm-api/internal/repositories/ledger"
	marketrepo "github.com/KirkDiggler/realm-api/internal/repositories/market"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

// TestEpoch is the instant the fixture clock starts at
var TestEpoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// Realm wires every repository against one miniredis server and a
// temporary ledger database
type Realm struct {
	Client     redis.Client
	Server     *miniredis.Miniredis
	Committer  unitofwork.Committer
	Characters characterrepo.Repository
	Guilds     guildrepo.Repository
	Listings   marketrepo.Repository
	Ledger     ledger.Repository
	Tuning     *tuning.Tuning
	Clock      *clock.Fixed
}

// NewRealm builds a Realm with the default balance file
func NewRealm(t testing.TB) *Realm {
	t.Helper()

	client, server := CreateTestRedisClient(t)

	committer, err := unitofwork.NewRedis(&unitofwork.Config{Client: client})
	require.NoError(t, err)

	characters, err := characterrepo.NewRedis(&characterrepo.RedisConfig{
		Client:    client,
		Committer: committer,
	})
	require.NoError(t, err)

	guilds, err := guildrepo.NewRedis(&guildrepo.RedisConfig{Client: client})
	require.NoError(t, err)

	listings, err := marketrepo.NewRedis(&marketrepo.RedisConfig{Client: client})
	require.NoError(t, err)

	trades, err := ledger.NewSQLite(&ledger.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "ledger.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = trades.Close() })

	tun, err := tuning.Default()
	require.NoError(t, err)

	return &Realm{
		Client:     client,
		Server:     server,
		Committer:  committer,
		Characters: characters,
		Guilds:     guilds,
		Listings:   listings,
		Ledger:     trades,
		Tuning:     tun,
		Clock:      clock.NewFixed(TestEpoch),
	}
}

// Advance moves the fixture clock forward
func (r *Realm) Advance(d time.Duration) {
	r.Clock.Advance(d)
}

// SeedCharacter stores c and returns it with its version set
func (r *Realm) SeedCharacter(t testing.TB, c *entities.Character) *entities.Character {
	t.Helper()

	_, err := r.Characters.Create(context.Background(), characterrepo.CreateInput{Character: c})
	require.NoError(t, err)
	return c
}

// SeedGuild stores g together with members, whose guild fields must
// already point at g
func (r *Realm) SeedGuild(t testing.TB, g *entities.Guild, members ...*entities.Character) *entities.Guild {
	t.Helper()

	writes, err := r.Guilds.Create(g)
	require.NoError(t, err)
	for _, m := range members {
		w, err := r.Characters.Put(nil, m)
		require.NoError(t, err)
		writes = append(writes, w)
	}
	require.NoError(t, r.Committer.Commit(context.Background(), unitofwork.NewChangeset(writes...)))
	return g
}

// SeedListing stores an open listing
func (r *Realm) SeedListing(t testing.TB, l *entities.MarketListing) *entities.MarketListing {
	t.Helper()

	w, err := r.Listings.Put(nil, l)
	require.NoError(t, err)
	require.NoError(t, r.Committer.Commit(context.Background(), unitofwork.NewChangeset(w)))
	return l
}

// Character reloads a character, failing the test if it is missing
func (r *Realm) Character(t testing.TB, id string) *entities.Character {
	t.Helper()

	out, err := r.Characters.Get(context.Background(), characterrepo.GetInput{ID: id})
	require.NoError(t, err)
	return out.Character
}

// Guild reloads a guild, failing the test if it is missing
func (r *Realm) Guild(t testing.TB, id string) *entities.Guild {
	t.Helper()

	out, err := r.Guilds.Get(context.Background(), guildrepo.GetInput{ID: id})
	require.NoError(t, err)
	return out.Guild
}
