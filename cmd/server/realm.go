package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/realm-api/internal/config"
	"github.com/KirkDiggler/realm-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/realm-api/internal/errors"
	realmv1alpha1 "github.com/KirkDiggler/realm-api/internal/handlers/realm/v1alpha1"
	characterorch "github.com/KirkDiggler/realm-api/internal/orchestrators/character"
	guildorch "github.com/KirkDiggler/realm-api/internal/orchestrators/guild"
	inventoryorch "github.com/KirkDiggler/realm-api/internal/orchestrators/inventory"
	pvporch "github.com/KirkDiggler/realm-api/internal/orchestrators/pvp"
	"github.com/KirkDiggler/realm-api/internal/pkg/clock"
	"github.com/KirkDiggler/realm-api/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/realm-api/internal/repositories/character"
	guildrepo "github.com/KirkDiggler/realm-api/internal/repositories/guild"
	"github.com/KirkDiggler/realm-api/internal/repositories/ledger"
	"github.com/KirkDiggler/realm-api/internal/repositories/market"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

// realm is the assembled service graph behind the gRPC handler
type realm struct {
	handler *realmv1alpha1.Handler
	bus     events.EventBus
	closers []func() error
}

// Close releases the redis client and the ledger
func (r *realm) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			slog.Warn("failed to close dependency", "error", err)
		}
	}
	if r.bus != nil {
		r.bus.ClearAll()
	}
}

// newRealm connects the stores and wires orchestrators into a handler
func newRealm(ctx context.Context, cfg *config.Server, logger *slog.Logger) (_ *realm, err error) {
	r := &realm{}
	defer func() {
		if err != nil {
			r.Close()
		}
	}()

	tun, err := tuning.Load(cfg.TuningPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load tuning")
	}

	client, err := cfg.RedisClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}
	r.closers = append(r.closers, client.Close)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis unreachable")
	}

	committer, err := unitofwork.NewRedis(&unitofwork.Config{Client: client})
	if err != nil {
		return nil, err
	}

	characters, err := characterrepo.NewRedis(&characterrepo.RedisConfig{
		Client:    client,
		Committer: committer,
	})
	if err != nil {
		return nil, err
	}

	guilds, err := guildrepo.NewRedis(&guildrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}

	listings, err := market.NewRedis(&market.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}

	trades, err := ledger.NewSQLite(&ledger.SQLiteConfig{Path: cfg.LedgerPath})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open trade ledger")
	}
	r.closers = append(r.closers, trades.Close)

	r.bus = events.NewBus()
	rpgtoolkit.LogEvents(r.bus, logger, rpgtoolkit.GuildEventTypes...)

	clk := clock.New()

	characterService, err := characterorch.New(&characterorch.Config{
		CharacterRepo:  characters,
		Committer:      committer,
		Tuning:         tun,
		Clock:          clk,
		IDGenerator:    idgen.NewUUID(idgen.PrefixCharacter),
		CommitAttempts: cfg.CommitAttempts,
	})
	if err != nil {
		return nil, err
	}

	inventoryService, err := inventoryorch.New(&inventoryorch.Config{
		CharacterRepo:  characters,
		MarketRepo:     listings,
		Ledger:         trades,
		Committer:      committer,
		Tuning:         tun,
		Clock:          clk,
		IDGenerator:    idgen.NewPrefixed(idgen.PrefixListing).WithClock(clk.Now),
		CommitAttempts: cfg.CommitAttempts,
	})
	if err != nil {
		return nil, err
	}

	guildService, err := guildorch.New(&guildorch.Config{
		CharacterRepo:  characters,
		GuildRepo:      guilds,
		Committer:      committer,
		Tuning:         tun,
		Clock:          clk,
		IDGenerator:    idgen.NewUUID(idgen.PrefixGuild),
		Publisher:      rpgtoolkit.NewPublisher(r.bus),
		CommitAttempts: cfg.CommitAttempts,
	})
	if err != nil {
		return nil, err
	}

	pvpService, err := pvporch.New(&pvporch.Config{
		CharacterRepo:  characters,
		Committer:      committer,
		Tuning:         tun,
		Clock:          clk,
		Roller:         dice.DefaultRoller,
		CommitAttempts: cfg.CommitAttempts,
	})
	if err != nil {
		return nil, err
	}

	r.handler, err = realmv1alpha1.NewHandler(&realmv1alpha1.HandlerConfig{
		CharacterService: characterService,
		InventoryService: inventoryService,
		GuildService:     guildService,
		PvPService:       pvpService,
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}
