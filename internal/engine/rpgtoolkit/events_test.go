package rpgtoolkit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/realm-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/realm-api/internal/entities"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := events.NewBus()
	publisher := rpgtoolkit.NewPublisher(bus)

	var got []events.Event
	bus.SubscribeFunc(rpgtoolkit.EventGuildLeveledUp, 0, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})

	guild := rpgtoolkit.WrapGuild(&entities.Guild{ID: "gld_1"})
	member := rpgtoolkit.WrapCharacter(&entities.Character{ID: "chr_1"})
	publisher.Publish(context.Background(), rpgtoolkit.EventGuildLeveledUp, member, guild, map[string]any{"level": 3})

	require.Len(t, got, 1)
	assert.Equal(t, rpgtoolkit.EventGuildLeveledUp, got[0].Type())
	assert.Equal(t, "chr_1", got[0].Source().GetID())
	assert.Equal(t, "gld_1", got[0].Target().GetID())
}

func TestPublishSwallowsHandlerErrors(t *testing.T) {
	bus := events.NewBus()
	publisher := rpgtoolkit.NewPublisher(bus)

	bus.SubscribeFunc(rpgtoolkit.EventGuildDisbanded, 0, func(context.Context, events.Event) error {
		return errors.New("handler exploded")
	})

	guild := rpgtoolkit.WrapGuild(&entities.Guild{ID: "gld_1"})
	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), rpgtoolkit.EventGuildDisbanded, guild, nil, nil)
	})
}

func TestLogEvents(t *testing.T) {
	bus := events.NewBus()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ids := rpgtoolkit.LogEvents(bus, logger, rpgtoolkit.GuildEventTypes...)
	assert.Len(t, ids, len(rpgtoolkit.GuildEventTypes))

	guild := rpgtoolkit.WrapGuild(&entities.Guild{ID: "gld_7"})
	rpgtoolkit.NewPublisher(bus).Publish(context.Background(), rpgtoolkit.EventGuildLeaderChanged, guild, nil, nil)

	assert.Contains(t, buf.String(), `"event_type":"guild.leader_changed"`)
	assert.Contains(t, buf.String(), `"source_id":"gld_7"`)
}
