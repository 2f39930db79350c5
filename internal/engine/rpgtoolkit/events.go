// Package rpgtoolkit connects realm entities to the rpg-toolkit event bus
package rpgtoolkit

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Guild lifecycle event types
const (
	EventGuildLeveledUp     = "guild.leveled_up"
	EventGuildLeaderChanged = "guild.leader_changed"
	EventGuildDisbanded     = "guild.disbanded"
)

// GuildEventTypes lists every guild event type
var GuildEventTypes = []string{
	EventGuildLeveledUp,
	EventGuildLeaderChanged,
	EventGuildDisbanded,
}

// Publisher publishes game events after their state change has committed.
// Delivery is best effort: the state is already stored, so a failing
// handler is logged and never surfaces to the caller.
type Publisher struct {
	bus events.EventBus
}

// NewPublisher creates a publisher on bus
func NewPublisher(bus events.EventBus) *Publisher {
	return &Publisher{bus: bus}
}

// Publish sends one event with data attached to its context
func (p *Publisher) Publish(
	ctx context.Context,
	eventType string,
	source, target core.Entity,
	data map[string]any,
) {
	event := events.NewGameEvent(eventType, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := p.bus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "event handler failed",
			"event_type", eventType,
			"source_id", entityID(source),
			"error", err.Error())
	}
}

// LogEvents subscribes a handler that logs every event of the given types.
// It returns the subscription ids.
func LogEvents(bus events.EventBus, logger *slog.Logger, eventTypes ...string) []string {
	ids := make([]string, 0, len(eventTypes))
	for _, eventType := range eventTypes {
		ids = append(ids, bus.SubscribeFunc(eventType, 0, func(ctx context.Context, e events.Event) error {
			logger.InfoContext(ctx, "game event",
				"event_type", e.Type(),
				"source_id", entityID(e.Source()),
				"target_id", entityID(e.Target()))
			return nil
		}))
	}
	return ids
}

func entityID(e core.Entity) string {
	if e == nil {
		return ""
	}
	return e.GetID()
}
