package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/services/pvp"
)

// FindOpponents offers arena opponents to the character
func (h *Handler) FindOpponents(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body characterRef
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.pvpService.FindOpponents(ctx, &pvp.FindOpponentsInput{
		CharacterID: body.CharacterID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	opponents := out.Opponents
	if opponents == nil {
		opponents = []entities.OpponentSummary{}
	}
	return respond(map[string]any{
		"self":      out.Self,
		"record":    out.Record,
		"opponents": opponents,
	})
}

// RecordBattle stores the outcome of a fight
func (h *Handler) RecordBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		AttackerID  string `json:"attacker_id"`
		DefenderID  string `json:"defender_id"`
		AttackerWon bool   `json:"attacker_won"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.pvpService.RecordBattle(ctx, &pvp.RecordBattleInput{
		AttackerID:  body.AttackerID,
		DefenderID:  body.DefenderID,
		AttackerWon: body.AttackerWon,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"attacker": out.Attacker,
		"defender": out.Defender,
	})
}
