// Package pvp defines the interface for arena operations
package pvp

//go:generate mockgen -destination=mock/mock_service.go -package=pvpmock github.com/KirkDiggler/realm-api/internal/services/pvp Service

import (
	"context"

	"github.com/KirkDiggler/realm-api/internal/entities"
)

// Service defines the interface for arena operations
type Service interface {
	// FindOpponents offers a random handful of opponents
	FindOpponents(ctx context.Context, input *FindOpponentsInput) (*FindOpponentsOutput, error)

	// RecordBattle updates both fighters' records
	RecordBattle(ctx context.Context, input *RecordBattleInput) (*RecordBattleOutput, error)
}

// FindOpponentsInput defines the request for finding opponents
type FindOpponentsInput struct {
	CharacterID string
}

// FindOpponentsOutput carries the requester's own record next to the offers
type FindOpponentsOutput struct {
	Self      entities.OpponentSummary
	Record    entities.PvPStats
	Opponents []entities.OpponentSummary
}

// RecordBattleInput defines the request for recording a fight
type RecordBattleInput struct {
	AttackerID  string
	DefenderID  string
	AttackerWon bool
}

// RecordBattleOutput defines the response for recording a fight
type RecordBattleOutput struct {
	Attacker entities.PvPStats
	Defender entities.PvPStats
}
