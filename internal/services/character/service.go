// Package character defines the interface for character operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/realm-api/internal/services/character Service

import (
	"context"

	"github.com/KirkDiggler/realm-api/internal/entities"
)

// Service defines the interface for character operations
type Service interface {
	// Lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// ChooseClass sets the class once. Guilds and PvP require a class.
	ChooseClass(ctx context.Context, input *ChooseClassInput) (*ChooseClassOutput, error)

	// AllocatePoints spends unallocated attribute points and recomputes stats
	AllocatePoints(ctx context.Context, input *AllocatePointsInput) (*AllocatePointsOutput, error)

	// GrantExperience adds experience, leveling up as thresholds are met
	GrantExperience(ctx context.Context, input *GrantExperienceInput) (*GrantExperienceOutput, error)
}

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	Name         string
	ProfileImage string
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *entities.Character
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for getting a character
type GetCharacterOutput struct {
	Character *entities.Character
}

// ChooseClassInput defines the request for choosing a class
type ChooseClassInput struct {
	CharacterID string
	Class       entities.CharacterClass
}

// ChooseClassOutput defines the response for choosing a class
type ChooseClassOutput struct {
	Character *entities.Character
}

// AllocatePointsInput defines the request for spending attribute points.
// Points holds the amount added to each attribute.
type AllocatePointsInput struct {
	CharacterID string
	Points      entities.Attributes
}

// AllocatePointsOutput defines the response for spending attribute points
type AllocatePointsOutput struct {
	Character *entities.Character
}

// GrantExperienceInput defines the request for granting experience
type GrantExperienceInput struct {
	CharacterID string
	Amount      int
}

// GrantExperienceOutput defines the response for granting experience
type GrantExperienceOutput struct {
	Character    *entities.Character
	LevelsGained int
}
