// Package character provides the interface for character persistence
package character

import (
	"context"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Get retrieves a character by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if character doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetMany retrieves several characters, skipping ids that no longer exist
	GetMany(ctx context.Context, input GetManyInput) (*GetManyOutput, error)

	// ListByClass retrieves every character that chose one of the classes.
	// An empty class list means every class.
	ListByClass(ctx context.Context, input ListByClassInput) (*ListByClassOutput, error)

	// ListByGuild retrieves a guild's members in join order
	ListByGuild(ctx context.Context, input ListByGuildInput) (*ListByGuildOutput, error)

	// CountByGuild returns how many members a guild has
	CountByGuild(ctx context.Context, input CountByGuildInput) (*CountByGuildOutput, error)

	// Put stages a create (before == nil) or an update of a character for a
	// unit of work commit. It bumps after.Version.
	Put(before, after *entities.Character) (unitofwork.Write, error)

	// Create stores a new character
	// Returns errors.AlreadyExists if character with same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// GetManyInput defines the input for getting several characters
type GetManyInput struct {
	IDs []string
}

// GetManyOutput keeps the order of the requested ids
type GetManyOutput struct {
	Characters []*entities.Character
}

// ListByClassInput defines the input for listing by class
type ListByClassInput struct {
	Classes []entities.CharacterClass
}

// ListByClassOutput defines the output for listing by class
type ListByClassOutput struct {
	Characters []*entities.Character
}

// ListByGuildInput defines the input for listing guild members
type ListByGuildInput struct {
	GuildID string
}

// ListByGuildOutput holds members oldest first
type ListByGuildOutput struct {
	Characters []*entities.Character
}

// CountByGuildInput defines the input for counting guild members
type CountByGuildInput struct {
	GuildID string
}

// CountByGuildOutput defines the output for counting guild members
type CountByGuildOutput struct {
	Count int
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *entities.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character
}
