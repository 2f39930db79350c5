// Package guild provides the interface for guild persistence
package guild

import (
	"context"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
)

// Repository defines the interface for guild persistence. Guild names are
// unique and case sensitive.
type Repository interface {
	// Get retrieves a guild by ID
	// Returns errors.NotFound if the guild doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByName retrieves a guild by its exact name
	// Returns errors.NotFound if no guild has the name
	GetByName(ctx context.Context, input GetByNameInput) (*GetOutput, error)

	// NameTaken reports whether a guild already uses name
	NameTaken(ctx context.Context, name string) (bool, error)

	// Create stages a new guild together with its name reservation
	Create(g *entities.Guild) ([]unitofwork.Write, error)

	// Put stages an update. It bumps after.Version.
	Put(before, after *entities.Guild) (unitofwork.Write, error)

	// Disband stages removal of the guild, its name and its roster
	Disband(g *entities.Guild) []unitofwork.Write
}

// GetInput defines the input for getting a guild
type GetInput struct {
	ID string
}

// GetByNameInput defines the input for getting a guild by name
type GetByNameInput struct {
	Name string
}

// GetOutput defines the output for getting a guild
type GetOutput struct {
	Guild *entities.Guild
}
