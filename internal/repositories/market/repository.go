// Package market provides the interface for market listing persistence
package market

import (
	"context"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
)

// Repository defines the interface for listing persistence
type Repository interface {
	// Get retrieves a listing by ID
	// Returns errors.NotFound if the listing doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListOpen retrieves unsold listings, newest first, optionally filtered
	// by currency or seller
	ListOpen(ctx context.Context, input ListOpenInput) (*ListOpenOutput, error)

	// Put stages a create (before == nil) or update. It bumps after.Version.
	Put(before, after *entities.MarketListing) (unitofwork.Write, error)

	// Delete stages removal of a listing
	Delete(l *entities.MarketListing) unitofwork.Write
}

// GetInput defines the input for getting a listing
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a listing
type GetOutput struct {
	Listing *entities.MarketListing
}

// ListOpenInput filters open listings. Empty fields do not filter.
type ListOpenInput struct {
	Currency entities.Currency
	SellerID string
	Limit    int
}

// ListOpenOutput defines the output for listing open listings
type ListOpenOutput struct {
	Listings []*entities.MarketListing
}
