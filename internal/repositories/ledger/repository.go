// Package ledger records completed trades: vendor sales and market purchases.
// It is append only; entries are never updated.
package ledger

//go:generate mockgen -destination=mock/mock_repository.go -package=ledgermock github.com/KirkDiggler/realm-api/internal/repositories/ledger Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/realm-api/internal/entities"
)

// Kind classifies a trade
type Kind string

// Trade kinds
const (
	KindVendorSale     Kind = "vendor_sale"
	KindMarketPurchase Kind = "market_purchase"
)

// Entry is one recorded trade line. For purchases CharacterID is the buyer
// and CounterpartyID the seller.
type Entry struct {
	ID             int64             `json:"id"`
	Kind           Kind              `json:"kind"`
	CharacterID    string            `json:"character_id"`
	CounterpartyID string            `json:"counterparty_id,omitempty"`
	ListingID      string            `json:"listing_id,omitempty"`
	TemplateID     string            `json:"template_id"`
	Amount         int               `json:"amount"`
	Currency       entities.Currency `json:"currency"`
	Value          int64             `json:"value"`
	CreatedAt      time.Time         `json:"created_at"`
}

// Repository defines the interface for the trade ledger
type Repository interface {
	// Record appends entries in one transaction
	// Returns errors.InvalidArgument for malformed entries
	Record(ctx context.Context, input RecordInput) error

	// ListByCharacter returns trades where the character was either side,
	// newest first
	ListByCharacter(ctx context.Context, input ListByCharacterInput) (*ListByCharacterOutput, error)

	// Close releases the underlying database
	Close() error
}

// RecordInput defines the input for recording trades
type RecordInput struct {
	Entries []Entry
}

// ListByCharacterInput defines the input for listing a character's trades
type ListByCharacterInput struct {
	CharacterID string
	Limit       int
}

// ListByCharacterOutput defines the output for listing a character's trades
type ListByCharacterOutput struct {
	Entries []Entry
}
