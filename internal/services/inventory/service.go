// Package inventory defines the interface for item custody and market operations
package inventory

//go:generate mockgen -destination=mock/mock_service.go -package=inventorymock github.com/KirkDiggler/realm-api/internal/services/inventory Service

import (
	"context"

	"github.com/KirkDiggler/realm-api/internal/engine/custody"
	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/repositories/ledger"
)

// Service defines the interface for inventory, equipment and market operations
type Service interface {
	GetInventory(ctx context.Context, input *GetInventoryInput) (*GetInventoryOutput, error)

	// Equipment
	Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error)
	Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error)

	// SellToVendor turns inventory items into gold
	SellToVendor(ctx context.Context, input *SellToVendorInput) (*SellToVendorOutput, error)

	// Market
	CreateListing(ctx context.Context, input *CreateListingInput) (*CreateListingOutput, error)
	RemoveListing(ctx context.Context, input *RemoveListingInput) (*RemoveListingOutput, error)
	PurchaseListing(ctx context.Context, input *PurchaseListingInput) (*PurchaseListingOutput, error)
	ListListings(ctx context.Context, input *ListListingsInput) (*ListListingsOutput, error)

	// ListTrades reads the trade ledger for one character
	ListTrades(ctx context.Context, input *ListTradesInput) (*ListTradesOutput, error)
}

// GetInventoryInput defines the request for reading a character's items
type GetInventoryInput struct {
	CharacterID string
}

// GetInventoryOutput defines the response for reading a character's items
type GetInventoryOutput struct {
	Inventory []entities.ItemStack
	Equipped  map[entities.EquipmentSlot]*entities.ItemStack
	Gold      int64
	Diamonds  int64
}

// EquipInput defines the request for equipping an item
type EquipInput struct {
	CharacterID string
	TemplateID  string
	Slot        entities.EquipmentSlot
}

// EquipOutput defines the response for equipping an item
type EquipOutput struct {
	Character *entities.Character
}

// UnequipInput defines the request for unequipping a slot
type UnequipInput struct {
	CharacterID string
	Slot        entities.EquipmentSlot
}

// UnequipOutput defines the response for unequipping a slot
type UnequipOutput struct {
	Character *entities.Character
}

// SellToVendorInput defines the request for a vendor sale
type SellToVendorInput struct {
	CharacterID string
	Items       []custody.SaleRequest
}

// SellToVendorOutput defines the response for a vendor sale
type SellToVendorOutput struct {
	Character  *entities.Character
	GoldGained int64
	Lines      []custody.SaleLine
}

// CreateListingInput defines the request for listing an item
type CreateListingInput struct {
	CharacterID string
	TemplateID  string
	Amount      int
	Currency    entities.Currency
	Price       int64
}

// CreateListingOutput defines the response for listing an item
type CreateListingOutput struct {
	Listing   *entities.MarketListing
	Character *entities.Character
}

// RemoveListingInput defines the request for withdrawing a listing
type RemoveListingInput struct {
	CharacterID string
	ListingID   string
}

// RemoveListingOutput defines the response for withdrawing a listing
type RemoveListingOutput struct {
	Character *entities.Character
}

// PurchaseListingInput defines the request for buying a listing
type PurchaseListingInput struct {
	BuyerID   string
	ListingID string
}

// PurchaseListingOutput defines the response for buying a listing
type PurchaseListingOutput struct {
	Buyer   *entities.Character
	Listing *entities.MarketListing
}

// ListListingsInput filters open listings
type ListListingsInput struct {
	Currency entities.Currency
	SellerID string
	Limit    int
}

// ListListingsOutput defines the response for listing open listings
type ListListingsOutput struct {
	Listings []*entities.MarketListing
}

// ListTradesInput defines the request for reading trade history
type ListTradesInput struct {
	CharacterID string
	Limit       int
}

// ListTradesOutput defines the response for reading trade history
type ListTradesOutput struct {
	Entries []ledger.Entry
}
