package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/realm-api/internal/engine/custody"
	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/repositories/ledger"
	"github.com/KirkDiggler/realm-api/internal/services/inventory"
)

// GetInventory returns a character's bag, equipment and wallet
func (h *Handler) GetInventory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body characterRef
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.inventoryService.GetInventory(ctx, &inventory.GetInventoryInput{
		CharacterID: body.CharacterID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"inventory": nonNilStacks(out.Inventory),
		"equipped":  out.Equipped,
		"gold":      out.Gold,
		"diamonds":  out.Diamonds,
	})
}

// Equip moves one item from the bag into a slot
func (h *Handler) Equip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string `json:"character_id"`
		TemplateID  string `json:"template_id"`
		Slot        string `json:"slot"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.inventoryService.Equip(ctx, &inventory.EquipInput{
		CharacterID: body.CharacterID,
		TemplateID:  body.TemplateID,
		Slot:        entities.EquipmentSlot(body.Slot),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"character": out.Character})
}

// Unequip returns a slot's item to the bag
func (h *Handler) Unequip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string `json:"character_id"`
		Slot        string `json:"slot"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.inventoryService.Unequip(ctx, &inventory.UnequipInput{
		CharacterID: body.CharacterID,
		Slot:        entities.EquipmentSlot(body.Slot),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"character": out.Character})
}

// SellToVendor converts bag items into gold
func (h *Handler) SellToVendor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string                `json:"character_id"`
		Items       []custody.SaleRequest `json:"items"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.inventoryService.SellToVendor(ctx, &inventory.SellToVendorInput{
		CharacterID: body.CharacterID,
		Items:       body.Items,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	lines := out.Lines
	if lines == nil {
		lines = []custody.SaleLine{}
	}
	return respond(map[string]any{
		"character":   out.Character,
		"gold_gained": out.GoldGained,
		"lines":       lines,
	})
}

// CreateListing escrows items in a new market listing
func (h *Handler) CreateListing(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string `json:"character_id"`
		TemplateID  string `json:"template_id"`
		Amount      int    `json:"amount"`
		Currency    string `json:"currency"`
		Price       int64  `json:"price"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.inventoryService.CreateListing(ctx, &inventory.CreateListingInput{
		CharacterID: body.CharacterID,
		TemplateID:  body.TemplateID,
		Amount:      body.Amount,
		Currency:    entities.Currency(body.Currency),
		Price:       body.Price,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"listing":   out.Listing,
		"character": out.Character,
	})
}

// RemoveListing returns an unsold listing's escrow to its seller
func (h *Handler) RemoveListing(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string `json:"character_id"`
		ListingID   string `json:"listing_id"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.inventoryService.RemoveListing(ctx, &inventory.RemoveListingInput{
		CharacterID: body.CharacterID,
		ListingID:   body.ListingID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"character": out.Character})
}

// PurchaseListing buys a listing for the buyer
func (h *Handler) PurchaseListing(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		BuyerID   string `json:"buyer_id"`
		ListingID string `json:"listing_id"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.inventoryService.PurchaseListing(ctx, &inventory.PurchaseListingInput{
		BuyerID:   body.BuyerID,
		ListingID: body.ListingID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"buyer":   out.Buyer,
		"listing": out.Listing,
	})
}

// ListListings browses open listings
func (h *Handler) ListListings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		Currency string `json:"currency"`
		SellerID string `json:"seller_id"`
		Limit    int    `json:"limit"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.inventoryService.ListListings(ctx, &inventory.ListListingsInput{
		Currency: entities.Currency(body.Currency),
		SellerID: body.SellerID,
		Limit:    body.Limit,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	listings := out.Listings
	if listings == nil {
		listings = []*entities.MarketListing{}
	}
	return respond(map[string]any{"listings": listings})
}

// ListTrades returns a character's trade history
func (h *Handler) ListTrades(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string `json:"character_id"`
		Limit       int    `json:"limit"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.inventoryService.ListTrades(ctx, &inventory.ListTradesInput{
		CharacterID: body.CharacterID,
		Limit:       body.Limit,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	trades := out.Entries
	if trades == nil {
		trades = []ledger.Entry{}
	}
	return respond(map[string]any{"trades": trades})
}

func nonNilStacks(stacks []entities.ItemStack) []entities.ItemStack {
	if stacks == nil {
		return []entities.ItemStack{}
	}
	return stacks
}
