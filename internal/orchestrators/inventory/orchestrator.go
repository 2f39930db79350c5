// Package inventory implements the inventory orchestrator: equipment, vendor
// sales and the player market
package inventory

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/realm-api/internal/engine/custody"
	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/pkg/clock"
	"github.com/KirkDiggler/realm-api/internal/pkg/idgen"
	"github.com/KirkDiggler/realm-api/internal/pkg/retry"
	characterrepo "github.com/KirkDiggler/realm-api/internal/repositories/character"
	"github.com/KirkDiggler/realm-api/internal/repositories/ledger"
	marketrepo "github.com/KirkDiggler/realm-api/internal/repositories/market"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
	"github.com/KirkDiggler/realm-api/internal/services/inventory"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

// Config holds the dependencies for the inventory orchestrator
type Config struct {
	CharacterRepo  characterrepo.Repository
	MarketRepo     marketrepo.Repository
	Ledger         ledger.Repository
	Committer      unitofwork.Committer
	Tuning         *tuning.Tuning
	Clock          clock.Clock
	IDGenerator    idgen.Generator
	CommitAttempts int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.MarketRepo == nil {
		vb.RequiredField("MarketRepo")
	}
	if c.Ledger == nil {
		vb.RequiredField("Ledger")
	}
	if c.Committer == nil {
		vb.RequiredField("Committer")
	}
	if c.Tuning == nil {
		vb.RequiredField("Tuning")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the inventory.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	marketRepo    marketrepo.Repository
	ledger        ledger.Repository
	committer     unitofwork.Committer
	catalog       tuning.Catalog
	rules         custody.ListingRules
	clock         clock.Clock
	idGenerator   idgen.Generator
	attempts      int
}

// New creates a new inventory orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		marketRepo:    cfg.MarketRepo,
		ledger:        cfg.Ledger,
		committer:     cfg.Committer,
		catalog:       cfg.Tuning.Catalog(),
		rules: custody.ListingRules{
			TTL:      cfg.Tuning.Market.ListingTTL,
			MaxPrice: cfg.Tuning.Market.MaxPrice,
		},
		clock:       cfg.Clock,
		idGenerator: cfg.IDGenerator,
		attempts:    cfg.CommitAttempts,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ inventory.Service = (*Orchestrator)(nil)

// GetInventory returns the items and currencies a character holds
func (o *Orchestrator) GetInventory(
	ctx context.Context,
	input *inventory.GetInventoryInput,
) (*inventory.GetInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character")
	}

	c := out.Character
	return &inventory.GetInventoryOutput{
		Inventory: c.Inventory,
		Equipped:  c.Equipped,
		Gold:      c.Gold,
		Diamonds:  c.Diamonds,
	}, nil
}

// Equip moves one unit of an item into an equipment slot
func (o *Orchestrator) Equip(ctx context.Context, input *inventory.EquipInput) (*inventory.EquipOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("templateID", input.TemplateID, vb)
	errors.ValidateRequired("slot", string(input.Slot), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	updated, err := o.mutate(ctx, input.CharacterID, func(c *entities.Character) error {
		equipped, inv, err := custody.Equip(c.Equipped, c.Inventory, input.TemplateID, input.Slot, o.catalog)
		if err != nil {
			return err
		}
		c.Equipped, c.Inventory = equipped, inv
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to equip %s", input.TemplateID)
	}

	return &inventory.EquipOutput{Character: updated}, nil
}

// Unequip returns the item in a slot to the inventory
func (o *Orchestrator) Unequip(ctx context.Context, input *inventory.UnequipInput) (*inventory.UnequipOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("slot", string(input.Slot), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	updated, err := o.mutate(ctx, input.CharacterID, func(c *entities.Character) error {
		equipped, inv, err := custody.Unequip(c.Equipped, c.Inventory, input.Slot)
		if err != nil {
			return err
		}
		c.Equipped, c.Inventory = equipped, inv
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unequip %s", input.Slot)
	}

	return &inventory.UnequipOutput{Character: updated}, nil
}

// SellToVendor sells inventory items for gold and records the sale
func (o *Orchestrator) SellToVendor(
	ctx context.Context,
	input *inventory.SellToVendorInput,
) (*inventory.SellToVendorOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var (
		result *entities.Character
		sale   *custody.Sale
	)
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
		if err != nil {
			return err
		}
		before := out.Character

		sale, err = custody.SellToVendor(before.Inventory, input.Items, o.catalog)
		if err != nil {
			return err
		}
		if len(sale.Lines) == 0 {
			result = before
			return nil
		}

		after := before.Clone()
		after.Inventory = sale.Inventory
		after.Gold += sale.Gold
		after.UpdatedAt = o.clock.Now().Unix()

		w, err := o.characterRepo.Put(before, after)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(w)); err != nil {
			return err
		}
		result = after
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sell to vendor")
	}

	if len(sale.Lines) > 0 {
		entries := make([]ledger.Entry, 0, len(sale.Lines))
		for _, line := range sale.Lines {
			entries = append(entries, ledger.Entry{
				Kind:        ledger.KindVendorSale,
				CharacterID: result.ID,
				TemplateID:  line.TemplateID,
				Amount:      line.Amount,
				Currency:    entities.CurrencyGold,
				Value:       line.Gold,
				CreatedAt:   o.clock.Now(),
			})
		}
		o.record(ctx, entries)
	}

	return &inventory.SellToVendorOutput{
		Character:  result,
		GoldGained: sale.Gold,
		Lines:      sale.Lines,
	}, nil
}

// CreateListing moves items from the inventory into market escrow
func (o *Orchestrator) CreateListing(
	ctx context.Context,
	input *inventory.CreateListingInput,
) (*inventory.CreateListingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	listingID := o.idGenerator.Generate()
	var (
		seller  *entities.Character
		listing *entities.MarketListing
	)
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
		if err != nil {
			return err
		}
		before := out.Character

		now := o.clock.Now()
		inv, l, err := custody.CreateListing(before.Inventory, custody.Offer{
			ListingID:  listingID,
			SellerID:   before.ID,
			SellerName: before.Name,
			TemplateID: input.TemplateID,
			Amount:     input.Amount,
			Currency:   input.Currency,
			Price:      input.Price,
		}, o.rules, now)
		if err != nil {
			return err
		}

		after := before.Clone()
		after.Inventory = inv
		after.UpdatedAt = now.Unix()

		charWrite, err := o.characterRepo.Put(before, after)
		if err != nil {
			return err
		}
		listingWrite, err := o.marketRepo.Put(nil, l)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(charWrite, listingWrite)); err != nil {
			return err
		}

		seller, listing = after, l
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create listing")
	}

	slog.InfoContext(ctx, "listing created",
		"listing_id", listing.ID,
		"seller_id", seller.ID,
		"template_id", listing.Item.TemplateID,
		"amount", listing.Item.Amount,
		"currency", string(listing.CurrencyType),
		"price", listing.Cost())

	return &inventory.CreateListingOutput{
		Listing:   listing,
		Character: seller,
	}, nil
}

// RemoveListing returns an unsold listing's item to the seller
func (o *Orchestrator) RemoveListing(
	ctx context.Context,
	input *inventory.RemoveListingInput,
) (*inventory.RemoveListingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("listingID", input.ListingID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var owner *entities.Character
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		lout, err := o.marketRepo.Get(ctx, marketrepo.GetInput{ID: input.ListingID})
		if err != nil {
			return err
		}
		cout, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
		if err != nil {
			return err
		}
		before := cout.Character

		inv, err := custody.RemoveListing(before.ID, before.Inventory, lout.Listing)
		if err != nil {
			return err
		}

		after := before.Clone()
		after.Inventory = inv
		after.UpdatedAt = o.clock.Now().Unix()

		charWrite, err := o.characterRepo.Put(before, after)
		if err != nil {
			return err
		}
		cs := unitofwork.NewChangeset(charWrite, o.marketRepo.Delete(lout.Listing))
		if err := o.committer.Commit(ctx, cs); err != nil {
			return err
		}

		owner = after
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to remove listing %s", input.ListingID)
	}

	return &inventory.RemoveListingOutput{Character: owner}, nil
}

// PurchaseListing buys a listing: the buyer pays the seller and receives
// the escrowed item in one commit
func (o *Orchestrator) PurchaseListing(
	ctx context.Context,
	input *inventory.PurchaseListingInput,
) (*inventory.PurchaseListingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("buyerID", input.BuyerID, vb)
	errors.ValidateRequired("listingID", input.ListingID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var trade *custody.Trade
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		lout, err := o.marketRepo.Get(ctx, marketrepo.GetInput{ID: input.ListingID})
		if err != nil {
			return err
		}
		listing := lout.Listing

		if listing.SellerID == input.BuyerID {
			return errors.FailedPrecondition("cannot buy your own listing").
				WithReason(custody.ReasonSelfPurchase)
		}

		parties, err := o.characterRepo.GetMany(ctx, characterrepo.GetManyInput{
			IDs: []string{input.BuyerID, listing.SellerID},
		})
		if err != nil {
			return err
		}
		buyer, seller := pick(parties.Characters, input.BuyerID), pick(parties.Characters, listing.SellerID)
		if buyer == nil {
			return errors.NotFoundf("character %s not found", input.BuyerID)
		}
		if seller == nil {
			return errors.NotFoundf("seller %s not found", listing.SellerID)
		}

		now := o.clock.Now()
		t, err := custody.Purchase(buyer, seller, listing, now)
		if err != nil {
			return err
		}
		t.Buyer.UpdatedAt = now.Unix()
		t.Seller.UpdatedAt = now.Unix()

		buyerWrite, err := o.characterRepo.Put(buyer, t.Buyer)
		if err != nil {
			return err
		}
		sellerWrite, err := o.characterRepo.Put(seller, t.Seller)
		if err != nil {
			return err
		}
		listingWrite, err := o.marketRepo.Put(listing, t.Listing)
		if err != nil {
			return err
		}
		cs := unitofwork.NewChangeset(buyerWrite, sellerWrite, listingWrite)
		if err := o.committer.Commit(ctx, cs); err != nil {
			return err
		}

		trade = t
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to purchase listing %s", input.ListingID)
	}

	sold := trade.Listing
	o.record(ctx, []ledger.Entry{{
		Kind:           ledger.KindMarketPurchase,
		CharacterID:    sold.BuyerID,
		CounterpartyID: sold.SellerID,
		ListingID:      sold.ID,
		TemplateID:     sold.Item.TemplateID,
		Amount:         sold.Item.Amount,
		Currency:       sold.CurrencyType,
		Value:          sold.Cost(),
		CreatedAt:      o.clock.Now(),
	}})

	slog.InfoContext(ctx, "listing sold",
		"listing_id", sold.ID,
		"buyer_id", sold.BuyerID,
		"seller_id", sold.SellerID)

	return &inventory.PurchaseListingOutput{
		Buyer:   trade.Buyer,
		Listing: sold,
	}, nil
}

// ListListings browses open listings. Expired listings are hidden from
// the public market but still shown to their seller, who can withdraw them.
func (o *Orchestrator) ListListings(
	ctx context.Context,
	input *inventory.ListListingsInput,
) (*inventory.ListListingsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.marketRepo.ListOpen(ctx, marketrepo.ListOpenInput{
		Currency: input.Currency,
		SellerID: input.SellerID,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list listings")
	}

	if input.SellerID != "" {
		return &inventory.ListListingsOutput{Listings: out.Listings}, nil
	}

	now := o.clock.Now().Unix()
	live := make([]*entities.MarketListing, 0, len(out.Listings))
	for _, l := range out.Listings {
		if !l.Expired(now) {
			live = append(live, l)
		}
	}

	return &inventory.ListListingsOutput{Listings: live}, nil
}

// ListTrades reads a character's trade history
func (o *Orchestrator) ListTrades(
	ctx context.Context,
	input *inventory.ListTradesInput,
) (*inventory.ListTradesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.ledger.ListByCharacter(ctx, ledger.ListByCharacterInput{
		CharacterID: input.CharacterID,
		Limit:       input.Limit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list trades")
	}

	return &inventory.ListTradesOutput{Entries: out.Entries}, nil
}

func (o *Orchestrator) mutate(
	ctx context.Context,
	characterID string,
	change func(c *entities.Character) error,
) (*entities.Character, error) {
	var result *entities.Character
	err := retry.OnConflict(ctx, o.attempts, func(ctx context.Context) error {
		out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: characterID})
		if err != nil {
			return err
		}

		before := out.Character
		after := before.Clone()
		if err := change(after); err != nil {
			return err
		}
		after.UpdatedAt = o.clock.Now().Unix()

		w, err := o.characterRepo.Put(before, after)
		if err != nil {
			return err
		}
		if err := o.committer.Commit(ctx, unitofwork.NewChangeset(w)); err != nil {
			return err
		}

		result = after
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// record appends to the trade ledger. The game state is already committed
// by the time this runs, so a failure is logged rather than returned.
func (o *Orchestrator) record(ctx context.Context, entries []ledger.Entry) {
	if err := o.ledger.Record(ctx, ledger.RecordInput{Entries: entries}); err != nil {
		slog.WarnContext(ctx, "failed to record trades",
			"entries", len(entries),
			"error", err.Error())
	}
}

func pick(characters []*entities.Character, id string) *entities.Character {
	for _, c := range characters {
		if c.ID == id {
			return c
		}
	}
	return nil
}
