// Package custody moves item stacks between the three places a character's
// items can be: the inventory, an equipment slot, or market escrow.
//
// Every function works on copies of its inputs. For one owner the total
// quantity of each template across the three locations is the same before
// and after every move, except for vendor sales (items become gold) and
// purchases (items move from the seller's escrow to the buyer).
package custody

import (
	"maps"
	"time"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
)

// Named failure reasons, read back with errors.GetReason
const (
	ReasonNotEquipped          = "NOT_EQUIPPED"
	ReasonNotInInventory       = "NOT_IN_INVENTORY"
	ReasonInsufficientQuantity = "INSUFFICIENT_QUANTITY"
	ReasonSlotOccupied         = "SLOT_OCCUPIED"
	ReasonWrongSlot            = "WRONG_SLOT"
	ReasonNotEquippable        = "NOT_EQUIPPABLE"
	ReasonUnknownTemplate      = "UNKNOWN_TEMPLATE"
	ReasonNotOwner             = "NOT_OWNER"
	ReasonAlreadySold          = "ALREADY_SOLD"
	ReasonListingExpired       = "LISTING_EXPIRED"
	ReasonSelfPurchase         = "SELF_PURCHASE"
	ReasonInsufficientFunds    = "INSUFFICIENT_FUNDS"
	ReasonInvalidPrice         = "INVALID_PRICE"
)

// Catalog resolves item templates
type Catalog interface {
	Template(id string) (entities.ItemTemplate, bool)
}

// Unequip empties slot and returns one unit of the item to the inventory,
// merging into the first stack of the same template when there is one.
func Unequip(
	equipped map[entities.EquipmentSlot]*entities.ItemStack,
	inventory []entities.ItemStack,
	slot entities.EquipmentSlot,
) (map[entities.EquipmentSlot]*entities.ItemStack, []entities.ItemStack, error) {
	item, ok := equipped[slot]
	if !ok || item == nil {
		return nil, nil, errors.FailedPreconditionf("nothing equipped in %s", slot).
			WithReason(ReasonNotEquipped).
			WithMeta("slot", string(slot))
	}

	outEquipped := entities.CloneEquipment(equipped)
	delete(outEquipped, slot)

	outInventory := entities.CloneStacks(inventory)
	if i := indexOf(outInventory, item.TemplateID); i >= 0 {
		outInventory[i].Amount++
	} else {
		returned := item.Clone()
		returned.Amount = 1
		outInventory = append(outInventory, returned)
	}

	return outEquipped, outInventory, nil
}

// Equip moves one unit of templateID from the inventory into slot. It is
// the inverse of Unequip.
func Equip(
	equipped map[entities.EquipmentSlot]*entities.ItemStack,
	inventory []entities.ItemStack,
	templateID string,
	slot entities.EquipmentSlot,
	catalog Catalog,
) (map[entities.EquipmentSlot]*entities.ItemStack, []entities.ItemStack, error) {
	if !slot.IsValid() {
		return nil, nil, errors.InvalidArgumentf("unknown slot %q", slot)
	}

	tmpl, ok := catalog.Template(templateID)
	if !ok {
		return nil, nil, errors.NotFoundf("item template %s not found", templateID).
			WithReason(ReasonUnknownTemplate)
	}
	if !tmpl.Equippable() {
		return nil, nil, errors.FailedPreconditionf("%s cannot be equipped", tmpl.Name).
			WithReason(ReasonNotEquippable)
	}
	if tmpl.Slot != slot {
		return nil, nil, errors.FailedPreconditionf("%s goes in %s, not %s", tmpl.Name, tmpl.Slot, slot).
			WithReason(ReasonWrongSlot)
	}
	if current, taken := equipped[slot]; taken && current != nil {
		return nil, nil, errors.FailedPreconditionf("%s is already occupied", slot).
			WithReason(ReasonSlotOccupied).
			WithMeta("slot", string(slot))
	}

	i := indexOf(inventory, templateID)
	if i < 0 {
		return nil, nil, errors.FailedPreconditionf("%s is not in the inventory", templateID).
			WithReason(ReasonNotInInventory)
	}

	outInventory := entities.CloneStacks(inventory)
	worn := outInventory[i].Clone()
	worn.Amount = 1
	outInventory = take(outInventory, i, 1)

	outEquipped := entities.CloneEquipment(equipped)
	if outEquipped == nil {
		outEquipped = make(map[entities.EquipmentSlot]*entities.ItemStack)
	}
	outEquipped[slot] = &worn

	return outEquipped, outInventory, nil
}

// SaleRequest asks to sell up to Amount of a template
type SaleRequest struct {
	TemplateID string `json:"template_id"`
	Amount     int    `json:"amount"`
}

// SaleLine records one processed request
type SaleLine struct {
	TemplateID string `json:"template_id"`
	Name       string `json:"name"`
	Amount     int    `json:"amount"`
	UnitValue  int64  `json:"unit_value"`
	Gold       int64  `json:"gold"`
}

// Sale is the outcome of SellToVendor
type Sale struct {
	Inventory []entities.ItemStack
	Gold      int64
	Lines     []SaleLine
}

// SellToVendor destroys inventory quantity in exchange for gold. Requests are
// processed in order; a request for a template that is absent from the
// inventory or the catalog, or for a non-positive amount, is skipped.
// Amounts larger than the stack are clamped to it.
func SellToVendor(inventory []entities.ItemStack, requests []SaleRequest, catalog Catalog) (*Sale, error) {
	if len(requests) == 0 {
		return nil, errors.InvalidArgument("at least one item is required")
	}

	sale := &Sale{Inventory: entities.CloneStacks(inventory)}
	for _, req := range requests {
		if req.Amount <= 0 {
			continue
		}
		i := indexOf(sale.Inventory, req.TemplateID)
		if i < 0 {
			continue
		}
		tmpl, ok := catalog.Template(req.TemplateID)
		if !ok {
			continue
		}

		amount := min(req.Amount, sale.Inventory[i].Amount)
		gold := tmpl.Value * int64(amount)
		sale.Inventory = take(sale.Inventory, i, amount)
		sale.Gold += gold
		sale.Lines = append(sale.Lines, SaleLine{
			TemplateID: tmpl.ID,
			Name:       tmpl.Name,
			Amount:     amount,
			UnitValue:  tmpl.Value,
			Gold:       gold,
		})
	}

	return sale, nil
}

// Offer describes a new market listing
type Offer struct {
	ListingID  string
	SellerID   string
	SellerName string
	TemplateID string
	Amount     int
	Currency   entities.Currency
	Price      int64
}

// ListingRules bounds new listings
type ListingRules struct {
	TTL      time.Duration
	MaxPrice int64
}

// CreateListing moves offer.Amount of a template from the inventory into a
// new listing's escrow. Quantity is drawn in order from the stacks that
// carry the same metadata as the first stack of the template, so the
// escrowed stack never mixes metadata.
func CreateListing(
	inventory []entities.ItemStack,
	offer Offer,
	rules ListingRules,
	now time.Time,
) ([]entities.ItemStack, *entities.MarketListing, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("template_id", offer.TemplateID, vb)
	errors.ValidatePositive("amount", offer.Amount, vb)
	if !offer.Currency.IsValid() {
		vb.InvalidField("currency", "must be gold or diamonds")
	}
	if err := vb.Build(); err != nil {
		return nil, nil, err
	}
	if offer.Price <= 0 || (rules.MaxPrice > 0 && offer.Price > rules.MaxPrice) {
		return nil, nil, errors.InvalidArgumentf("price must be between 1 and %d", rules.MaxPrice).
			WithReason(ReasonInvalidPrice)
	}

	first := indexOf(inventory, offer.TemplateID)
	if first < 0 {
		return nil, nil, errors.FailedPreconditionf("%s is not in the inventory", offer.TemplateID).
			WithReason(ReasonNotInInventory)
	}
	escrow := inventory[first].Clone()
	if held := quantityLike(inventory, escrow); held < offer.Amount {
		return nil, nil, errors.FailedPreconditionf("only %d of %s held, %d offered", held, offer.TemplateID, offer.Amount).
			WithReason(ReasonInsufficientQuantity)
	}

	escrow.Amount = offer.Amount

	outInventory := entities.CloneStacks(inventory)
	for remaining := offer.Amount; remaining > 0; {
		i := indexLike(outInventory, escrow)
		n := min(remaining, outInventory[i].Amount)
		outInventory = take(outInventory, i, n)
		remaining -= n
	}

	listing := &entities.MarketListing{
		ID:           offer.ListingID,
		SellerID:     offer.SellerID,
		SellerName:   offer.SellerName,
		Item:         escrow,
		CurrencyType: offer.Currency,
		CreatedAt:    now.Unix(),
		ExpiresAt:    now.Add(rules.TTL).Unix(),
	}
	if offer.Currency == entities.CurrencyDiamonds {
		listing.PriceDiamonds = offer.Price
	} else {
		listing.Price = offer.Price
	}

	return outInventory, listing, nil
}

// RemoveListing returns an unsold listing's item to its owner. The item is
// appended as a new stack without merging. The caller deletes the listing.
func RemoveListing(ownerID string, inventory []entities.ItemStack, listing *entities.MarketListing) ([]entities.ItemStack, error) {
	if listing.SellerID != ownerID {
		return nil, errors.PermissionDenied("only the seller can remove a listing").
			WithReason(ReasonNotOwner).
			WithMeta("listing_id", listing.ID)
	}
	if listing.IsSold {
		return nil, errors.Conflict("listing has already been sold").
			WithReason(ReasonAlreadySold).
			WithMeta("listing_id", listing.ID)
	}

	out := entities.CloneStacks(inventory)
	return append(out, listing.Item.Clone()), nil
}

// Trade is the outcome of Purchase
type Trade struct {
	Buyer   *entities.Character
	Seller  *entities.Character
	Listing *entities.MarketListing
}

// Purchase settles a listing: the buyer pays the seller and receives the
// escrowed item. The returned listing is marked sold and must never be
// reopened.
func Purchase(buyer, seller *entities.Character, listing *entities.MarketListing, now time.Time) (*Trade, error) {
	if listing.SellerID != seller.ID {
		return nil, errors.InvalidArgumentf("listing %s is not sold by %s", listing.ID, seller.ID)
	}
	if buyer.ID == seller.ID {
		return nil, errors.FailedPrecondition("cannot buy your own listing").
			WithReason(ReasonSelfPurchase)
	}
	if listing.IsSold {
		return nil, errors.Conflict("listing has already been sold").
			WithReason(ReasonAlreadySold).
			WithMeta("listing_id", listing.ID)
	}
	if listing.Expired(now.Unix()) {
		return nil, errors.FailedPrecondition("listing has expired").
			WithReason(ReasonListingExpired).
			WithMeta("listing_id", listing.ID)
	}

	cost := listing.Cost()
	b := buyer.Clone()
	s := seller.Clone()
	switch listing.CurrencyType {
	case entities.CurrencyDiamonds:
		if b.Diamonds < cost {
			return nil, insufficientFunds(listing.CurrencyType, cost, b.Diamonds)
		}
		b.Diamonds -= cost
		s.Diamonds += cost
	default:
		if b.Gold < cost {
			return nil, insufficientFunds(listing.CurrencyType, cost, b.Gold)
		}
		b.Gold -= cost
		s.Gold += cost
	}
	b.Inventory = append(b.Inventory, listing.Item.Clone())

	sold := listing.Clone()
	sold.IsSold = true
	sold.BuyerID = b.ID
	sold.SoldAt = now.Unix()

	return &Trade{Buyer: b, Seller: s, Listing: sold}, nil
}

func insufficientFunds(currency entities.Currency, cost, balance int64) *errors.Error {
	return errors.FailedPreconditionf("costs %d %s, balance is %d", cost, currency, balance).
		WithReason(ReasonInsufficientFunds)
}

func indexOf(stacks []entities.ItemStack, templateID string) int {
	for i := range stacks {
		if stacks[i].TemplateID == templateID && stacks[i].Amount > 0 {
			return i
		}
	}
	return -1
}

func sameKind(a, b entities.ItemStack) bool {
	return a.TemplateID == b.TemplateID && maps.Equal(a.Metadata, b.Metadata)
}

func indexLike(stacks []entities.ItemStack, like entities.ItemStack) int {
	for i := range stacks {
		if sameKind(stacks[i], like) && stacks[i].Amount > 0 {
			return i
		}
	}
	return -1
}

func quantityLike(stacks []entities.ItemStack, like entities.ItemStack) int {
	total := 0
	for _, s := range stacks {
		if sameKind(s, like) {
			total += s.Amount
		}
	}
	return total
}

// take removes n units from stacks[i], dropping the stack when it empties
func take(stacks []entities.ItemStack, i, n int) []entities.ItemStack {
	if stacks[i].Amount <= n {
		return append(stacks[:i], stacks[i+1:]...)
	}
	stacks[i].Amount -= n
	return stacks
}
