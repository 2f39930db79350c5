package entities

// Currency selects which price field of a listing applies
type Currency string

// Currencies
const (
	CurrencyGold     Currency = "gold"
	CurrencyDiamonds Currency = "diamonds"
)

// IsValid reports whether c is a known currency
func (c Currency) IsValid() bool {
	return c == CurrencyGold || c == CurrencyDiamonds
}

// MarketListing holds an escrowed item stack offered by a seller. While
// IsSold is false the item is in neither the seller's inventory nor anyone
// else's.
type MarketListing struct {
	ID            string    `json:"id"`
	SellerID      string    `json:"seller_id"`
	SellerName    string    `json:"seller_name,omitempty"`
	Item          ItemStack `json:"item"`
	CurrencyType  Currency  `json:"currency_type"`
	Price         int64     `json:"price,omitempty"`
	PriceDiamonds int64     `json:"price_diamonds,omitempty"`
	IsSold        bool      `json:"is_sold"`
	BuyerID       string    `json:"buyer_id,omitempty"`

	Version   int64 `json:"version"`
	CreatedAt int64 `json:"created_at"`
	ExpiresAt int64 `json:"expires_at"`
	SoldAt    int64 `json:"sold_at,omitempty"`
}

// Cost returns the amount charged in the listing's currency
func (l *MarketListing) Cost() int64 {
	if l.CurrencyType == CurrencyDiamonds {
		return l.PriceDiamonds
	}
	return l.Price
}

// Expired reports whether the listing's expiry is at or before now (unix seconds)
func (l *MarketListing) Expired(now int64) bool {
	return l.ExpiresAt > 0 && now >= l.ExpiresAt
}

// Clone returns a deep copy of the listing
func (l *MarketListing) Clone() *MarketListing {
	if l == nil {
		return nil
	}
	out := *l
	out.Item = l.Item.Clone()
	return &out
}
