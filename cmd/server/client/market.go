package client

import (
	"github.com/spf13/cobra"
)

var (
	currency  string
	sellerID  string
	limit     int
	buyerID   string
	listingID string
)

var listListingsCmd = &cobra.Command{
	Use:   "list-listings",
	Short: "Browse open market listings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd.OutOrStdout(), "ListListings", map[string]any{
			"currency":  currency,
			"seller_id": sellerID,
			"limit":     limit,
		})
	},
}

var purchaseListingCmd = &cobra.Command{
	Use:   "purchase-listing",
	Short: "Buy a market listing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd.OutOrStdout(), "PurchaseListing", map[string]any{
			"buyer_id":   buyerID,
			"listing_id": listingID,
		})
	},
}

func init() {
	listListingsCmd.Flags().StringVar(&currency, "currency", "", "gold or diamonds")
	listListingsCmd.Flags().StringVar(&sellerID, "seller-id", "", "Only listings of this seller")
	listListingsCmd.Flags().IntVar(&limit, "limit", 20, "Maximum listings to return")

	purchaseListingCmd.Flags().StringVar(&buyerID, "buyer-id", "", "Buyer character ID (required)")
	purchaseListingCmd.Flags().StringVar(&listingID, "listing-id", "", "Listing ID (required)")
	_ = purchaseListingCmd.MarkFlagRequired("buyer-id")   // nolint:errcheck // safe to ignore in init
	_ = purchaseListingCmd.MarkFlagRequired("listing-id") // nolint:errcheck // safe to ignore in init
}
