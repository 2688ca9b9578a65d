package models

// PrizeCategory distinguishes how a redemption is fulfilled.
type PrizeCategory string

const (
	CategoryPhysical PrizeCategory = "physical"
	CategoryVoucher  PrizeCategory = "voucher"
)

// Variant is a selectable sub-SKU of a catalog item (size, denomination)
// with its own stock count. Variants are server-owned truth: the BFF never
// mutates them, it only re-fetches after a mutation invalidates the catalog.
type Variant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Stock int    `json:"stock"`
}

// CatalogItem is a prize employees can redeem coins for. When Variants is
// non-empty the item-level Stock field is not authoritative: each variant's
// stock governs redeemability independently.
type CatalogItem struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    PrizeCategory `json:"category"`
	CoinPrice   int64         `json:"coin_price"`
	Stock       int           `json:"stock"`
	Variants    []Variant     `json:"variants,omitempty"`
}

// HasVariants reports whether the item is redeemed through variants.
func (c *CatalogItem) HasVariants() bool {
	return len(c.Variants) > 0
}

// CatalogItemView is a catalog item annotated with the derived state the
// frontend renders (default selection, stock availability).
type CatalogItemView struct {
	CatalogItem
	DefaultVariantID string `json:"default_variant_id,omitempty"`
	HasStockIssue    bool   `json:"has_stock_issue"`
	Redeemable       bool   `json:"redeemable"`
}

// RedeemRequest is the payload for confirming a prize redemption.
type RedeemRequest struct {
	VariantID string `json:"variant_id,omitempty"`
}
