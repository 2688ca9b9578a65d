package services

import (
	"errors"

	"github.com/kudoshq/recognition-bff/models"
)

// Sentinel errors for variant selection.
var (
	ErrVariantNotFound   = errors.New("variant not found")
	ErrVariantOutOfStock = errors.New("variant out of stock")
)

// PickDefaultVariant returns the first variant with stock, scanning in list
// order, or nil when the list is empty or everything is sold out. An
// out-of-stock variant is never picked, even when it is first in the list.
func PickDefaultVariant(variants []models.Variant) *models.Variant {
	for i := range variants {
		if variants[i].Stock > 0 {
			return &variants[i]
		}
	}
	return nil
}

// HasStockIssue reports whether the item cannot be redeemed at all: either
// it has no variants and its own stock is zero, or every variant is sold
// out. Item-level stock is ignored once variants exist.
func HasStockIssue(item *models.CatalogItem) bool {
	if !item.HasVariants() {
		return item.Stock == 0
	}
	for _, v := range item.Variants {
		if v.Stock > 0 {
			return false
		}
	}
	return true
}

// CanProceedWithVariant reports whether a redemption confirmation may go
// ahead for the given selection. Items without variants only need item
// stock; items with variants need a selected, in-stock variant.
func CanProceedWithVariant(item *models.CatalogItem, selectedVariantID string) bool {
	if HasStockIssue(item) {
		return false
	}
	if !item.HasVariants() {
		return true
	}
	if selectedVariantID == "" {
		return false
	}
	for _, v := range item.Variants {
		if v.ID == selectedVariantID {
			return v.Stock > 0
		}
	}
	return false
}

// ValidateSelection looks up a candidate variant by ID and returns it only
// if it exists and has stock. Duplicate IDs are an upstream data-integrity
// problem; the first match wins.
func ValidateSelection(variants []models.Variant, candidateID string) (*models.Variant, error) {
	for i := range variants {
		if variants[i].ID == candidateID {
			if variants[i].Stock <= 0 {
				return nil, ErrVariantOutOfStock
			}
			return &variants[i], nil
		}
	}
	return nil, ErrVariantNotFound
}
