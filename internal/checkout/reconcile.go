// Package checkout joins cart lines against the current catalog and turns
// them into a priced, validated order. Reconcile, ComputeTotal and
// ValidateCheckout are pure: they work on snapshots and do no I/O, so every
// page that shows a total and the order placement itself share the exact
// same arithmetic.
package checkout

import (
	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// Line pairs a cart item with its resolved product. Product is nil when the
// catalog no longer has the item's product; that is not an error, the line
// still renders so the user can remove it.
type Line struct {
	Item    cart.Item
	Product *catalog.Product
}

// Unavailable reports whether the line's product is gone from the catalog.
func (l Line) Unavailable() bool {
	return l.Product == nil
}

// LineTotal is price×quantity for a resolved line, 0 for an unavailable one.
func (l Line) LineTotal() uint64 {
	if l.Product == nil {
		return 0
	}
	return l.Product.Price * uint64(l.Item.Quantity)
}

// Reconcile resolves every cart item through lookup, preserving cart order.
// Items whose product cannot be resolved come back with a nil Product.
func Reconcile(items []cart.Item, lookup func(productID uint64) *catalog.Product) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{
			Item:    item,
			Product: lookup(item.ProductID),
		})
	}
	return lines
}

// ComputeTotal sums price×quantity over resolved lines. Unavailable lines
// contribute nothing. This is the single total computation for cart view,
// checkout view and order placement.
func ComputeTotal(lines []Line) uint64 {
	var total uint64
	for _, line := range lines {
		total += line.LineTotal()
	}
	return total
}

// indexProducts builds the lookup Reconcile needs from a catalog snapshot.
func indexProducts(products []catalog.Product) func(uint64) *catalog.Product {
	byID := make(map[uint64]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return func(id uint64) *catalog.Product {
		return byID[id]
	}
}
