package cart

import (
	"math"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// maxQuantity is the largest quantity a line can carry without
// overflowing its storage type. Deltas pushing past it clamp here.
const maxQuantity = int64(math.MaxUint32)

// MergeQuantity applies a quantity delta to the (productID, size) line of
// items and returns the resulting list. The input is never mutated.
//
// Rules:
//   - an existing line's quantity becomes max(0, quantity+delta), capped at
//     maxQuantity; a result of 0 removes the line,
//   - a missing line is appended with quantity=delta when delta > 0,
//   - all untouched lines keep their positions.
//
// Both add-to-cart and increment/decrement are expressed through this
// function; the store only persists its output.
func MergeQuantity(items []Item, productID uint64, size catalog.Size, delta int64) []Item {
	// Cap up front so quantity+delta stays within int64.
	if delta > maxQuantity {
		delta = maxQuantity
	}

	for i, it := range items {
		if it.ProductID != productID || it.Size != size {
			continue
		}

		next := int64(it.Quantity) + delta
		if next <= 0 {
			out := make([]Item, 0, len(items)-1)
			out = append(out, items[:i]...)
			out = append(out, items[i+1:]...)
			return out
		}
		if next > maxQuantity {
			next = maxQuantity
		}

		out := make([]Item, len(items))
		copy(out, items)
		out[i].Quantity = uint32(next)
		return out
	}

	if delta <= 0 {
		return items
	}

	out := make([]Item, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, Item{ProductID: productID, Size: size, Quantity: uint32(delta)})
	return out
}

// FindItem returns the line matching (productID, size), or nil.
func FindItem(items []Item, productID uint64, size catalog.Size) *Item {
	for i := range items {
		if items[i].ProductID == productID && items[i].Size == size {
			return &items[i]
		}
	}
	return nil
}
