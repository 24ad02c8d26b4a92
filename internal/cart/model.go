package cart

import "github.com/vasiliy-maslov/storefront/internal/catalog"

// Item is one line of a caller's cart. Within one cart the
// (ProductID, Size) pair is unique; quantity is always at least 1,
// since dropping to zero removes the line instead.
type Item struct {
	ProductID uint64       `json:"product_id" db:"product_id"`
	Size      catalog.Size `json:"size" db:"size"`
	Quantity  uint32       `json:"quantity" db:"quantity"`
}
