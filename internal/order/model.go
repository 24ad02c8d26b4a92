package order

import (
	"time"

	"github.com/vasiliy-maslov/storefront/internal/cart"
)

// CustomerInfo is the checkout contact payload. All fields are required;
// the checkout validator enforces that before an order is created.
type CustomerInfo struct {
	Name            string `json:"name" db:"customer_name"`
	Email           string `json:"email" db:"customer_email"`
	ShippingAddress string `json:"shipping_address" db:"customer_shipping_address"`
	Phone           string `json:"phone" db:"customer_phone"`
}

// Order is immutable once created. The id is assigned by the database,
// TotalAmount is the reconciled total at the moment of placement.
type Order struct {
	ID          uint64       `json:"id" db:"id"`
	Principal   string       `json:"-" db:"principal"`
	Customer    CustomerInfo `json:"customer"`
	TotalAmount uint64       `json:"total_amount" db:"total_amount"`
	Items       []cart.Item  `json:"items" db:"-"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}
