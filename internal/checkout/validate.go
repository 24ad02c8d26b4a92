package checkout

import (
	"regexp"
	"strings"

	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/order"
)

// emailShape matches the address pattern the storefront form accepts. It is
// a shape check, not RFC validation.
var emailShape = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// Result is the outcome of pre-submission validation. Failures are values,
// never errors: callers render Reasons as inline field feedback.
type Result struct {
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons,omitempty"`
}

// ValidateCheckout checks that the cart and customer payload are fit to
// submit. It must run before any order placement call so invalid orders
// never leave the client path.
func ValidateCheckout(items []cart.Item, customer order.CustomerInfo) Result {
	var reasons []string

	if len(items) == 0 {
		reasons = append(reasons, "cart is empty")
	}

	if strings.TrimSpace(customer.Name) == "" {
		reasons = append(reasons, "name is required")
	}

	email := strings.TrimSpace(customer.Email)
	if email == "" {
		reasons = append(reasons, "email is required")
	} else if !emailShape.MatchString(email) {
		reasons = append(reasons, "invalid email address")
	}

	if strings.TrimSpace(customer.Phone) == "" {
		reasons = append(reasons, "phone number is required")
	}

	if strings.TrimSpace(customer.ShippingAddress) == "" {
		reasons = append(reasons, "shipping address is required")
	}

	return Result{Valid: len(reasons) == 0, Reasons: reasons}
}
