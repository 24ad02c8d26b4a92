package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/order"
)

var ErrUnavailableItems = errors.New("cart contains items that are no longer available")

// ValidationError carries the reasons from a failed pre-submission check
// across the service boundary.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "checkout validation failed: " + strings.Join(e.Reasons, "; ")
}

// CartStore is the slice of the cart service checkout depends on.
type CartStore interface {
	GetCart(ctx context.Context, principal string) ([]cart.Item, error)
	ClearCart(ctx context.Context, principal string) error
}

// CatalogReader supplies the catalog snapshot lines are reconciled against.
type CatalogReader interface {
	GetAllProducts(ctx context.Context) ([]catalog.Product, error)
}

// OrderCreator persists the finished order.
type OrderCreator interface {
	Create(ctx context.Context, orderInput *order.Order) (*order.Order, error)
}

// QuotedLine is one priced cart line for display.
type QuotedLine struct {
	Item        cart.Item        `json:"item"`
	Product     *catalog.Product `json:"product,omitempty"`
	Unavailable bool             `json:"unavailable"`
	LineTotal   uint64           `json:"line_total"`
}

// Quote is the priced view of a cart. Total skips unavailable lines, which
// are flagged so the UI can prompt removal.
type Quote struct {
	Lines []QuotedLine `json:"lines"`
	Total uint64       `json:"total"`
}

type Service interface {
	Quote(ctx context.Context, principal string) (*Quote, error)
	PlaceOrder(ctx context.Context, principal string, customer order.CustomerInfo) (uint64, error)
}

type service struct {
	cart    CartStore
	catalog CatalogReader
	orders  OrderCreator
}

func NewService(cartStore CartStore, catalogReader CatalogReader, orders OrderCreator) Service {
	return &service{cart: cartStore, catalog: catalogReader, orders: orders}
}

func (s *service) snapshot(ctx context.Context, principal string) ([]cart.Item, []Line, error) {
	items, err := s.cart.GetCart(ctx, principal)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to fetch cart: %w", err)
	}

	products, err := s.catalog.GetAllProducts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to fetch catalog: %w", err)
	}

	return items, Reconcile(items, indexProducts(products)), nil
}

func (s *service) Quote(ctx context.Context, principal string) (*Quote, error) {
	_, lines, err := s.snapshot(ctx, principal)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to build cart quote")
		return nil, err
	}

	quoted := make([]QuotedLine, 0, len(lines))
	for _, line := range lines {
		quoted = append(quoted, QuotedLine{
			Item:        line.Item,
			Product:     line.Product,
			Unavailable: line.Unavailable(),
			LineTotal:   line.LineTotal(),
		})
	}

	return &Quote{Lines: quoted, Total: ComputeTotal(lines)}, nil
}

// PlaceOrder turns the caller's cart into a persisted order: validate,
// reconcile against a fresh catalog snapshot, refuse unresolved lines,
// compute the total once, create the order, then clear the cart.
func (s *service) PlaceOrder(ctx context.Context, principal string, customer order.CustomerInfo) (uint64, error) {
	items, lines, err := s.snapshot(ctx, principal)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to snapshot cart for order placement")
		return 0, err
	}

	if res := ValidateCheckout(items, customer); !res.Valid {
		log.Warn().Strs("reasons", res.Reasons).Msg("service: checkout validation failed")
		return 0, &ValidationError{Reasons: res.Reasons}
	}

	for _, line := range lines {
		if line.Unavailable() {
			log.Warn().Uint64("product_id", line.Item.ProductID).Msg("service: order placement with unavailable cart item")
			return 0, ErrUnavailableItems
		}
	}

	orderInput := &order.Order{
		Principal:   principal,
		Customer:    customer,
		TotalAmount: ComputeTotal(lines),
		Items:       items,
	}

	created, err := s.orders.Create(ctx, orderInput)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create order")
		return 0, fmt.Errorf("service: failed to create order: %w", err)
	}

	// The order is already placed; a failed cart clear must not undo that.
	if err := s.cart.ClearCart(ctx, principal); err != nil {
		log.Error().Err(err).Uint64("order_id", created.ID).Msg("service: failed to clear cart after order placement")
	}

	log.Info().Uint64("order_id", created.ID).Uint64("total_amount", created.TotalAmount).Msg("service: order placed")

	return created.ID, nil
}
