package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	// Create persists a new order. Only the checkout flow calls this;
	// the input is already validated and priced.
	Create(ctx context.Context, orderInput *Order) (*Order, error)
	// GetOrderForCaller returns a single order if it belongs to the caller
	// (admins see any order); otherwise ErrOrderNotFound.
	GetOrderForCaller(ctx context.Context, id uint64, principal string, isAdmin bool) (*Order, error)
	// ListForCaller returns the caller's orders, or every order for admins.
	ListForCaller(ctx context.Context, principal string, isAdmin bool) ([]Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, orderInput *Order) (*Order, error) {
	if len(orderInput.Items) == 0 {
		log.Warn().Msg("service: attempt to create order with no items")
		return nil, errors.New("service: order must contain at least one item")
	}

	orderInput.ID = 0

	_, err := s.repo.Create(ctx, orderInput)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create order in repository")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().Uint64("order_id", orderInput.ID).Uint64("total_amount", orderInput.TotalAmount).Msg("service: order created")

	return orderInput, nil
}

func (s *service) GetOrderForCaller(ctx context.Context, id uint64, principal string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}

		log.Error().Err(err).Uint64("order_id", id).Msg("service: failed to fetch order by id in repository")
		return nil, fmt.Errorf("service: failed to fetch order by id: %w", err)
	}

	// Not-found rather than forbidden, so order ids can't be enumerated.
	if !isAdmin && o.Principal != principal {
		return nil, ErrOrderNotFound
	}

	return o, nil
}

func (s *service) ListForCaller(ctx context.Context, principal string, isAdmin bool) ([]Order, error) {
	var orders []Order
	var err error

	if isAdmin {
		orders, err = s.repo.ListAll(ctx)
	} else {
		orders, err = s.repo.ListByPrincipal(ctx, principal)
	}
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch orders in repository")
		return nil, fmt.Errorf("service: failed to fetch orders: %w", err)
	}

	return orders, nil
}
