package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

var (
	ErrZeroQuantity   = errors.New("quantity must be greater than zero")
	ErrUnknownProduct = errors.New("product does not exist")
	ErrSizeNotOffered = errors.New("product is not offered in this size")
)

// ProductGetter is the slice of the catalog the cart needs to validate
// additions against.
type ProductGetter interface {
	GetProductByID(ctx context.Context, id uint64) (*catalog.Product, error)
}

type Service interface {
	GetCart(ctx context.Context, principal string) ([]Item, error)
	AddToCart(ctx context.Context, principal string, productID uint64, size catalog.Size, quantity uint32) error
	ChangeQuantity(ctx context.Context, principal string, productID uint64, size catalog.Size, delta int64) error
	RemoveFromCart(ctx context.Context, principal string, productID uint64, size catalog.Size) error
	ClearCart(ctx context.Context, principal string) error
}

// service validates mutations against the catalog and hands the quantity
// delta to the repository, which applies the merge under a cart lock.
type service struct {
	repo    Repository
	catalog ProductGetter
}

func NewService(repo Repository, catalog ProductGetter) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) GetCart(ctx context.Context, principal string) ([]Item, error) {
	items, err := s.repo.GetItems(ctx, principal)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch cart items in repository")
		return nil, fmt.Errorf("service: failed to fetch cart items: %w", err)
	}

	return items, nil
}

func (s *service) AddToCart(ctx context.Context, principal string, productID uint64, size catalog.Size, quantity uint32) error {
	if quantity == 0 {
		return ErrZeroQuantity
	}

	product, err := s.catalog.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			log.Warn().Uint64("product_id", productID).Msg("service: attempt to add unknown product to cart")
			return ErrUnknownProduct
		}

		log.Error().Err(err).Uint64("product_id", productID).Msg("service: failed to resolve product for cart add")
		return fmt.Errorf("service: failed to resolve product: %w", err)
	}

	if !product.HasSize(size) {
		log.Warn().Uint64("product_id", productID).Stringer("size", size).Msg("service: attempt to add unoffered size to cart")
		return ErrSizeNotOffered
	}

	return s.applyDelta(ctx, principal, productID, size, int64(quantity))
}

func (s *service) ChangeQuantity(ctx context.Context, principal string, productID uint64, size catalog.Size, delta int64) error {
	return s.applyDelta(ctx, principal, productID, size, delta)
}

func (s *service) applyDelta(ctx context.Context, principal string, productID uint64, size catalog.Size, delta int64) error {
	if err := s.repo.ApplyDelta(ctx, principal, productID, size, delta); err != nil {
		log.Error().Err(err).Uint64("product_id", productID).Msg("service: failed to merge cart item")
		return fmt.Errorf("service: failed to merge cart item: %w", err)
	}

	return nil
}

func (s *service) RemoveFromCart(ctx context.Context, principal string, productID uint64, size catalog.Size) error {
	if err := s.repo.DeleteItem(ctx, principal, productID, size); err != nil {
		log.Error().Err(err).Uint64("product_id", productID).Msg("service: failed to remove cart item")
		return fmt.Errorf("service: failed to remove cart item: %w", err)
	}

	return nil
}

func (s *service) ClearCart(ctx context.Context, principal string) error {
	if err := s.repo.Clear(ctx, principal); err != nil {
		log.Error().Err(err).Msg("service: failed to clear cart")
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}

	return nil
}
