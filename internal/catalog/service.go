package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrInvalidProduct = errors.New("invalid product")

type Service interface {
	GetAllProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id uint64) (*Product, error)
	GetProductsByCategory(ctx context.Context, category Category) ([]Product, error)
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id uint64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateProduct(p *Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if len(p.Sizes) == 0 {
		return fmt.Errorf("%w: at least one size is required", ErrInvalidProduct)
	}
	for _, s := range p.Sizes {
		if !validSizes[s] {
			return fmt.Errorf("%w: unknown size %q", ErrInvalidProduct, s)
		}
	}
	if !validCategories[p.Category] {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, p.Category)
	}
	return nil
}

func (s *service) GetAllProducts(ctx context.Context) ([]Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch products in repository")
		return nil, fmt.Errorf("service: failed to fetch products: %w", err)
	}

	return products, nil
}

func (s *service) GetProductByID(ctx context.Context, id uint64) (*Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}

		log.Error().Err(err).Uint64("product_id", id).Msg("service: failed to fetch product by id in repository")
		return nil, fmt.Errorf("service: failed to fetch product by id: %w", err)
	}

	return product, nil
}

func (s *service) GetProductsByCategory(ctx context.Context, category Category) ([]Product, error) {
	if !validCategories[category] {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, category)
	}

	products, err := s.repo.GetByCategory(ctx, category)
	if err != nil {
		log.Error().Err(err).Stringer("category", category).Msg("service: failed to fetch products by category in repository")
		return nil, fmt.Errorf("service: failed to fetch products by category: %w", err)
	}

	return products, nil
}

func (s *service) CreateProduct(ctx context.Context, product *Product) (*Product, error) {
	if err := validateProduct(product); err != nil {
		log.Warn().Err(err).Msg("service: rejected invalid product on create")
		return nil, err
	}

	product.ID = 0

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create product in repository")
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	product.ID = id

	log.Info().Uint64("product_id", id).Str("name", product.Name).Msg("service: product created")

	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, product *Product) error {
	if err := validateProduct(product); err != nil {
		log.Warn().Err(err).Uint64("product_id", product.ID).Msg("service: rejected invalid product on update")
		return err
	}

	err := s.repo.Update(ctx, product)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}

		log.Error().Err(err).Uint64("product_id", product.ID).Msg("service: failed to update product in repository")
		return fmt.Errorf("service: failed to update product: %w", err)
	}

	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id uint64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}

		log.Error().Err(err).Uint64("product_id", id).Msg("service: failed to delete product in repository")
		return fmt.Errorf("service: failed to delete product: %w", err)
	}

	log.Info().Uint64("product_id", id).Msg("service: product deleted")

	return nil
}
