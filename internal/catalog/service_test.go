package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

type mockRepository struct {
	getAllFunc        func(ctx context.Context) ([]catalog.Product, error)
	getByIDFunc       func(ctx context.Context, id uint64) (*catalog.Product, error)
	getByCategoryFunc func(ctx context.Context, category catalog.Category) ([]catalog.Product, error)
	createFunc        func(ctx context.Context, product *catalog.Product) (uint64, error)
	updateFunc        func(ctx context.Context, product *catalog.Product) error
	deleteFunc        func(ctx context.Context, id uint64) error
}

func (m *mockRepository) GetAll(ctx context.Context) ([]catalog.Product, error) {
	return m.getAllFunc(ctx)
}

func (m *mockRepository) GetByID(ctx context.Context, id uint64) (*catalog.Product, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRepository) GetByCategory(ctx context.Context, category catalog.Category) ([]catalog.Product, error) {
	return m.getByCategoryFunc(ctx, category)
}

func (m *mockRepository) Create(ctx context.Context, product *catalog.Product) (uint64, error) {
	return m.createFunc(ctx, product)
}

func (m *mockRepository) Update(ctx context.Context, product *catalog.Product) error {
	return m.updateFunc(ctx, product)
}

func (m *mockRepository) Delete(ctx context.Context, id uint64) error {
	return m.deleteFunc(ctx, id)
}

func validProduct() *catalog.Product {
	return &catalog.Product{
		Name:     "Shirt",
		Sizes:    []catalog.Size{catalog.SizeM, catalog.SizeL},
		Category: catalog.CategoryMen,
		Price:    2500,
	}
}

func TestService_CreateProduct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *catalog.Product)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(p *catalog.Product) {},
		},
		{
			name:    "missing_name",
			mutate:  func(p *catalog.Product) { p.Name = "" },
			wantErr: catalog.ErrInvalidProduct,
		},
		{
			name:    "no_sizes",
			mutate:  func(p *catalog.Product) { p.Sizes = nil },
			wantErr: catalog.ErrInvalidProduct,
		},
		{
			name:    "unknown_size",
			mutate:  func(p *catalog.Product) { p.Sizes = []catalog.Size{"XXXL"} },
			wantErr: catalog.ErrInvalidProduct,
		},
		{
			name:    "unknown_category",
			mutate:  func(p *catalog.Product) { p.Category = "Pets" },
			wantErr: catalog.ErrInvalidProduct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				createFunc: func(ctx context.Context, product *catalog.Product) (uint64, error) {
					return 7, nil
				},
			}
			svc := catalog.NewService(repo)

			p := validProduct()
			tt.mutate(p)

			created, err := svc.CreateProduct(context.Background(), p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, uint64(7), created.ID, "server assigns the id")
		})
	}
}

func TestService_GetProductByID(t *testing.T) {
	t.Run("not_found_passthrough", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFunc: func(ctx context.Context, id uint64) (*catalog.Product, error) {
				return nil, catalog.ErrProductNotFound
			},
		}
		svc := catalog.NewService(repo)

		_, err := svc.GetProductByID(context.Background(), 99)

		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("repository_failure_wrapped", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFunc: func(ctx context.Context, id uint64) (*catalog.Product, error) {
				return nil, errors.New("db down")
			},
		}
		svc := catalog.NewService(repo)

		_, err := svc.GetProductByID(context.Background(), 1)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, catalog.ErrProductNotFound)
	})
}

func TestService_GetProductsByCategory_UnknownCategory(t *testing.T) {
	svc := catalog.NewService(&mockRepository{})

	_, err := svc.GetProductsByCategory(context.Background(), "Pets")

	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
}

func TestParseSizeAndCategory(t *testing.T) {
	for _, raw := range []string{"XS", "S", "M", "L", "XL", "XXL"} {
		size, err := catalog.ParseSize(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, size.String())
	}

	_, err := catalog.ParseSize("tiny")
	assert.Error(t, err)

	for _, raw := range []string{"Men", "Women", "Kids"} {
		category, err := catalog.ParseCategory(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, category.String())
	}

	_, err = catalog.ParseCategory("Pets")
	assert.Error(t, err)
}
