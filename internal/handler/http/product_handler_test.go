package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
	handler "github.com/vasiliy-maslov/storefront/internal/handler/http"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetAllProducts(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockCatalogService) GetProductByID(ctx context.Context, id uint64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalogService) GetProductsByCategory(ctx context.Context, category catalog.Category) ([]catalog.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func createProductRequest(t *testing.T, body handler.ProductRequest) *http.Request {
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(raw))
}

func TestProductHandler_HandleCreateProduct_ZeroPriceAccepted(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockCatalog.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.Price == 0
	})).Return(&catalog.Product{ID: 1, Name: "Sticker", Price: 0}, nil)

	h := handler.NewProductHandler(mockCatalog)

	req := createProductRequest(t, handler.ProductRequest{
		Name:     "Sticker",
		Sizes:    []string{"M"},
		Category: "Men",
		Price:    0,
	})

	rec := httptest.NewRecorder()
	h.HandleCreateProduct(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	mockCatalog.AssertExpectations(t)
}

func TestProductHandler_HandleCreateProduct_MissingName(t *testing.T) {
	h := handler.NewProductHandler(new(MockCatalogService))

	req := createProductRequest(t, handler.ProductRequest{
		Sizes:    []string{"M"},
		Category: "Men",
		Price:    100,
	})

	rec := httptest.NewRecorder()
	h.HandleCreateProduct(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
