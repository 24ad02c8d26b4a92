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

	"github.com/vasiliy-maslov/storefront/internal/checkout"
	handler "github.com/vasiliy-maslov/storefront/internal/handler/http"
	"github.com/vasiliy-maslov/storefront/internal/identity"
	"github.com/vasiliy-maslov/storefront/internal/order"
)

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Quote(ctx context.Context, principal string) (*checkout.Quote, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Quote), args.Error(1)
}

func (m *MockCheckoutService) PlaceOrder(ctx context.Context, principal string, customer order.CustomerInfo) (uint64, error) {
	args := m.Called(ctx, principal, customer)
	return args.Get(0).(uint64), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, orderInput *order.Order) (*order.Order, error) {
	args := m.Called(ctx, orderInput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderForCaller(ctx context.Context, id uint64, principal string, isAdmin bool) (*order.Order, error) {
	args := m.Called(ctx, id, principal, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListForCaller(ctx context.Context, principal string, isAdmin bool) ([]order.Order, error) {
	args := m.Called(ctx, principal, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) GetCallerRole(ctx context.Context, principal string) (identity.Role, error) {
	args := m.Called(ctx, principal)
	return args.Get(0).(identity.Role), args.Error(1)
}

func (m *MockIdentityService) IsCallerAdmin(ctx context.Context, principal string) (bool, error) {
	args := m.Called(ctx, principal)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityService) AssignRole(ctx context.Context, caller, target string, role identity.Role) error {
	args := m.Called(ctx, caller, target, role)
	return args.Error(0)
}

func placeOrderRequest(t *testing.T, customer order.CustomerInfo) *http.Request {
	body, err := json.Marshal(customer)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	return req.WithContext(identity.WithPrincipal(req.Context(), "alice"))
}

func TestOrderHandler_HandlePlaceOrder_Success(t *testing.T) {
	customer := order.CustomerInfo{Name: "A", Email: "a@b.com", Phone: "1", ShippingAddress: "x"}

	mockCheckout := new(MockCheckoutService)
	mockCheckout.On("PlaceOrder", mock.Anything, "alice", customer).Return(uint64(42), nil)

	h := handler.NewOrderHandler(mockCheckout, new(MockOrderService), new(MockIdentityService))

	rec := httptest.NewRecorder()
	h.HandlePlaceOrder(rec, placeOrderRequest(t, customer))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(42), resp.OrderID)

	mockCheckout.AssertExpectations(t)
}

func TestOrderHandler_HandlePlaceOrder_ValidationFailure(t *testing.T) {
	customer := order.CustomerInfo{Name: "A", Email: "", Phone: "1", ShippingAddress: "x"}

	mockCheckout := new(MockCheckoutService)
	mockCheckout.On("PlaceOrder", mock.Anything, "alice", customer).
		Return(uint64(0), &checkout.ValidationError{Reasons: []string{"email is required"}})

	h := handler.NewOrderHandler(mockCheckout, new(MockOrderService), new(MockIdentityService))

	rec := httptest.NewRecorder()
	h.HandlePlaceOrder(rec, placeOrderRequest(t, customer))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handler.CheckoutFailedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"email is required"}, resp.Reasons)
}

func TestOrderHandler_HandlePlaceOrder_UnavailableItems(t *testing.T) {
	customer := order.CustomerInfo{Name: "A", Email: "a@b.com", Phone: "1", ShippingAddress: "x"}

	mockCheckout := new(MockCheckoutService)
	mockCheckout.On("PlaceOrder", mock.Anything, "alice", customer).
		Return(uint64(0), checkout.ErrUnavailableItems)

	h := handler.NewOrderHandler(mockCheckout, new(MockOrderService), new(MockIdentityService))

	rec := httptest.NewRecorder()
	h.HandlePlaceOrder(rec, placeOrderRequest(t, customer))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrderHandler_HandleListOrders_AdminSeesAll(t *testing.T) {
	all := []order.Order{{ID: 1, Principal: "alice"}, {ID: 2, Principal: "bob"}}

	mockIdentity := new(MockIdentityService)
	mockIdentity.On("IsCallerAdmin", mock.Anything, "alice").Return(true, nil)

	mockOrders := new(MockOrderService)
	mockOrders.On("ListForCaller", mock.Anything, "alice", true).Return(all, nil)

	h := handler.NewOrderHandler(new(MockCheckoutService), mockOrders, mockIdentity)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req = req.WithContext(identity.WithPrincipal(req.Context(), "alice"))

	rec := httptest.NewRecorder()
	h.HandleListOrders(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []order.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)

	mockOrders.AssertExpectations(t)
}
