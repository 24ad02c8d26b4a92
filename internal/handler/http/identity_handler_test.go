package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handler "github.com/vasiliy-maslov/storefront/internal/handler/http"
	"github.com/vasiliy-maslov/storefront/internal/identity"
	"github.com/vasiliy-maslov/storefront/internal/profile"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, principal string) (*profile.Profile, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileService) SaveProfile(ctx context.Context, principal string, p *profile.Profile) error {
	args := m.Called(ctx, principal, p)
	return args.Error(0)
}

func profileRequest(target, principalParam string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(identity.WithPrincipal(req.Context(), "root"))

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("principal", principalParam)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestIdentityHandler_HandleGetProfileByPrincipal_Success(t *testing.T) {
	stored := &profile.Profile{
		Name:            "Bob",
		Email:           "bob@example.com",
		ShippingAddress: "2 Side St",
		Phone:           "555-0101",
	}

	mockProfiles := new(MockProfileService)
	mockProfiles.On("GetProfile", mock.Anything, "bob").Return(stored, nil)

	h := handler.NewIdentityHandler(new(MockIdentityService), mockProfiles)

	rec := httptest.NewRecorder()
	h.HandleGetProfileByPrincipal(rec, profileRequest("/profiles/bob", "bob"))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp profile.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, *stored, resp)

	mockProfiles.AssertExpectations(t)
}

func TestIdentityHandler_HandleGetProfileByPrincipal_NotFound(t *testing.T) {
	mockProfiles := new(MockProfileService)
	mockProfiles.On("GetProfile", mock.Anything, "bob").Return(nil, profile.ErrProfileNotFound)

	h := handler.NewIdentityHandler(new(MockIdentityService), mockProfiles)

	rec := httptest.NewRecorder()
	h.HandleGetProfileByPrincipal(rec, profileRequest("/profiles/bob", "bob"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIdentityHandler_HandleGetProfileByPrincipal_MissingPrincipal(t *testing.T) {
	h := handler.NewIdentityHandler(new(MockIdentityService), new(MockProfileService))

	rec := httptest.NewRecorder()
	h.HandleGetProfileByPrincipal(rec, profileRequest("/profiles/", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
