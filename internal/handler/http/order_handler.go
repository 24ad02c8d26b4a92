package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/checkout"
	"github.com/vasiliy-maslov/storefront/internal/identity"
	"github.com/vasiliy-maslov/storefront/internal/order"
)

type PlaceOrderResponse struct {
	OrderID uint64 `json:"order_id"`
}

type CheckoutFailedResponse struct {
	Error   string   `json:"error"`
	Reasons []string `json:"reasons"`
}

type OrderHandler struct {
	checkout checkout.Service
	orders   order.Service
	identity identity.Service
}

func NewOrderHandler(checkoutSvc checkout.Service, orders order.Service, identitySvc identity.Service) *OrderHandler {
	return &OrderHandler{
		checkout: checkoutSvc,
		orders:   orders,
		identity: identitySvc,
	}
}

// HandlePlaceOrder converts the caller's cart into an order. The body is
// the customer contact payload; the server recomputes the total from the
// current cart and catalog, never trusting a client-side figure.
func (h *OrderHandler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var customer order.CustomerInfo

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&customer); err != nil {
		log.Warn().Err(err).Msg("Failed to decode checkout payload")
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	principal := identity.PrincipalFromContext(r.Context())

	orderID, err := h.checkout.PlaceOrder(r.Context(), principal, customer)
	if err != nil {
		var validationErr *checkout.ValidationError
		if errors.As(err, &validationErr) {
			respondWithJSON(w, http.StatusUnprocessableEntity, CheckoutFailedResponse{
				Error:   "checkout validation failed",
				Reasons: validationErr.Reasons,
			})
			return
		}

		if errors.Is(err, checkout.ErrUnavailableItems) {
			respondWithError(w, http.StatusConflict, "some items in the cart are no longer available")
			return
		}

		log.Error().Err(err).Msg("Failed to place order")
		respondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	respondWithJSON(w, http.StatusCreated, PlaceOrderResponse{OrderID: orderID})
}

func (h *OrderHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	principal := identity.PrincipalFromContext(r.Context())

	isAdmin, err := h.identity.IsCallerAdmin(r.Context(), principal)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve caller role for order listing")
		respondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	orders, err := h.orders.ListForCaller(r.Context(), principal, isAdmin)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders")
		respondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	principal := identity.PrincipalFromContext(r.Context())

	isAdmin, err := h.identity.IsCallerAdmin(r.Context(), principal)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve caller role for order fetch")
		respondWithError(w, http.StatusInternalServerError, "failed to get order")
		return
	}

	o, err := h.orders.GetOrderForCaller(r.Context(), id, principal, isAdmin)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, "order not found")
			return
		}

		log.Error().Err(err).Uint64("order_id", id).Msg("Failed to get order")
		respondWithError(w, http.StatusInternalServerError, "failed to get order")
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}
