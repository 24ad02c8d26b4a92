package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/checkout"
	"github.com/vasiliy-maslov/storefront/internal/identity"
)

type AddCartItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required,oneof=XS S M L XL XXL"`
	Quantity  uint32 `json:"quantity" validate:"required,min=1"`
}

type ChangeQuantityRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required,oneof=XS S M L XL XXL"`
	// Delta is the signed quantity change; decrementing to zero removes
	// the line.
	Delta int64 `json:"delta" validate:"required"`
}

type CartHandler struct {
	carts    cart.Service
	checkout checkout.Service
	validate *validator.Validate
}

func NewCartHandler(carts cart.Service, checkoutSvc checkout.Service) *CartHandler {
	return &CartHandler{
		carts:    carts,
		checkout: checkoutSvc,
		validate: validator.New(),
	}
}

// HandleGetCart returns the reconciled, priced cart view: every line with
// its product (or an unavailable flag) and the shared total.
func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	principal := identity.PrincipalFromContext(r.Context())

	quote, err := h.checkout.Quote(r.Context(), principal)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build cart view")
		respondWithError(w, http.StatusInternalServerError, "failed to fetch cart")
		return
	}

	respondWithJSON(w, http.StatusOK, quote)
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	principal := identity.PrincipalFromContext(r.Context())

	err := h.carts.AddToCart(r.Context(), principal, req.ProductID, catalog.Size(req.Size), req.Quantity)
	if err != nil {
		log.Warn().Err(err).Uint64("product_id", req.ProductID).Msg("Failed to add cart item")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) HandleChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var req ChangeQuantityRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	principal := identity.PrincipalFromContext(r.Context())

	err := h.carts.ChangeQuantity(r.Context(), principal, req.ProductID, catalog.Size(req.Size), req.Delta)
	if err != nil {
		log.Warn().Err(err).Uint64("product_id", req.ProductID).Msg("Failed to change cart quantity")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "productID")
	productID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	size, err := catalog.ParseSize(chi.URLParam(r, "size"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	principal := identity.PrincipalFromContext(r.Context())

	// Removing an absent line is a no-op, so this stays idempotent.
	if err := h.carts.RemoveFromCart(r.Context(), principal, productID, size); err != nil {
		log.Error().Err(err).Uint64("product_id", productID).Msg("Failed to remove cart item")
		respondWithError(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	principal := identity.PrincipalFromContext(r.Context())

	if err := h.carts.ClearCart(r.Context(), principal); err != nil {
		log.Error().Err(err).Msg("Failed to clear cart")
		respondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
