package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Sizes       []string `json:"sizes" validate:"required,min=1,dive,oneof=XS S M L XL XXL"`
	Category    string   `json:"category" validate:"required,oneof=Men Women Kids"`
	Image       string   `json:"image"`
	// Zero is a legal price (free item), so no required tag here.
	Price uint64 `json:"price"`
}

type ProductHandler struct {
	service  catalog.Service
	validate *validator.Validate
}

func NewProductHandler(service catalog.Service) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (req *ProductRequest) toProduct() *catalog.Product {
	sizes := make([]catalog.Size, 0, len(req.Sizes))
	for _, s := range req.Sizes {
		sizes = append(sizes, catalog.Size(s))
	}
	return &catalog.Product{
		Name:        req.Name,
		Description: req.Description,
		Sizes:       sizes,
		Category:    catalog.Category(req.Category),
		Image:       req.Image,
		Price:       req.Price,
	}
}

func productIDParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

// HandleListProducts serves the full catalog, or one category when the
// query parameter is present.
func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	rawCategory := r.URL.Query().Get("category")

	if rawCategory != "" {
		category, err := catalog.ParseCategory(rawCategory)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		products, err := h.service.GetProductsByCategory(r.Context(), category)
		if err != nil {
			log.Error().Err(err).Msg("Failed to list products by category")
			respondWithError(w, mapErrorToStatusCode(err), "failed to list products")
			return
		}

		respondWithJSON(w, http.StatusOK, products)
		return
	}

	products, err := h.service.GetAllProducts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		respondWithError(w, mapErrorToStatusCode(err), "failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		log.Error().Err(err).Uint64("product_id", id).Msg("Failed to get product")
		respondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	created, err := h.service.CreateProduct(r.Context(), req.toProduct())
	if err != nil {
		log.Error().Err(err).Msg("Failed to create product")
		respondWithError(w, mapErrorToStatusCode(err), "failed to create product")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	product := req.toProduct()
	product.ID = id

	if err := h.service.UpdateProduct(r.Context(), product); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		log.Error().Err(err).Uint64("product_id", id).Msg("Failed to update product")
		respondWithError(w, mapErrorToStatusCode(err), "failed to update product")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		log.Error().Err(err).Uint64("product_id", id).Msg("Failed to delete product")
		respondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
