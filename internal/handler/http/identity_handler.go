package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/identity"
	"github.com/vasiliy-maslov/storefront/internal/profile"
)

type AssignRoleRequest struct {
	Principal string `json:"principal" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=admin user guest"`
}

type SaveProfileRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
}

type RoleResponse struct {
	Role identity.Role `json:"role"`
}

type AdminResponse struct {
	Admin bool `json:"admin"`
}

type IdentityHandler struct {
	identity identity.Service
	profiles profile.Service
	validate *validator.Validate
}

func NewIdentityHandler(identitySvc identity.Service, profiles profile.Service) *IdentityHandler {
	return &IdentityHandler{
		identity: identitySvc,
		profiles: profiles,
		validate: validator.New(),
	}
}

func (h *IdentityHandler) HandleGetRole(w http.ResponseWriter, r *http.Request) {
	principal := identity.PrincipalFromContext(r.Context())

	role, err := h.identity.GetCallerRole(r.Context(), principal)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve caller role")
		respondWithError(w, http.StatusInternalServerError, "failed to resolve role")
		return
	}

	respondWithJSON(w, http.StatusOK, RoleResponse{Role: role})
}

func (h *IdentityHandler) HandleIsAdmin(w http.ResponseWriter, r *http.Request) {
	principal := identity.PrincipalFromContext(r.Context())

	isAdmin, err := h.identity.IsCallerAdmin(r.Context(), principal)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve caller admin status")
		respondWithError(w, http.StatusInternalServerError, "failed to resolve role")
		return
	}

	respondWithJSON(w, http.StatusOK, AdminResponse{Admin: isAdmin})
}

func (h *IdentityHandler) HandleAssignRole(w http.ResponseWriter, r *http.Request) {
	var req AssignRoleRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller := identity.PrincipalFromContext(r.Context())

	if err := h.identity.AssignRole(r.Context(), caller, req.Principal, role); err != nil {
		if errors.Is(err, identity.ErrNotAdmin) {
			respondWithError(w, http.StatusForbidden, "admin role required")
			return
		}

		log.Error().Err(err).Msg("Failed to assign role")
		respondWithError(w, http.StatusInternalServerError, "failed to assign role")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *IdentityHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	principal := identity.PrincipalFromContext(r.Context())

	p, err := h.profiles.GetProfile(r.Context(), principal)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			respondWithError(w, http.StatusNotFound, "profile not found")
			return
		}

		log.Error().Err(err).Msg("Failed to fetch profile")
		respondWithError(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

// HandleGetProfileByPrincipal serves another identity's profile. The route
// is admin-gated; the handler only resolves the path parameter.
func (h *IdentityHandler) HandleGetProfileByPrincipal(w http.ResponseWriter, r *http.Request) {
	principal := chi.URLParam(r, "principal")
	if principal == "" {
		respondWithError(w, http.StatusBadRequest, "principal is required")
		return
	}

	p, err := h.profiles.GetProfile(r.Context(), principal)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			respondWithError(w, http.StatusNotFound, "profile not found")
			return
		}

		log.Error().Err(err).Str("principal", principal).Msg("Failed to fetch profile")
		respondWithError(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *IdentityHandler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	principal := identity.PrincipalFromContext(r.Context())

	p := &profile.Profile{
		Name:            req.Name,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
	}

	if err := h.profiles.SaveProfile(r.Context(), principal, p); err != nil {
		log.Error().Err(err).Msg("Failed to save profile")
		respondWithError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}
