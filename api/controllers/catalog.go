package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fuatkeles/aufmass-app-sub001/api/responses"
	"github.com/fuatkeles/aufmass-app-sub001/api/validators"
	"github.com/fuatkeles/aufmass-app-sub001/internal/catalog"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/types"
)

// ListProducts returns the active catalog.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

type upsertProductRequest struct {
	Name            string                `json:"name" validate:"required"`
	IsActive        bool                  `json:"is_active"`
	DimensionMatrix types.DimensionMatrix `json:"dimension_matrix" validate:"required"`
	SpecFields      json.RawMessage       `json:"spec_fields,omitempty"`
}

// UpsertProduct creates or replaces the catalog entry for the slug in the
// path. Admin-only; mounted behind the role middleware.
func UpsertProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var req upsertProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.UpsertProduct(r.Context(), catalog.UpsertProductInput{
			Slug:            chi.URLParam(r, "slug"),
			Name:            req.Name,
			IsActive:        req.IsActive,
			DimensionMatrix: req.DimensionMatrix,
			SpecFields:      req.SpecFields,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// GetProduct returns one product with its dimension matrix.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		detail, err := svc.GetProduct(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
