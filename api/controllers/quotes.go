package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fuatkeles/aufmass-app-sub001/api/responses"
	"github.com/fuatkeles/aufmass-app-sub001/api/validators"
	"github.com/fuatkeles/aufmass-app-sub001/internal/documents"
	"github.com/fuatkeles/aufmass-app-sub001/internal/quotes"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
)

// PriceQuote reprices a draft without persisting anything.
func PriceQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req quotes.DraftInput
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		priced, err := svc.PriceDraft(r.Context(), branchID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, priced)
	}
}

// SubmitQuote prices the draft and persists the snapshot for a measurement.
func SubmitQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		measurementID, err := pathID(r, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req quotes.DraftInput
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Submit(r.Context(), branchID, measurementID, userIDFromRequest(r), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// GetQuoteDocument returns the renderer payload for the submitted quote.
func GetQuoteDocument(builder *documents.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if builder == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document builder unavailable"))
			return
		}
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		measurementID, err := pathID(r, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := builder.BuildQuoteDocument(r.Context(), branchID, measurementID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, doc)
	}
}
