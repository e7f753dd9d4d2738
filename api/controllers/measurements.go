package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/api/responses"
	"github.com/fuatkeles/aufmass-app-sub001/api/validators"
	"github.com/fuatkeles/aufmass-app-sub001/internal/measurements"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/pagination"
)

type createMeasurementRequest struct {
	Customer     measurements.CustomerInput `json:"customer" validate:"required"`
	AssigneeID   *uuid.UUID                 `json:"assignee_id,omitempty"`
	TeamID       *uuid.UUID                 `json:"team_id,omitempty"`
	ScheduledFor *time.Time                 `json:"scheduled_for,omitempty"`
	SpecValues   json.RawMessage            `json:"spec_values,omitempty"`
	Notes        *string                    `json:"notes,omitempty"`
}

type updateMeasurementRequest struct {
	AssigneeID   *uuid.UUID       `json:"assignee_id,omitempty"`
	TeamID       *uuid.UUID       `json:"team_id,omitempty"`
	ScheduledFor *time.Time       `json:"scheduled_for,omitempty"`
	SpecValues   *json.RawMessage `json:"spec_values,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

type transitionRequest struct {
	Status string  `json:"status" validate:"required"`
	Note   *string `json:"note,omitempty"`
}

// CreateMeasurement opens a new measurement record.
func CreateMeasurement(svc measurements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createMeasurementRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), branchID, measurements.CreateMeasurementInput{
			Customer:     req.Customer,
			AssigneeID:   req.AssigneeID,
			TeamID:       req.TeamID,
			ScheduledFor: req.ScheduledFor,
			SpecValues:   req.SpecValues,
			Notes:        req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ListMeasurements returns one branch-scoped page.
func ListMeasurements(svc measurements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := measurements.ListMeasurementsInput{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		if raw := validators.ParseQueryString(r, "status", ""); raw != "" {
			status, err := enums.ParseMeasurementStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			input.Status = &status
		}

		page, err := svc.List(r.Context(), branchID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// GetMeasurement returns one record with customer and history.
func GetMeasurement(svc measurements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), branchID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UpdateMeasurement applies a partial update.
func UpdateMeasurement(svc measurements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateMeasurementRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), branchID, id, measurements.UpdateMeasurementInput{
			AssigneeID:   req.AssigneeID,
			TeamID:       req.TeamID,
			ScheduledFor: req.ScheduledFor,
			SpecValues:   req.SpecValues,
			Notes:        req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// TransitionMeasurement moves the record through the workflow.
func TransitionMeasurement(svc measurements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req transitionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseMeasurementStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target status"))
			return
		}

		dto, err := svc.Transition(r.Context(), branchID, id, userIDFromRequest(r), status, req.Note)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
