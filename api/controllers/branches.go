package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/api/responses"
	"github.com/fuatkeles/aufmass-app-sub001/api/validators"
	"github.com/fuatkeles/aufmass-app-sub001/internal/branches"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
)

type addTeamMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// GetMyBranch returns the caller's branch profile.
func GetMyBranch(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.GetBranch(r.Context(), branchID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ListBranchUsers returns the branch's active staff.
func ListBranchUsers(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		users, err := svc.ListUsers(r.Context(), branchID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"users": users})
	}
}

// ListTeams returns the branch's teams with members.
func ListTeams(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		teams, err := svc.ListTeams(r.Context(), branchID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"teams": teams})
	}
}

// CreateTeam adds a team to the branch.
func CreateTeam(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req branches.CreateTeamInput
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateTeam(r.Context(), branchID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// AddTeamMember links a branch user into a team.
func AddTeamMember(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := branchIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		teamID, err := pathID(r, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req addTeamMemberRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		dto, err := svc.AddTeamMember(r.Context(), branchID, teamID, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
