package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/api/middleware"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
)

func branchIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.BranchIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "branch context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid branch context")
	}
	return id, nil
}

func userIDFromRequest(r *http.Request) uuid.UUID {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func pathID(r *http.Request, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id in path").WithDetails(map[string]any{"id": raw})
	}
	return id, nil
}
