package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/api/responses"
	pkgauth "github.com/fuatkeles/aufmass-app-sub001/pkg/auth"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/config"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// claims. Every authenticated request carries a branch id; handlers never
// trust branch identifiers from the payload.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.BranchID == uuid.Nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token carries no branch"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithBranchID(ctx, claims.BranchID.String())
			ctx = withRole(ctx, string(claims.Role))

			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
				ctx = logg.WithBranchID(ctx, claims.BranchID.String())
				ctx = logg.WithField(ctx, "actor_role", string(claims.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
