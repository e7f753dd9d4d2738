package controllers

import (
	"net/http"

	"github.com/fuatkeles/aufmass-app-sub001/api/responses"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/config"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/db"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Aufmass-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the datastore dependencies. The cache is optional and
// only checked when wired.
func HealthReady(cfg *config.Config, database db.Pinger, cache redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Aufmass-Env", cfg.App.Env)

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
