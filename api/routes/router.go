package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fuatkeles/aufmass-app-sub001/api/controllers"
	"github.com/fuatkeles/aufmass-app-sub001/api/middleware"
	"github.com/fuatkeles/aufmass-app-sub001/internal/branches"
	"github.com/fuatkeles/aufmass-app-sub001/internal/catalog"
	"github.com/fuatkeles/aufmass-app-sub001/internal/documents"
	"github.com/fuatkeles/aufmass-app-sub001/internal/measurements"
	"github.com/fuatkeles/aufmass-app-sub001/internal/quotes"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/config"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/db"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/metrics"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           db.Pinger
	Redis        redis.Pinger
	Registry     *prometheus.Registry
	HTTPMetrics  *metrics.HTTPMetrics
	Catalog      catalog.Service
	Measurements measurements.Service
	Quotes       quotes.Service
	Branches     branches.Service
	Documents    *documents.Builder
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/v1/catalog", func(r chi.Router) {
			r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
			r.Get("/products/{slug}", controllers.GetProduct(deps.Catalog, logg))
			r.With(middleware.RequireRole(string(enums.MemberRoleAdmin), logg)).
				Put("/products/{slug}", controllers.UpsertProduct(deps.Catalog, logg))
		})

		r.Post("/v1/quotes/price", controllers.PriceQuote(deps.Quotes, logg))

		r.Route("/v1/measurements", func(r chi.Router) {
			r.Post("/", controllers.CreateMeasurement(deps.Measurements, logg))
			r.Get("/", controllers.ListMeasurements(deps.Measurements, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.GetMeasurement(deps.Measurements, logg))
				r.Patch("/", controllers.UpdateMeasurement(deps.Measurements, logg))
				r.Post("/status", controllers.TransitionMeasurement(deps.Measurements, logg))
				r.Post("/quote", controllers.SubmitQuote(deps.Quotes, logg))
				r.Get("/quote/document", controllers.GetQuoteDocument(deps.Documents, logg))
			})
		})

		r.Route("/v1/branches", func(r chi.Router) {
			r.Get("/me", controllers.GetMyBranch(deps.Branches, logg))
			r.Get("/users", controllers.ListBranchUsers(deps.Branches, logg))
			r.Get("/teams", controllers.ListTeams(deps.Branches, logg))
			r.Post("/teams", controllers.CreateTeam(deps.Branches, logg))
			r.Post("/teams/{id}/members", controllers.AddTeamMember(deps.Branches, logg))
		})
	})

	return r
}
