package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fuatkeles/aufmass-app-sub001/internal/branches"
	"github.com/fuatkeles/aufmass-app-sub001/internal/catalog"
	"github.com/fuatkeles/aufmass-app-sub001/internal/documents"
	"github.com/fuatkeles/aufmass-app-sub001/internal/measurements"
	"github.com/fuatkeles/aufmass-app-sub001/internal/quotes"
	pkgAuth "github.com/fuatkeles/aufmass-app-sub001/pkg/auth"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/config"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListProducts(ctx context.Context) ([]catalog.ProductSummary, error) {
	return []catalog.ProductSummary{}, nil
}

func (stubCatalogService) GetProduct(ctx context.Context, slug string) (*catalog.ProductDetail, error) {
	return &catalog.ProductDetail{Slug: slug}, nil
}

func (stubCatalogService) UpsertProduct(ctx context.Context, input catalog.UpsertProductInput) (*catalog.ProductDetail, error) {
	return &catalog.ProductDetail{Slug: input.Slug, Name: input.Name, IsActive: input.IsActive}, nil
}

type stubMeasurementService struct{}

func (stubMeasurementService) Create(ctx context.Context, branchID uuid.UUID, input measurements.CreateMeasurementInput) (*measurements.MeasurementDTO, error) {
	return &measurements.MeasurementDTO{ID: uuid.New()}, nil
}

func (stubMeasurementService) Update(ctx context.Context, branchID, id uuid.UUID, input measurements.UpdateMeasurementInput) (*measurements.MeasurementDTO, error) {
	panic("unimplemented")
}

func (stubMeasurementService) Get(ctx context.Context, branchID, id uuid.UUID) (*measurements.MeasurementDTO, error) {
	return &measurements.MeasurementDTO{ID: id}, nil
}

func (stubMeasurementService) List(ctx context.Context, branchID uuid.UUID, input measurements.ListMeasurementsInput) (*measurements.MeasurementListResult, error) {
	return &measurements.MeasurementListResult{}, nil
}

func (stubMeasurementService) Transition(ctx context.Context, branchID, id, actorID uuid.UUID, target enums.MeasurementStatus, note *string) (*measurements.MeasurementDTO, error) {
	panic("unimplemented")
}

type stubQuoteService struct{}

func (stubQuoteService) PriceDraft(ctx context.Context, branchID uuid.UUID, input quotes.DraftInput) (*quotes.PricedQuote, error) {
	return &quotes.PricedQuote{}, nil
}

func (stubQuoteService) Submit(ctx context.Context, branchID, measurementID, actorID uuid.UUID, input quotes.DraftInput) (*quotes.QuoteDTO, error) {
	panic("unimplemented")
}

func (stubQuoteService) GetForMeasurement(ctx context.Context, branchID, measurementID uuid.UUID) (*quotes.QuoteDTO, error) {
	return &quotes.QuoteDTO{
		ID:            uuid.New(),
		MeasurementID: measurementID,
		Subtotal:      decimal.Zero,
		Total:         decimal.Zero,
	}, nil
}

type stubBranchService struct{}

func (stubBranchService) GetBranch(ctx context.Context, branchID uuid.UUID) (*branches.BranchDTO, error) {
	return &branches.BranchDTO{ID: branchID}, nil
}

func (stubBranchService) ListUsers(ctx context.Context, branchID uuid.UUID) ([]branches.UserDTO, error) {
	return []branches.UserDTO{}, nil
}

func (stubBranchService) ListTeams(ctx context.Context, branchID uuid.UUID) ([]branches.TeamDTO, error) {
	return []branches.TeamDTO{}, nil
}

func (stubBranchService) CreateTeam(ctx context.Context, branchID uuid.UUID, input branches.CreateTeamInput) (*branches.TeamDTO, error) {
	panic("unimplemented")
}

func (stubBranchService) AddTeamMember(ctx context.Context, branchID, teamID, userID uuid.UUID) (*branches.TeamDTO, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	quoteService := stubQuoteService{}
	measurementService := stubMeasurementService{}
	branchService := stubBranchService{}

	builder, err := documents.NewBuilder(quoteService, measurementService, branchService)
	if err != nil {
		t.Fatalf("build document builder: %v", err)
	}

	return NewRouter(Deps{
		Config:       cfg,
		Logger:       logg,
		DB:           stubPinger{},
		Redis:        stubPinger{},
		Catalog:      stubCatalogService{},
		Measurements: measurementService,
		Quotes:       quoteService,
		Branches:     branchService,
		Documents:    builder,
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.MemberRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		BranchID: uuid.New(),
		Role:     role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestHealthReadyPingsDependencies(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for readiness got %d", resp.Code)
	}
}

func TestAPIGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAPIGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for catalog list got %d", resp.Code)
	}
}

func TestAPIGroupRejectsGarbageToken(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/branches/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token got %d", resp.Code)
	}
}

func TestCatalogUpsertRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	body := `{"name":"Pergola Classic","is_active":true,"dimension_matrix":{"500":[{"depth":300,"price":"450.00"}]}}`

	staff := httptest.NewRequest(http.MethodPut, "/api/v1/catalog/products/pergola-classic", strings.NewReader(body))
	staff.Header.Set("Content-Type", "application/json")
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff upsert got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodPut, "/api/v1/catalog/products/pergola-classic", strings.NewReader(body))
	admin.Header.Set("Content-Type", "application/json")
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin upsert got %d", resp.Code)
	}
}

func TestPriceQuoteRejectsBadJSON(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/price", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestMeasurementRoutesAreMounted(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	token := buildToken(t, cfg, enums.MemberRoleManager)

	list := httptest.NewRequest(http.MethodGet, "/api/v1/measurements", nil)
	list.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, list)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for measurement list got %d", resp.Code)
	}

	doc := httptest.NewRequest(http.MethodGet, "/api/v1/measurements/"+uuid.NewString()+"/quote/document", nil)
	doc.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, doc)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for quote document got %d", resp.Code)
	}
}

func TestMeasurementGetRejectsMalformedID(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/measurements/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id got %d", resp.Code)
	}
}
