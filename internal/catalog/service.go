package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
	pkgredis "github.com/fuatkeles/aufmass-app-sub001/pkg/redis"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/types"
)

// Service exposes catalog read and maintenance operations.
type Service interface {
	ListProducts(ctx context.Context) ([]ProductSummary, error)
	GetProduct(ctx context.Context, slug string) (*ProductDetail, error)
	UpsertProduct(ctx context.Context, input UpsertProductInput) (*ProductDetail, error)
}

// UpsertProductInput holds the validated payload to create or replace a
// catalog entry.
type UpsertProductInput struct {
	Slug            string
	Name            string
	IsActive        bool
	DimensionMatrix types.DimensionMatrix
	SpecFields      json.RawMessage
}

type cache interface {
	CatalogKey(parts ...string) string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// service implements the catalog service.
type service struct {
	repo     *Repository
	cache    cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService constructs a catalog service instance. The cache is optional;
// without it every read goes to the database.
func NewService(repo *Repository, cache cache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL, logg: logg}, nil
}

const listCacheKey = "list"

// ListProducts returns the active catalog, served from cache when warm.
func (s *service) ListProducts(ctx context.Context) ([]ProductSummary, error) {
	if s.cache != nil {
		var cached []ProductSummary
		if ok := s.readCache(ctx, s.cache.CatalogKey(listCacheKey), &cached); ok {
			return cached, nil
		}
	}

	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog products")
	}

	summaries := make([]ProductSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, toSummary(row))
	}

	if s.cache != nil {
		s.writeCache(ctx, s.cache.CatalogKey(listCacheKey), summaries)
	}
	return summaries, nil
}

// GetProduct returns the full product detail for a slug.
func (s *service) GetProduct(ctx context.Context, slug string) (*ProductDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}

	if s.cache != nil {
		var cached ProductDetail
		if ok := s.readCache(ctx, s.cache.CatalogKey(slug), &cached); ok {
			return &cached, nil
		}
	}

	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog product")
	}

	detail := toDetail(product)
	if s.cache != nil {
		s.writeCache(ctx, s.cache.CatalogKey(slug), detail)
	}
	return detail, nil
}

// UpsertProduct creates or replaces a catalog entry and invalidates the
// affected cache keys.
func (s *service) UpsertProduct(ctx context.Context, input UpsertProductInput) (*ProductDetail, error) {
	input.Slug = strings.TrimSpace(input.Slug)
	input.Name = strings.TrimSpace(input.Name)
	if input.Slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if len(input.DimensionMatrix) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dimension matrix must not be empty")
	}

	existing, err := s.repo.FindBySlug(ctx, input.Slug)
	switch {
	case err == nil:
		existing.Name = input.Name
		existing.IsActive = input.IsActive
		existing.DimensionMatrix = input.DimensionMatrix
		existing.SpecFields = input.SpecFields
		if _, err := s.repo.Update(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update catalog product")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = &models.Product{
			ID:              uuid.New(),
			Slug:            input.Slug,
			Name:            input.Name,
			IsActive:        input.IsActive,
			DimensionMatrix: input.DimensionMatrix,
			SpecFields:      input.SpecFields,
		}
		if _, err := s.repo.Create(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create catalog product")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog product")
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, s.cache.CatalogKey(listCacheKey), s.cache.CatalogKey(input.Slug)); err != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{"slug": input.Slug, "error": err.Error()})
			s.logg.Warn(logCtx, "catalog cache invalidation failed")
		}
	}
	return toDetail(existing), nil
}

func (s *service) readCache(ctx context.Context, key string, out any) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, pkgredis.ErrCacheMiss) {
			s.logg.Warn(s.logg.WithField(ctx, "key", key), "catalog cache read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "key", key), "catalog cache entry corrupt")
		return false
	}
	return true
}

func (s *service) writeCache(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "key", key), "catalog cache write failed")
	}
}
