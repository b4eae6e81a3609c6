package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/enroll-flow-api/internal/models"
	appErrors "github.com/noah-isme/enroll-flow-api/pkg/errors"
)

const catalogBundleCacheKey = "enroll:catalog:bundle"

// CatalogSource is the reference data reader the catalog service fronts.
// Both the static seed and the database repository satisfy it.
type CatalogSource interface {
	Bundle(ctx context.Context) (*models.Catalog, error)
	PackageByID(ctx context.Context, id string) (*models.Package, error)
	Countries(ctx context.Context) ([]models.Country, error)
	PhoneCodes(ctx context.Context) ([]models.PhoneCode, error)
	PaymentMethods(ctx context.Context, category models.PaymentCategory) ([]models.PaymentMethod, error)
	InstallmentProviders(ctx context.Context) ([]models.InstallmentProvider, error)
	CountryByCode(ctx context.Context, code string) (*models.Country, error)
	ExchangeRate(ctx context.Context, currency string) (decimal.Decimal, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CatalogService fronts the reference data source (static or database) and
// caches the full bundle in Redis. Lookup misses are translated into typed
// not-found errors; sql.ErrNoRows never escapes this layer.
type CatalogService struct {
	source CatalogSource
	cache  catalogCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCatalogService(source CatalogSource, cache catalogCache, ttl time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{source: source, cache: cache, ttl: ttl, logger: logger}
}

// Bundle returns the full reference data set, from cache when fresh.
func (s *CatalogService) Bundle(ctx context.Context) (*models.Catalog, error) {
	if s.cache != nil {
		var cached models.Catalog
		if err := s.cache.Get(ctx, catalogBundleCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	bundle, err := s.source.Bundle(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogBundleCacheKey, bundle, s.ttl); err != nil {
			s.logger.Warn("catalog bundle cache write failed", zap.Error(err))
		}
	}
	return bundle, nil
}

// PackageByID resolves a package or a typed not-found error.
func (s *CatalogService) PackageByID(ctx context.Context, id string) (*models.Package, error) {
	pkg, err := s.source.PackageByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "package not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load package")
	}
	return pkg, nil
}

func (s *CatalogService) Countries(ctx context.Context) ([]models.Country, error) {
	return s.source.Countries(ctx)
}

func (s *CatalogService) PhoneCodes(ctx context.Context) ([]models.PhoneCode, error) {
	return s.source.PhoneCodes(ctx)
}

func (s *CatalogService) PaymentMethods(ctx context.Context, category models.PaymentCategory) ([]models.PaymentMethod, error) {
	return s.source.PaymentMethods(ctx, category)
}

func (s *CatalogService) InstallmentProviders(ctx context.Context) ([]models.InstallmentProvider, error) {
	return s.source.InstallmentProviders(ctx)
}

// CountryByCode resolves a billing country or a typed not-found error.
func (s *CatalogService) CountryByCode(ctx context.Context, code string) (*models.Country, error) {
	country, err := s.source.CountryByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "country not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load country")
	}
	return country, nil
}

// ExchangeRate resolves a display rate; zero with nil error means no rate is
// published for the currency and the foreign line should be omitted.
func (s *CatalogService) ExchangeRate(ctx context.Context, currency string) (decimal.Decimal, error) {
	rate, err := s.source.ExchangeRate(ctx, currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exchange rate")
	}
	return rate, nil
}
