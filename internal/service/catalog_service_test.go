package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enroll-flow-api/internal/models"
	"github.com/noah-isme/enroll-flow-api/internal/repository"
	appErrors "github.com/noah-isme/enroll-flow-api/pkg/errors"
)

type memoryCache struct {
	data map[string][]byte
	sets int
	hits int
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	m.hits++
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = raw
	m.sets++
	return nil
}

func TestCatalogServiceBundleUsesCache(t *testing.T) {
	cache := &memoryCache{}
	s := NewCatalogService(repository.NewStaticCatalog(), cache, time.Minute, zap.NewNop())
	ctx := context.Background()

	first, err := s.Bundle(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first.Packages)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 0, cache.hits)

	second, err := s.Bundle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.Packages[0].ID, second.Packages[0].ID)
}

func TestCatalogServiceTranslatesMisses(t *testing.T) {
	s := NewCatalogService(repository.NewStaticCatalog(), nil, 0, zap.NewNop())
	ctx := context.Background()

	_, err := s.PackageByID(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = s.CountryByCode(ctx, "ZZ")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceUnknownRateIsZero(t *testing.T) {
	s := NewCatalogService(repository.NewStaticCatalog(), nil, 0, zap.NewNop())

	rate, err := s.ExchangeRate(context.Background(), "XXX")
	require.NoError(t, err)
	assert.True(t, rate.IsZero())
}

func TestCatalogServicePaymentMethodFilter(t *testing.T) {
	s := NewCatalogService(repository.NewStaticCatalog(), nil, 0, zap.NewNop())

	cards, err := s.PaymentMethods(context.Background(), models.PaymentCategoryCard)
	require.NoError(t, err)
	require.NotEmpty(t, cards)
	for _, m := range cards {
		assert.Equal(t, models.PaymentCategoryCard, m.Category)
	}
}
