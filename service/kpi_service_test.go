package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"enterprise-core/domain"
	"enterprise-core/repository"
)

type MockKpiRepository struct {
	SaveCalled bool
	ForceError bool
	Saved      []domain.KpiResult
}

func (m *MockKpiRepository) Save(
	_ context.Context,
	_ domain.KpiInput,
	result domain.KpiResult,
) error {
	m.SaveCalled = true
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, result)
	return nil
}

func (m *MockKpiRepository) Recent(_ context.Context, limit int) ([]domain.KpiResult, error) {
	if m.ForceError {
		return nil, errors.New("recent error")
	}
	if limit > len(m.Saved) {
		limit = len(m.Saved)
	}
	return m.Saved[:limit], nil
}

type failingCache struct {
	getValue string
	getOK    bool
}

func (c *failingCache) Get(context.Context, string) (string, bool) {
	return c.getValue, c.getOK
}

func (c *failingCache) Set(context.Context, string, string) error {
	return errors.New("cache down")
}

func TestCalculateGrowth(t *testing.T) {
	mockRepo := &MockKpiRepository{}
	service := NewKpiService(mockRepo, repository.NewMockCache(), zap.NewNop())

	result := service.CalculateGrowth(context.Background(), domain.KpiInput{Current: 150, Previous: 100})

	assert.Equal(t, domain.Float(50), result.Growth)
	assert.Equal(t, domain.Float(150), result.Current)
	assert.Equal(t, domain.Float(100), result.Previous)
	assert.True(t, mockRepo.SaveCalled)
}

func TestCalculateGrowth_ZeroPrevious(t *testing.T) {
	service := NewKpiService(&MockKpiRepository{}, repository.NewMockCache(), nil)

	result := service.CalculateGrowth(context.Background(), domain.KpiInput{
		Current:  domain.Float(math.NaN()),
		Previous: domain.Float(math.Copysign(0, -1)),
	})

	assert.Equal(t, domain.Float(0), result.Growth)
}

func TestCalculateGrowth_CachesByBits(t *testing.T) {
	cache := repository.NewMockCache()
	service := NewKpiService(&MockKpiRepository{}, cache, zap.NewNop())
	ctx := context.Background()

	service.CalculateGrowth(ctx, domain.KpiInput{Current: 120, Previous: 100})
	service.CalculateGrowth(ctx, domain.KpiInput{Current: 120, Previous: 100})
	service.CalculateGrowth(ctx, domain.KpiInput{Current: 5, Previous: 0})
	service.CalculateGrowth(ctx, domain.KpiInput{Current: 5, Previous: domain.Float(math.Copysign(0, -1))})

	assert.Len(t, cache.Data, 3)
	assert.Equal(t, encodeBits(20), cache.Data[cacheKey(120, 100)])
}

func TestCalculateGrowth_UsesCachedValue(t *testing.T) {
	cache := repository.NewMockCache()
	cache.Data[cacheKey(1, 2)] = encodeBits(math.Inf(1))
	service := NewKpiService(&MockKpiRepository{}, cache, zap.NewNop())

	result := service.CalculateGrowth(context.Background(), domain.KpiInput{Current: 1, Previous: 2})

	assert.True(t, math.IsInf(float64(result.Growth), 1))
}

func TestCalculateGrowth_InfrastructureFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mockRepo := &MockKpiRepository{ForceError: true}
	cache := &failingCache{getValue: "not-hex", getOK: true}
	service := NewKpiService(mockRepo, cache, zap.New(core))

	result := service.CalculateGrowth(context.Background(), domain.KpiInput{Current: 100, Previous: 50})

	assert.Equal(t, domain.Float(100), result.Growth)
	assert.Equal(t, 1, logs.FilterMessage("discarding malformed cache entry").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to cache kpi growth").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to save kpi growth").Len())
}

func TestHistory(t *testing.T) {
	repo := repository.NewKpiRepositoryMemory(10)
	service := NewKpiService(repo, repository.NewMockCache(), zap.NewNop())
	ctx := context.Background()

	service.CalculateGrowth(ctx, domain.KpiInput{Current: 150, Previous: 100})
	service.CalculateGrowth(ctx, domain.KpiInput{Current: 100, Previous: 50})

	history := service.History(ctx, 0)
	require.Len(t, history, 2)
	assert.Equal(t, domain.Float(100), history[0].Growth)
	assert.Equal(t, domain.Float(50), history[1].Growth)

	assert.Len(t, service.History(ctx, 1), 1)
}

func TestHistory_RepositoryError(t *testing.T) {
	service := NewKpiService(&MockKpiRepository{ForceError: true}, repository.NewMockCache(), zap.NewNop())

	assert.Empty(t, service.History(context.Background(), 5))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "kpi:growth:4059000000000000:0", cacheKey(100, 0))
	assert.NotEqual(t, cacheKey(1, 0), cacheKey(1, math.Copysign(0, -1)))

	v, ok := decodeBits(encodeBits(-33.33333333333333))
	assert.True(t, ok)
	assert.Equal(t, -33.33333333333333, v)

	_, ok = decodeBits("zz")
	assert.False(t, ok)
}
