package service

import (
	"context"
	"math"
	"strconv"

	"go.uber.org/zap"

	"enterprise-core/domain"
	"enterprise-core/growth"
	"enterprise-core/repository"
)

type KpiService struct {
	repo   repository.KpiRepository
	cache  repository.CacheRepository
	logger *zap.Logger
}

// NewKpiService creates a new KpiService with the given repository and cache.
func NewKpiService(repo repository.KpiRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *KpiService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KpiService{repo: repo, cache: cache, logger: logger}
}

// cacheKey identifies an input pair by its exact bit patterns so that
// -0, NaN payloads and 0 never share an entry.
func cacheKey(current, previous float64) string {
	return CacheKeyPrefix + encodeBits(current) + ":" + encodeBits(previous)
}

func encodeBits(v float64) string {
	return strconv.FormatUint(math.Float64bits(v), 16)
}

func decodeBits(s string) (float64, bool) {
	bits, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, false
	}
	return math.Float64frombits(bits), true
}

// CalculateGrowth computes the growth of input.Current over input.Previous.
// Cache and repository failures are logged and never affect the result.
func (s *KpiService) CalculateGrowth(
	ctx context.Context,
	input domain.KpiInput,
) domain.KpiResult {
	current, previous := float64(input.Current), float64(input.Previous)

	result := domain.KpiResult{
		Current:  input.Current,
		Previous: input.Previous,
		Growth:   domain.Float(s.lookupGrowth(ctx, current, previous)),
	}

	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(ctx, input, result); err != nil {
		s.logger.Warn("failed to save kpi growth", zap.Error(err))
	}

	return result
}

func (s *KpiService) lookupGrowth(ctx context.Context, current, previous float64) float64 {
	key := cacheKey(current, previous)

	if raw, ok := s.cache.Get(ctx, key); ok {
		if g, ok := decodeBits(raw); ok {
			s.logger.Debug("kpi growth cache hit", zap.String("key", key))
			return g
		}
		s.logger.Warn("discarding malformed cache entry", zap.String("key", key))
	}

	if previous == 0 {
		s.logger.Debug("kpi growth without baseline", zap.Float64("current", current))
	}
	g := growth.CalculateKpiGrowth(current, previous)

	if err := s.cache.Set(ctx, key, encodeBits(g)); err != nil {
		s.logger.Warn("failed to cache kpi growth", zap.String("key", key), zap.Error(err))
	}
	return g
}

// History returns the most recently computed results, newest first.
func (s *KpiService) History(ctx context.Context, limit int) []domain.KpiResult {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	results, err := s.repo.Recent(ctx, limit)
	if err != nil {
		s.logger.Warn("failed to load kpi history", zap.Error(err))
		return []domain.KpiResult{}
	}
	return results
}
