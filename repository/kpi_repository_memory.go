package repository

import (
	"context"
	"sync"

	"enterprise-core/domain"
)

const defaultHistoryCapacity = 100

// KpiRepositoryMemory keeps the most recent growth results in memory.
// Once capacity is reached the oldest result is overwritten.
type KpiRepositoryMemory struct {
	mu    sync.Mutex
	data  []domain.KpiResult
	next  int
	count int
}

// NewKpiRepositoryMemory creates a new in-memory KPI repository.
func NewKpiRepositoryMemory(capacity int) *KpiRepositoryMemory {
	if capacity <= 0 {
		capacity = defaultHistoryCapacity
	}
	return &KpiRepositoryMemory{
		data: make([]domain.KpiResult, capacity),
	}
}

// Save stores the growth result in memory.
func (r *KpiRepositoryMemory) Save(
	_ context.Context,
	_ domain.KpiInput,
	result domain.KpiResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[r.next] = result
	r.next = (r.next + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
	return nil
}

// Recent returns up to limit results, newest first. A non-positive limit
// returns everything stored.
func (r *KpiRepositoryMemory) Recent(_ context.Context, limit int) ([]domain.KpiResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > r.count {
		limit = r.count
	}

	out := make([]domain.KpiResult, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.data)) % len(r.data)
		out = append(out, r.data[idx])
	}
	return out, nil
}
