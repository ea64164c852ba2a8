package repository

import (
	"context"

	"enterprise-core/domain"
)

type KpiRepository interface {
	Save(ctx context.Context, input domain.KpiInput, result domain.KpiResult) error
	Recent(ctx context.Context, limit int) ([]domain.KpiResult, error)
}
