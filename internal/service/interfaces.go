package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"shelter_sync/internal/domain"
)

// Source yields fully mapped rows for one run. Fetch-all-then-load: the
// entire result set is materialized before the sink is touched.
type Source interface {
	Name() string
	FetchRows(ctx context.Context) ([]domain.AnimalRow, error)
}

type AnimalStore interface {
	EnsureSchema(ctx context.Context) error
	UpsertBatch(ctx context.Context, rows []domain.AnimalRow) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, stats *domain.RunStats) error
	Close() error
}
