package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shelter_sync/internal/domain"
)

// ETLService drives one fetch→map→load cycle: all rows from the source, then
// a single transaction into the sink. Any failure along the way aborts the
// run with nothing committed.
type ETLService struct {
	source    Source
	animals   AnimalStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
}

func NewETLService(
	source Source,
	animals AnimalStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *ETLService {
	return &ETLService{
		source:    source,
		animals:   animals,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("source", source.Name()),
	}
}

func (s *ETLService) Run(ctx context.Context) (*domain.RunStats, error) {
	start := time.Now()
	s.logger.Info("starting run")

	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch animals: %w", err)
	}

	stats := &domain.RunStats{
		Source:  s.source.Name(),
		Fetched: len(rows),
	}

	if len(rows) == 0 {
		stats.Duration = time.Since(start)
		s.logger.Info("nothing to load", "duration", stats.Duration)
		return stats, nil
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.animals.EnsureSchema(txCtx); err != nil {
			return err
		}
		return s.animals.UpsertBatch(txCtx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("load animals: %w", err)
	}

	stats.Loaded = len(rows)
	stats.Duration = time.Since(start)

	// The run already committed; a lost report is not worth failing it.
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, stats); err != nil {
			s.logger.Warn("publish run report failed", "error", err)
		}
	}

	s.logger.Info("run completed",
		"fetched", stats.Fetched,
		"loaded", stats.Loaded,
		"duration", stats.Duration,
	)

	return stats, nil
}
