package service

import (
	"context"
	"time"

	"checkinly-be/internal/pkg/logger"
	"checkinly-be/internal/repository/unitofwork"
)

// RetentionService prunes old webhook event audit rows on a timer.
type RetentionService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	maxAge     time.Duration
	interval   time.Duration
}

func NewRetentionService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger, maxAge time.Duration) *RetentionService {
	if maxAge <= 0 {
		maxAge = 90 * 24 * time.Hour
	}
	return &RetentionService{
		uowFactory: uowFactory,
		logger:     log,
		maxAge:     maxAge,
		interval:   24 * time.Hour,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (s *RetentionService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *RetentionService) sweep(ctx context.Context) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cutoff := time.Now().Add(-s.maxAge)

	deleted, err := uow.WebhookEventRepository().DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("RetentionService", "Webhook event sweep failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if deleted > 0 {
		s.logger.Info("RetentionService", "Pruned webhook events", map[string]interface{}{"deleted": deleted})
	}
}
