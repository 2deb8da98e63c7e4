package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"greenbasket/internal/config"
	"greenbasket/internal/features/activity"
	"greenbasket/internal/features/inventory"
)

// Scheduler runs the background maintenance jobs: nightly purge of old
// activity entries and a periodic low stock sweep that feeds the
// inventory alert hub.
type Scheduler struct {
	cron      *cron.Cron
	config    *config.Config
	activity  activity.ActivityService
	inventory inventory.InventoryService
	logger    *zap.Logger
}

func NewScheduler(
	cfg *config.Config,
	activityService activity.ActivityService,
	inventoryService inventory.InventoryService,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		config:    cfg,
		activity:  activityService,
		inventory: inventoryService,
		logger:    logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeActivity); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("*/15 * * * *", s.sweepLowStock); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.Int("activity_retention_days", s.config.ActivityRetentionDays))
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) purgeActivity() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	deleted, err := s.activity.Purge(ctx, s.config.ActivityRetentionDays)
	if err != nil {
		s.logger.Error("activity purge failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.logger.Info("purged old activity entries", zap.Int64("deleted", deleted))
	}
}

func (s *Scheduler) sweepLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := s.inventory.ScanLowStock(ctx)
	if err != nil {
		s.logger.Error("low stock sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		s.logger.Warn("products at or below low stock threshold", zap.Int("count", count))
	}
}
