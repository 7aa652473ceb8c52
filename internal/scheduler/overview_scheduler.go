package scheduler

import (
	"context"

	"github.com/pawstore/pawstore-backend/internal/app/service"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// OverviewScheduler refreshes the cached admin dashboard snapshot on a
// fixed schedule so the first staff request of the day is warm.
type OverviewScheduler struct {
	cron            *cron.Cron
	overviewService service.OverviewService
}

func NewOverviewScheduler(overviewService service.OverviewService) *OverviewScheduler {
	return &OverviewScheduler{
		cron:            cron.New(),
		overviewService: overviewService,
	}
}

// Start registers the refresh job. Runs every 5 minutes.
func (s *OverviewScheduler) Start() error {
	_, err := s.cron.AddFunc("*/5 * * * *", func() {
		logger.Info("Starting scheduled overview refresh", nil)

		if _, err := s.overviewService.Refresh(context.Background()); err != nil {
			logger.Error("Failed to refresh overview from scheduler", err)
			return
		}

		logger.Info("Overview snapshot refreshed from scheduler", nil)
	})
	if err != nil {
		logger.Error("Failed to add cron job for overview refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Overview scheduler started (every 5 minutes)", nil)

	return nil
}

func (s *OverviewScheduler) Stop() {
	logger.Info("Stopping overview scheduler...", nil)
	s.cron.Stop()
	logger.Info("Overview scheduler stopped", nil)
}
