package scheduler

import (
	"github.com/app789plates/plates-backend/internal/app/service"
	"github.com/app789plates/plates-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ReclassifyScheduler runs the nightly pattern backfill so membership rows
// track catalog changes without manual intervention.
type ReclassifyScheduler struct {
	cron           *cron.Cron
	patternService service.PatternService
	spec           string
}

func NewReclassifyScheduler(patternService service.PatternService, spec string) *ReclassifyScheduler {
	return &ReclassifyScheduler{
		cron:           cron.New(),
		patternService: patternService,
		spec:           spec,
	}
}

func (s *ReclassifyScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting scheduled pattern reclassification", nil)

		report, err := s.patternService.ReclassifyAll()
		if err != nil {
			logger.Error("Scheduled pattern reclassification failed", err)
			return
		}

		logger.Info("Scheduled pattern reclassification finished", map[string]interface{}{
			"plates":      report.Plates,
			"memberships": report.Memberships,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for pattern reclassification", err)
		return err
	}

	s.cron.Start()
	logger.Info("Pattern reclassification scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *ReclassifyScheduler) Stop() {
	logger.Info("Stopping pattern reclassification scheduler...", nil)
	s.cron.Stop()
	logger.Info("Pattern reclassification scheduler stopped", nil)
}
