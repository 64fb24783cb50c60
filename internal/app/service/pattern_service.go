package service

import (
	"time"

	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/internal/pattern"
	"github.com/app789plates/plates-backend/pkg/logger"
)

const reclassifyBatchSize = 500

// ReclassifyReport summarizes one full backfill run.
type ReclassifyReport struct {
	Plates      int `json:"plates"`
	Memberships int `json:"memberships"`
}

type PatternService interface {
	Categories() []pattern.Category
	// CategorySize reports how many membership rows a category holds.
	CategorySize(category string) (int64, error)
	// ReclassifyAll re-derives every listing's category memberships from its
	// current facets. Safe to re-run; each listing's rows are cleared before
	// re-recording.
	ReclassifyAll() (*ReclassifyReport, error)
}

type patternService struct {
	patternRepo repository.PatternRepository
	plateRepo   repository.PlateRepository
}

func NewPatternService(
	patternRepo repository.PatternRepository,
	plateRepo repository.PlateRepository,
) PatternService {
	return &patternService{
		patternRepo: patternRepo,
		plateRepo:   plateRepo,
	}
}

func (s *patternService) Categories() []pattern.Category {
	return pattern.Catalog()
}

func (s *patternService) CategorySize(category string) (int64, error) {
	if !pattern.Valid(pattern.Category(category)) {
		return 0, ErrInvalidCategory
	}
	return s.patternRepo.CountByCategory(pattern.Category(category))
}

func (s *patternService) ReclassifyAll() (*ReclassifyReport, error) {
	logger.Info("Starting full pattern reclassification")

	report := &ReclassifyReport{}
	start := time.Now()
	afterID := uint(0)

	for {
		plates, err := s.plateRepo.FindFacetsBatch(afterID, reclassifyBatchSize)
		if err != nil {
			logger.Error("Failed to fetch reclassification batch", err, map[string]interface{}{
				"after_id": afterID,
			})
			return nil, err
		}
		if len(plates) == 0 {
			break
		}

		for _, plate := range plates {
			categories := pattern.Classify(pattern.Facets{
				FrontText:     plate.FrontText,
				FrontNumber:   plate.FrontNumber,
				BackNumber:    plate.BackNumber,
				VehicleTypeID: plate.VehicleTypeID,
			})

			if err := s.patternRepo.DeleteByPlate(plate.ID); err != nil {
				return nil, err
			}
			if err := s.patternRepo.RecordMemberships(plate.ID, categories, start); err != nil {
				return nil, err
			}

			report.Plates++
			report.Memberships += len(categories)
		}

		afterID = plates[len(plates)-1].ID
	}

	logger.Info("Pattern reclassification finished", map[string]interface{}{
		"plates":      report.Plates,
		"memberships": report.Memberships,
		"duration":    time.Since(start).String(),
	})
	return report, nil
}
