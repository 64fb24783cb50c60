package repository

import (
	"time"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/internal/pattern"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

type PatternRepository interface {
	RecordMemberships(platesID uint, categories []pattern.Category, at time.Time) error
	CountByCategory(category pattern.Category) (int64, error)
	DeleteByPlate(platesID uint) error
}

type patternRepository struct {
	db *gorm.DB
}

func NewPatternRepository(db *gorm.DB) PatternRepository {
	return &patternRepository{db: db}
}

// recordMemberships appends one membership row per category on the given
// handle, which may be a transaction. Appends are not idempotent; duplicate
// rows are harmless because memberships are read as an existence filter.
func recordMemberships(tx *gorm.DB, platesID uint, categories []pattern.Category, at time.Time) error {
	if len(categories) == 0 {
		return nil
	}
	rows := make([]model.PatternMembership, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, model.PatternMembership{
			PlatesID:  platesID,
			Category:  string(category),
			CreatedAt: at,
		})
	}
	return tx.Create(&rows).Error
}

func (r *patternRepository) RecordMemberships(platesID uint, categories []pattern.Category, at time.Time) error {
	logger.Debug("Recording pattern memberships in database", map[string]interface{}{
		"plates_id": platesID,
		"count":     len(categories),
	})

	if err := recordMemberships(r.db, platesID, categories, at); err != nil {
		logger.Error("Failed to record pattern memberships in database", err, map[string]interface{}{
			"plates_id": platesID,
		})
		return err
	}
	return nil
}

func (r *patternRepository) CountByCategory(category pattern.Category) (int64, error) {
	var count int64
	err := r.db.Model(&model.PatternMembership{}).
		Where("category = ?", string(category)).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count pattern memberships", err, map[string]interface{}{
			"category": category,
		})
		return 0, err
	}
	return count, nil
}

// DeleteByPlate drops a plate's membership rows; the reclassification
// backfill uses it so re-runs do not pile up duplicates.
func (r *patternRepository) DeleteByPlate(platesID uint) error {
	err := r.db.Where("plates_id = ?", platesID).Delete(&model.PatternMembership{}).Error
	if err != nil {
		logger.Error("Failed to delete pattern memberships", err, map[string]interface{}{
			"plates_id": platesID,
		})
	}
	return err
}
