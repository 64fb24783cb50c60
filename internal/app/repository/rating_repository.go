package repository

import (
	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

// RatingRepository stores one review per user per store; duplicates surface
// the unique-index violation untranslated.
type RatingRepository interface {
	Create(rating *model.Rating) error
	FindByStore(storeID uint) ([]model.Rating, error)
	Delete(ratingID, userID uint) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(rating *model.Rating) error {
	logger.Debug("Creating store rating", map[string]interface{}{
		"user_id":  rating.UserID,
		"store_id": rating.StoreID,
		"score":    rating.Score,
	})

	if err := r.db.Create(rating).Error; err != nil {
		logger.Error("Failed to create store rating", err, map[string]interface{}{
			"store_id": rating.StoreID,
		})
		return err
	}
	return nil
}

func (r *ratingRepository) FindByStore(storeID uint) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		logger.Error("Failed to list store ratings", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) Delete(ratingID, userID uint) error {
	logger.Debug("Deleting store rating", map[string]interface{}{
		"rating_id": ratingID,
		"user_id":   userID,
	})

	result := r.db.Where("id = ? AND user_id = ?", ratingID, userID).
		Delete(&model.Rating{})
	if result.Error != nil {
		logger.Error("Failed to delete store rating", result.Error, map[string]interface{}{
			"rating_id": ratingID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
