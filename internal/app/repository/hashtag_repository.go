package repository

import (
	"errors"
	"strings"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

type HashtagRepository interface {
	// Attach links a tag to a listing, creating the tag on first use. The
	// tag is stored lowercased.
	Attach(platesID uint, tag string) (*model.Hashtag, error)
	Detach(platesID, hashtagID uint) error
	FindByPlate(platesID uint) ([]model.Hashtag, error)
	FindPlateIDsByTag(tag string) ([]uint, error)
}

type hashtagRepository struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

func (r *hashtagRepository) Attach(platesID uint, tag string) (*model.Hashtag, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))

	logger.Debug("Attaching hashtag to plate", map[string]interface{}{
		"plates_id": platesID,
		"tag":       tag,
	})

	var hashtag model.Hashtag
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag = ?", tag).First(&hashtag).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			hashtag = model.Hashtag{Tag: tag}
			if err := tx.Create(&hashtag).Error; err != nil {
				return err
			}
		}
		return tx.Create(&model.PlateHashtag{
			PlatesID:  platesID,
			HashtagID: hashtag.ID,
		}).Error
	})
	if err != nil {
		logger.Error("Failed to attach hashtag", err, map[string]interface{}{
			"plates_id": platesID,
			"tag":       tag,
		})
		return nil, err
	}
	return &hashtag, nil
}

func (r *hashtagRepository) Detach(platesID, hashtagID uint) error {
	logger.Debug("Detaching hashtag from plate", map[string]interface{}{
		"plates_id":  platesID,
		"hashtag_id": hashtagID,
	})

	result := r.db.Where("plates_id = ? AND hashtag_id = ?", platesID, hashtagID).
		Delete(&model.PlateHashtag{})
	if result.Error != nil {
		logger.Error("Failed to detach hashtag", result.Error, map[string]interface{}{
			"plates_id": platesID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *hashtagRepository) FindByPlate(platesID uint) ([]model.Hashtag, error) {
	var hashtags []model.Hashtag
	err := r.db.Model(&model.Hashtag{}).
		Joins("JOIN plates_hashtag ON plates_hashtag.hashtag_id = hashtag.id").
		Where("plates_hashtag.plates_id = ?", platesID).
		Order("plates_hashtag.created_at ASC").
		Find(&hashtags).Error
	if err != nil {
		logger.Error("Failed to list plate hashtags", err, map[string]interface{}{
			"plates_id": platesID,
		})
		return nil, err
	}
	return hashtags, nil
}

func (r *hashtagRepository) FindPlateIDsByTag(tag string) ([]uint, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))

	var ids []uint
	err := r.db.Model(&model.PlateHashtag{}).
		Joins("JOIN hashtag ON hashtag.id = plates_hashtag.hashtag_id").
		Where("hashtag.tag = ?", tag).
		Pluck("plates_hashtag.plates_id", &ids).Error
	if err != nil {
		logger.Error("Failed to find plates by hashtag", err, map[string]interface{}{
			"tag": tag,
		})
		return nil, err
	}
	return ids, nil
}
