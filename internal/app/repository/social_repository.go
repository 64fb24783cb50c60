package repository

import (
	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

// SocialRepository manages the four user reaction relations. Adding an
// existing reaction surfaces the unique-index violation untranslated;
// removing an absent one returns gorm.ErrRecordNotFound.
type SocialRepository interface {
	LikePlate(userID, platesID uint) error
	UnlikePlate(userID, platesID uint) error
	SavePlate(userID, platesID uint) error
	UnsavePlate(userID, platesID uint) error
	LikeStore(userID, storeID uint) error
	UnlikeStore(userID, storeID uint) error
	SaveStore(userID, storeID uint) error
	UnsaveStore(userID, storeID uint) error
	FindLikedPlateIDs(userID uint) ([]uint, error)
	FindSavedPlateIDs(userID uint) ([]uint, error)
	FindLikedStoreIDs(userID uint) ([]uint, error)
	FindSavedStoreIDs(userID uint) ([]uint, error)
}

type socialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

func (r *socialRepository) create(record interface{}, op string, fields map[string]interface{}) error {
	logger.Debug(op, fields)
	if err := r.db.Create(record).Error; err != nil {
		logger.Error("Failed: "+op, err, fields)
		return err
	}
	return nil
}

func (r *socialRepository) remove(model interface{}, op string, query string, args ...interface{}) error {
	result := r.db.Where(query, args...).Delete(model)
	if result.Error != nil {
		logger.Error("Failed: "+op, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *socialRepository) LikePlate(userID, platesID uint) error {
	return r.create(&model.LikedPlate{UserID: userID, PlatesID: platesID},
		"Liking plate", map[string]interface{}{"user_id": userID, "plates_id": platesID})
}

func (r *socialRepository) UnlikePlate(userID, platesID uint) error {
	return r.remove(&model.LikedPlate{}, "Unliking plate",
		"user_id = ? AND plates_id = ?", userID, platesID)
}

func (r *socialRepository) SavePlate(userID, platesID uint) error {
	return r.create(&model.SavedPlate{UserID: userID, PlatesID: platesID},
		"Saving plate", map[string]interface{}{"user_id": userID, "plates_id": platesID})
}

func (r *socialRepository) UnsavePlate(userID, platesID uint) error {
	return r.remove(&model.SavedPlate{}, "Unsaving plate",
		"user_id = ? AND plates_id = ?", userID, platesID)
}

func (r *socialRepository) LikeStore(userID, storeID uint) error {
	return r.create(&model.LikedStore{UserID: userID, StoreID: storeID},
		"Liking store", map[string]interface{}{"user_id": userID, "store_id": storeID})
}

func (r *socialRepository) UnlikeStore(userID, storeID uint) error {
	return r.remove(&model.LikedStore{}, "Unliking store",
		"user_id = ? AND store_id = ?", userID, storeID)
}

func (r *socialRepository) SaveStore(userID, storeID uint) error {
	return r.create(&model.SavedStore{UserID: userID, StoreID: storeID},
		"Saving store", map[string]interface{}{"user_id": userID, "store_id": storeID})
}

func (r *socialRepository) UnsaveStore(userID, storeID uint) error {
	return r.remove(&model.SavedStore{}, "Unsaving store",
		"user_id = ? AND store_id = ?", userID, storeID)
}

func (r *socialRepository) FindLikedPlateIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.LikedPlate{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("plates_id", &ids).Error
	if err != nil {
		logger.Error("Failed to list liked plates", err, map[string]interface{}{"user_id": userID})
		return nil, err
	}
	return ids, nil
}

func (r *socialRepository) FindSavedPlateIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.SavedPlate{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("plates_id", &ids).Error
	if err != nil {
		logger.Error("Failed to list saved plates", err, map[string]interface{}{"user_id": userID})
		return nil, err
	}
	return ids, nil
}

func (r *socialRepository) FindLikedStoreIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.LikedStore{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("store_id", &ids).Error
	if err != nil {
		logger.Error("Failed to list liked stores", err, map[string]interface{}{"user_id": userID})
		return nil, err
	}
	return ids, nil
}

func (r *socialRepository) FindSavedStoreIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.SavedStore{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("store_id", &ids).Error
	if err != nil {
		logger.Error("Failed to list saved stores", err, map[string]interface{}{"user_id": userID})
		return nil, err
	}
	return ids, nil
}
