package repository

import (
	"errors"
	"time"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/internal/pattern"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

// MaxPinnedPlates is the system-wide cap on concurrently pinned listings.
const MaxPinnedPlates = 30

var (
	// ErrDuplicatePlate means a non-deleted listing already holds the same
	// identifying facet tuple.
	ErrDuplicatePlate = errors.New("plate with identical facets already exists")
	// ErrPinLimitReached means the system-wide pin cap is in effect.
	ErrPinLimitReached = errors.New("pinned plate limit reached")
)

type PlateRepository interface {
	Create(plate *model.Plate, price int) error
	FindByID(id uint) (*model.Plate, error)
	FindByOwner(ownerID uint, pinned bool) ([]model.Plate, error)
	AddPrice(platesID uint, price int) error
	UpdateInformation(platesID uint, information string) error
	UpdateSelling(platesID uint, isSelling bool) error
	UpdateTotal(platesID uint, total int) error
	UpdatePin(platesID uint, pin bool) error
	Delete(platesID uint) error
	FindFacetsBatch(afterID uint, limit int) ([]model.Plate, error)
}

type plateRepository struct {
	db *gorm.DB
}

func NewPlateRepository(db *gorm.DB) PlateRepository {
	return &plateRepository{db: db}
}

// Create inserts the listing, seeds its price history and records its pattern
// memberships in one transaction. Temporary listings get neither a price row
// nor memberships. Fails with ErrDuplicatePlate when a non-deleted listing
// already holds the same facet tuple.
func (r *plateRepository) Create(plate *model.Plate, price int) error {
	logger.Debug("Creating plate in database", map[string]interface{}{
		"front_text":  plate.FrontText,
		"back_number": plate.BackNumber,
		"province_id": plate.ProvinceID,
		"users_id":    plate.UserID,
	})

	uniqueText := model.UniqueKey(plate.ProvinceID, plate.VehicleTypeID, plate.FrontNumber, plate.FrontText, plate.BackNumber)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Plate{}).Where("unique_text = ?", uniqueText).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicatePlate
		}

		if err := tx.Create(plate).Error; err != nil {
			return err
		}

		if plate.IsTemporary {
			return nil
		}

		history := &model.PriceHistory{PlatesID: plate.ID, Price: price}
		if err := tx.Create(history).Error; err != nil {
			return err
		}

		categories := pattern.Classify(pattern.Facets{
			FrontText:     plate.FrontText,
			FrontNumber:   plate.FrontNumber,
			BackNumber:    plate.BackNumber,
			VehicleTypeID: plate.VehicleTypeID,
		})
		return recordMemberships(tx, plate.ID, categories, time.Now())
	})
	if err != nil {
		if errors.Is(err, ErrDuplicatePlate) {
			logger.Warn("Duplicate plate facets", map[string]interface{}{
				"unique_text": uniqueText,
			})
			return err
		}
		logger.Error("Failed to create plate in database", err, map[string]interface{}{
			"unique_text": uniqueText,
		})
		return err
	}

	logger.Debug("Plate created in database", map[string]interface{}{
		"plates_id": plate.ID,
	})
	return nil
}

func (r *plateRepository) FindByID(id uint) (*model.Plate, error) {
	logger.Debug("Finding plate by ID in database", map[string]interface{}{
		"plates_id": id,
	})

	var plate model.Plate
	if err := r.db.First(&plate, id).Error; err != nil {
		logger.Error("Failed to find plate by ID in database", err, map[string]interface{}{
			"plates_id": id,
		})
		return nil, err
	}
	return &plate, nil
}

// FindByOwner lists a store's pinned or unpinned listings, newest first.
func (r *plateRepository) FindByOwner(ownerID uint, pinned bool) ([]model.Plate, error) {
	logger.Debug("Finding plates by owner in database", map[string]interface{}{
		"users_id": ownerID,
		"pinned":   pinned,
	})

	var plates []model.Plate
	err := r.db.Where("user_id = ? AND is_pin = ?", ownerID, pinned).
		Order("created_at DESC").
		Find(&plates).Error
	if err != nil {
		logger.Error("Failed to find plates by owner in database", err, map[string]interface{}{
			"users_id": ownerID,
		})
		return nil, err
	}
	return plates, nil
}

// AddPrice appends a price-history row. The listing must exist; price rows
// never replace earlier ones.
func (r *plateRepository) AddPrice(platesID uint, price int) error {
	logger.Debug("Appending price history in database", map[string]interface{}{
		"plates_id": platesID,
		"price":     price,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Plate{}).Where("id = ?", platesID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&model.PriceHistory{PlatesID: platesID, Price: price}).Error
	})
}

func (r *plateRepository) updateField(platesID uint, column string, value interface{}) error {
	result := r.db.Model(&model.Plate{}).Where("id = ?", platesID).Update(column, value)
	if result.Error != nil {
		logger.Error("Failed to update plate in database", result.Error, map[string]interface{}{
			"plates_id": platesID,
			"column":    column,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *plateRepository) UpdateInformation(platesID uint, information string) error {
	return r.updateField(platesID, "information", information)
}

func (r *plateRepository) UpdateSelling(platesID uint, isSelling bool) error {
	return r.updateField(platesID, "is_selling", isSelling)
}

func (r *plateRepository) UpdateTotal(platesID uint, total int) error {
	return r.updateField(platesID, "total", total)
}

// UpdatePin sets or clears the pin flag. Setting it is a single conditional
// UPDATE whose predicate counts currently pinned listings, so two concurrent
// requests cannot both slip past the cap. Clearing is unconditional.
func (r *plateRepository) UpdatePin(platesID uint, pin bool) error {
	logger.Debug("Updating plate pin flag in database", map[string]interface{}{
		"plates_id": platesID,
		"pin":       pin,
	})

	if !pin {
		return r.updateField(platesID, "is_pin", false)
	}

	result := r.db.Model(&model.Plate{}).
		Where("id = ?", platesID).
		Where("(SELECT COUNT(*) FROM plates pinned WHERE pinned.is_pin = ? AND pinned.deleted_at IS NULL) < ?", true, MaxPinnedPlates).
		Update("is_pin", true)
	if result.Error != nil {
		logger.Error("Failed to pin plate in database", result.Error, map[string]interface{}{
			"plates_id": platesID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Zero rows means either the listing is gone or the cap is hit.
		var count int64
		if err := r.db.Model(&model.Plate{}).Where("id = ?", platesID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		logger.Warn("Pin limit reached", map[string]interface{}{
			"plates_id": platesID,
			"limit":     MaxPinnedPlates,
		})
		return ErrPinLimitReached
	}
	return nil
}

func (r *plateRepository) Delete(platesID uint) error {
	logger.Debug("Deleting plate from database", map[string]interface{}{
		"plates_id": platesID,
	})

	result := r.db.Delete(&model.Plate{}, platesID)
	if result.Error != nil {
		logger.Error("Failed to delete plate from database", result.Error, map[string]interface{}{
			"plates_id": platesID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindFacetsBatch pages through listings by id for the reclassification
// backfill. Returns up to limit rows with id greater than afterID.
func (r *plateRepository) FindFacetsBatch(afterID uint, limit int) ([]model.Plate, error) {
	var plates []model.Plate
	err := r.db.Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&plates).Error
	if err != nil {
		logger.Error("Failed to load plate batch from database", err, map[string]interface{}{
			"after_id": afterID,
		})
		return nil, err
	}
	return plates, nil
}
