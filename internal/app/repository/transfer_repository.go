package repository

import (
	"errors"
	"time"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

// ErrTransferAlreadyReceived means the transfer was accepted earlier;
// accepting is one-shot.
var ErrTransferAlreadyReceived = errors.New("transfer already received")

type TransferRepository interface {
	Create(transfer *model.PlateTransfer) error
	FindByID(transferID uint) (*model.PlateTransfer, error)
	FindIncoming(userID uint) ([]model.PlateTransfer, error)
	FindOutgoing(storeID uint) ([]model.PlateTransfer, error)
	// Accept marks the transfer received and moves the listing to the
	// recipient in one transaction.
	Accept(transferID, userID uint) error
	Delete(transferID, storeID uint) error
}

type transferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(transfer *model.PlateTransfer) error {
	logger.Debug("Creating plate transfer", map[string]interface{}{
		"plates_id": transfer.PlatesID,
		"user_id":   transfer.UserID,
		"store_id":  transfer.StoreID,
	})

	if err := r.db.Create(transfer).Error; err != nil {
		logger.Error("Failed to create plate transfer", err, map[string]interface{}{
			"plates_id": transfer.PlatesID,
		})
		return err
	}
	return nil
}

func (r *transferRepository) FindByID(transferID uint) (*model.PlateTransfer, error) {
	var transfer model.PlateTransfer
	if err := r.db.First(&transfer, transferID).Error; err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *transferRepository) FindIncoming(userID uint) ([]model.PlateTransfer, error) {
	var transfers []model.PlateTransfer
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transfers).Error
	if err != nil {
		logger.Error("Failed to list incoming transfers", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return transfers, nil
}

func (r *transferRepository) FindOutgoing(storeID uint) ([]model.PlateTransfer, error) {
	var transfers []model.PlateTransfer
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&transfers).Error
	if err != nil {
		logger.Error("Failed to list outgoing transfers", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return transfers, nil
}

func (r *transferRepository) Accept(transferID, userID uint) error {
	logger.Debug("Accepting plate transfer", map[string]interface{}{
		"transfer_id": transferID,
		"user_id":     userID,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		var transfer model.PlateTransfer
		if err := tx.Where("id = ? AND user_id = ?", transferID, userID).
			First(&transfer).Error; err != nil {
			return err
		}
		if transfer.Received {
			return ErrTransferAlreadyReceived
		}

		now := time.Now()
		result := tx.Model(&model.PlateTransfer{}).
			Where("id = ? AND received = ?", transferID, false).
			Updates(map[string]interface{}{
				"received":    true,
				"received_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTransferAlreadyReceived
		}

		// The listing changes hands unlisted; the new owner relists on
		// their own terms.
		result = tx.Model(&model.Plate{}).
			Where("id = ?", transfer.PlatesID).
			Updates(map[string]interface{}{
				"user_id":    userID,
				"is_selling": false,
				"is_pin":     false,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Delete retracts a pending transfer; only the sending store may do so, and
// only before acceptance.
func (r *transferRepository) Delete(transferID, storeID uint) error {
	logger.Debug("Deleting plate transfer", map[string]interface{}{
		"transfer_id": transferID,
		"store_id":    storeID,
	})

	result := r.db.Where("id = ? AND store_id = ? AND received = ?", transferID, storeID, false).
		Delete(&model.PlateTransfer{})
	if result.Error != nil {
		logger.Error("Failed to delete transfer", result.Error, map[string]interface{}{
			"transfer_id": transferID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
