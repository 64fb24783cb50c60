package service

import (
	"errors"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrTransferNotFound        = errors.New("transfer not found")
	ErrTransferAlreadyReceived = errors.New("transfer already received")
	ErrTransferSelf            = errors.New("cannot transfer plate to its owner")
)

type TransferService interface {
	// Offer creates a transfer of the store's listing to the recipient.
	Offer(storeID, platesID, recipientID uint) (*model.PlateTransfer, error)
	GetIncoming(userID uint) ([]model.PlateTransfer, error)
	GetOutgoing(storeID uint) ([]model.PlateTransfer, error)
	// Accept marks the transfer received and hands the listing to the
	// recipient, returning the received transfer record.
	Accept(transferID, userID uint) (*model.PlateTransfer, error)
	Retract(transferID, storeID uint) error
}

type transferService struct {
	transferRepo repository.TransferRepository
	plateRepo    repository.PlateRepository
}

func NewTransferService(
	transferRepo repository.TransferRepository,
	plateRepo repository.PlateRepository,
) TransferService {
	return &transferService{
		transferRepo: transferRepo,
		plateRepo:    plateRepo,
	}
}

func (s *transferService) Offer(storeID, platesID, recipientID uint) (*model.PlateTransfer, error) {
	logger.Info("Offering plate transfer", map[string]interface{}{
		"store_id":     storeID,
		"plates_id":    platesID,
		"recipient_id": recipientID,
	})

	plate, err := s.plateRepo.FindByID(platesID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlateNotFound
		}
		return nil, err
	}
	if plate.UserID != storeID {
		return nil, ErrPlateNotOwned
	}
	if recipientID == storeID {
		return nil, ErrTransferSelf
	}

	transfer := &model.PlateTransfer{
		PlatesID: platesID,
		UserID:   recipientID,
		StoreID:  storeID,
	}
	if err := s.transferRepo.Create(transfer); err != nil {
		logger.Error("Failed to offer plate transfer", err, map[string]interface{}{
			"plates_id": platesID,
		})
		return nil, err
	}

	logger.Info("Plate transfer offered", map[string]interface{}{
		"transfer_id": transfer.ID,
		"plates_id":   platesID,
	})
	return transfer, nil
}

func (s *transferService) GetIncoming(userID uint) ([]model.PlateTransfer, error) {
	return s.transferRepo.FindIncoming(userID)
}

func (s *transferService) GetOutgoing(storeID uint) ([]model.PlateTransfer, error) {
	return s.transferRepo.FindOutgoing(storeID)
}

func (s *transferService) Accept(transferID, userID uint) (*model.PlateTransfer, error) {
	logger.Info("Accepting plate transfer", map[string]interface{}{
		"transfer_id": transferID,
		"user_id":     userID,
	})

	if err := s.transferRepo.Accept(transferID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrTransferAlreadyReceived):
			return nil, ErrTransferAlreadyReceived
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrTransferNotFound
		default:
			logger.Error("Failed to accept plate transfer", err, map[string]interface{}{
				"transfer_id": transferID,
			})
			return nil, err
		}
	}

	transfer, err := s.transferRepo.FindByID(transferID)
	if err != nil {
		logger.Error("Failed to reload accepted transfer", err, map[string]interface{}{
			"transfer_id": transferID,
		})
		return nil, err
	}

	logger.Info("Plate transfer accepted", map[string]interface{}{
		"transfer_id": transferID,
		"user_id":     userID,
	})
	return transfer, nil
}

func (s *transferService) Retract(transferID, storeID uint) error {
	if err := s.transferRepo.Delete(transferID, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransferNotFound
		}
		logger.Error("Failed to retract plate transfer", err, map[string]interface{}{
			"transfer_id": transferID,
		})
		return err
	}
	return nil
}
