package service

import (
	"errors"
	"strings"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPlateNotFound    = errors.New("plate not found")
	ErrPlateDuplicate   = errors.New("plate already registered")
	ErrPlateNotOwned    = errors.New("plate does not belong to user")
	ErrPinLimitReached  = errors.New("pinned plate limit reached")
	ErrInvalidPlateData = errors.New("invalid plate data")
)

// CreatePlateInput carries the registration facets. Price seeds the price
// history unless the listing is temporary.
type CreatePlateInput struct {
	FrontText      string
	FrontNumber    int
	BackNumber     int
	VehicleTypeID  int
	PlatesTypeID   int
	ProvinceID     int
	SpecialFrontID *int
	PlatesURI      string
	Information    string
	Total          int
	IsTemporary    bool
	Price          int
}

type PlateService interface {
	Create(userID uint, input CreatePlateInput) (*model.Plate, error)
	GetByID(platesID uint) (*model.Plate, error)
	GetByOwner(ownerID uint, pinned bool) ([]model.Plate, error)
	AddPrice(userID, platesID uint, price int) error
	UpdateInformation(userID, platesID uint, information string) error
	UpdateSelling(userID, platesID uint, selling bool) error
	UpdateTotal(userID, platesID uint, total int) error
	UpdatePin(userID, platesID uint, pinned bool) error
	Delete(userID, platesID uint) error
}

type plateService struct {
	plateRepo repository.PlateRepository
}

func NewPlateService(plateRepo repository.PlateRepository) PlateService {
	return &plateService{plateRepo: plateRepo}
}

func validateInput(input CreatePlateInput) error {
	if input.BackNumber < 1 || input.BackNumber > 9999 {
		return ErrInvalidPlateData
	}
	if input.FrontNumber < 0 || input.FrontNumber > 99 {
		return ErrInvalidPlateData
	}
	if strings.TrimSpace(input.FrontText) == "" {
		return ErrInvalidPlateData
	}
	if input.VehicleTypeID <= 0 || input.PlatesTypeID <= 0 || input.ProvinceID <= 0 {
		return ErrInvalidPlateData
	}
	if !input.IsTemporary && input.Price <= 0 {
		return ErrInvalidPlateData
	}
	return nil
}

func (s *plateService) Create(userID uint, input CreatePlateInput) (*model.Plate, error) {
	logger.Info("Creating plate listing", map[string]interface{}{
		"user_id":     userID,
		"front_text":  input.FrontText,
		"back_number": input.BackNumber,
		"province_id": input.ProvinceID,
	})

	if err := validateInput(input); err != nil {
		logger.Warn("Rejected invalid plate input", map[string]interface{}{
			"user_id":     userID,
			"back_number": input.BackNumber,
		})
		return nil, err
	}

	plate := &model.Plate{
		FrontText:      strings.TrimSpace(input.FrontText),
		FrontNumber:    input.FrontNumber,
		BackNumber:     input.BackNumber,
		VehicleTypeID:  input.VehicleTypeID,
		PlatesTypeID:   input.PlatesTypeID,
		ProvinceID:     input.ProvinceID,
		SpecialFrontID: input.SpecialFrontID,
		PlatesURI:      input.PlatesURI,
		Information:    input.Information,
		Total:          input.Total,
		IsTemporary:    input.IsTemporary,
		IsSelling:      !input.IsTemporary,
		UserID:         userID,
	}

	if err := s.plateRepo.Create(plate, input.Price); err != nil {
		if errors.Is(err, repository.ErrDuplicatePlate) {
			logger.Warn("Plate already registered", map[string]interface{}{
				"user_id":     userID,
				"unique_text": plate.UniqueText,
			})
			return nil, ErrPlateDuplicate
		}
		logger.Error("Failed to create plate listing", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Plate listing created successfully", map[string]interface{}{
		"plates_id": plate.ID,
		"user_id":   userID,
	})
	return plate, nil
}

func (s *plateService) GetByID(platesID uint) (*model.Plate, error) {
	plate, err := s.plateRepo.FindByID(platesID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlateNotFound
		}
		return nil, err
	}
	return plate, nil
}

func (s *plateService) GetByOwner(ownerID uint, pinned bool) ([]model.Plate, error) {
	plates, err := s.plateRepo.FindByOwner(ownerID, pinned)
	if err != nil {
		logger.Error("Failed to fetch owner plates", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}
	return plates, nil
}

// requireOwner loads the listing and checks it belongs to the caller before
// any write.
func (s *plateService) requireOwner(userID, platesID uint) error {
	plate, err := s.plateRepo.FindByID(platesID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlateNotFound
		}
		return err
	}
	if plate.UserID != userID {
		logger.Warn("Rejected plate write by non-owner", map[string]interface{}{
			"plates_id": platesID,
			"user_id":   userID,
			"owner_id":  plate.UserID,
		})
		return ErrPlateNotOwned
	}
	return nil
}

func (s *plateService) AddPrice(userID, platesID uint, price int) error {
	if price <= 0 {
		return ErrInvalidPlateData
	}
	if err := s.requireOwner(userID, platesID); err != nil {
		return err
	}

	if err := s.plateRepo.AddPrice(platesID, price); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlateNotFound
		}
		logger.Error("Failed to add plate price", err, map[string]interface{}{
			"plates_id": platesID,
		})
		return err
	}

	logger.Info("Plate price updated", map[string]interface{}{
		"plates_id": platesID,
		"price":     price,
	})
	return nil
}

func (s *plateService) UpdateInformation(userID, platesID uint, information string) error {
	if err := s.requireOwner(userID, platesID); err != nil {
		return err
	}
	if err := s.plateRepo.UpdateInformation(platesID, information); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlateNotFound
		}
		return err
	}
	return nil
}

func (s *plateService) UpdateSelling(userID, platesID uint, selling bool) error {
	if err := s.requireOwner(userID, platesID); err != nil {
		return err
	}
	if err := s.plateRepo.UpdateSelling(platesID, selling); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlateNotFound
		}
		return err
	}
	return nil
}

func (s *plateService) UpdateTotal(userID, platesID uint, total int) error {
	if total < 0 {
		return ErrInvalidPlateData
	}
	if err := s.requireOwner(userID, platesID); err != nil {
		return err
	}
	if err := s.plateRepo.UpdateTotal(platesID, total); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlateNotFound
		}
		return err
	}
	return nil
}

func (s *plateService) UpdatePin(userID, platesID uint, pinned bool) error {
	if err := s.requireOwner(userID, platesID); err != nil {
		return err
	}

	if err := s.plateRepo.UpdatePin(platesID, pinned); err != nil {
		switch {
		case errors.Is(err, repository.ErrPinLimitReached):
			logger.Warn("Pinned plate limit reached", map[string]interface{}{
				"plates_id": platesID,
				"user_id":   userID,
			})
			return ErrPinLimitReached
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrPlateNotFound
		default:
			logger.Error("Failed to update plate pin", err, map[string]interface{}{
				"plates_id": platesID,
			})
			return err
		}
	}
	return nil
}

func (s *plateService) Delete(userID, platesID uint) error {
	if err := s.requireOwner(userID, platesID); err != nil {
		return err
	}

	if err := s.plateRepo.Delete(platesID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlateNotFound
		}
		logger.Error("Failed to delete plate", err, map[string]interface{}{
			"plates_id": platesID,
		})
		return err
	}

	logger.Info("Plate deleted", map[string]interface{}{
		"plates_id": platesID,
		"user_id":   userID,
	})
	return nil
}
