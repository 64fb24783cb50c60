package service

import (
	"errors"
	"strings"

	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReactionAlreadyExists = errors.New("reaction already recorded")
	ErrReactionNotFound      = errors.New("reaction not found")
	ErrStoreNotFound         = errors.New("store not found")
)

type SocialService interface {
	LikePlate(userID, platesID uint) error
	UnlikePlate(userID, platesID uint) error
	SavePlate(userID, platesID uint) error
	UnsavePlate(userID, platesID uint) error
	LikeStore(userID, storeID uint) error
	UnlikeStore(userID, storeID uint) error
	SaveStore(userID, storeID uint) error
	UnsaveStore(userID, storeID uint) error
	GetLikedPlateIDs(userID uint) ([]uint, error)
	GetSavedPlateIDs(userID uint) ([]uint, error)
	GetLikedStoreIDs(userID uint) ([]uint, error)
	GetSavedStoreIDs(userID uint) ([]uint, error)
}

type socialService struct {
	socialRepo repository.SocialRepository
	plateRepo  repository.PlateRepository
	storeRepo  repository.StoreRepository
}

func NewSocialService(
	socialRepo repository.SocialRepository,
	plateRepo repository.PlateRepository,
	storeRepo repository.StoreRepository,
) SocialService {
	return &socialService{
		socialRepo: socialRepo,
		plateRepo:  plateRepo,
		storeRepo:  storeRepo,
	}
}

// isDuplicateError recognizes the composite unique index violation the
// relation tables raise on a repeated add, across both drivers.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

func (s *socialService) requirePlate(platesID uint) error {
	if _, err := s.plateRepo.FindByID(platesID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlateNotFound
		}
		return err
	}
	return nil
}

func (s *socialService) requireStore(storeID uint) error {
	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoreNotFound
		}
		return err
	}
	return nil
}

func (s *socialService) addPlateReaction(userID, platesID uint, add func(uint, uint) error) error {
	if err := s.requirePlate(platesID); err != nil {
		return err
	}
	if err := add(userID, platesID); err != nil {
		if isDuplicateError(err) {
			logger.Warn("Duplicate plate reaction", map[string]interface{}{
				"user_id":   userID,
				"plates_id": platesID,
			})
			return ErrReactionAlreadyExists
		}
		return err
	}
	return nil
}

func (s *socialService) removeReaction(remove func() error) error {
	if err := remove(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReactionNotFound
		}
		return err
	}
	return nil
}

func (s *socialService) LikePlate(userID, platesID uint) error {
	return s.addPlateReaction(userID, platesID, s.socialRepo.LikePlate)
}

func (s *socialService) UnlikePlate(userID, platesID uint) error {
	return s.removeReaction(func() error { return s.socialRepo.UnlikePlate(userID, platesID) })
}

func (s *socialService) SavePlate(userID, platesID uint) error {
	return s.addPlateReaction(userID, platesID, s.socialRepo.SavePlate)
}

func (s *socialService) UnsavePlate(userID, platesID uint) error {
	return s.removeReaction(func() error { return s.socialRepo.UnsavePlate(userID, platesID) })
}

func (s *socialService) addStoreReaction(userID, storeID uint, add func(uint, uint) error) error {
	if err := s.requireStore(storeID); err != nil {
		return err
	}
	if err := add(userID, storeID); err != nil {
		if isDuplicateError(err) {
			logger.Warn("Duplicate store reaction", map[string]interface{}{
				"user_id":  userID,
				"store_id": storeID,
			})
			return ErrReactionAlreadyExists
		}
		return err
	}
	return nil
}

func (s *socialService) LikeStore(userID, storeID uint) error {
	return s.addStoreReaction(userID, storeID, s.socialRepo.LikeStore)
}

func (s *socialService) UnlikeStore(userID, storeID uint) error {
	return s.removeReaction(func() error { return s.socialRepo.UnlikeStore(userID, storeID) })
}

func (s *socialService) SaveStore(userID, storeID uint) error {
	return s.addStoreReaction(userID, storeID, s.socialRepo.SaveStore)
}

func (s *socialService) UnsaveStore(userID, storeID uint) error {
	return s.removeReaction(func() error { return s.socialRepo.UnsaveStore(userID, storeID) })
}

func (s *socialService) GetLikedPlateIDs(userID uint) ([]uint, error) {
	return s.socialRepo.FindLikedPlateIDs(userID)
}

func (s *socialService) GetSavedPlateIDs(userID uint) ([]uint, error) {
	return s.socialRepo.FindSavedPlateIDs(userID)
}

func (s *socialService) GetLikedStoreIDs(userID uint) ([]uint, error) {
	return s.socialRepo.FindLikedStoreIDs(userID)
}

func (s *socialService) GetSavedStoreIDs(userID uint) ([]uint, error) {
	return s.socialRepo.FindSavedStoreIDs(userID)
}
