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
	ErrHashtagAlreadyAttached = errors.New("hashtag already attached to plate")
	ErrHashtagNotFound        = errors.New("hashtag not found")
	ErrInvalidHashtag         = errors.New("invalid hashtag")
)

const maxHashtagLength = 50

type HashtagService interface {
	Attach(userID, platesID uint, tag string) (*model.Hashtag, error)
	Detach(userID, platesID, hashtagID uint) error
	GetByPlate(platesID uint) ([]model.Hashtag, error)
	GetPlateIDsByTag(tag string) ([]uint, error)
}

type hashtagService struct {
	hashtagRepo repository.HashtagRepository
	plateRepo   repository.PlateRepository
}

func NewHashtagService(
	hashtagRepo repository.HashtagRepository,
	plateRepo repository.PlateRepository,
) HashtagService {
	return &hashtagService{
		hashtagRepo: hashtagRepo,
		plateRepo:   plateRepo,
	}
}

// requireOwnedPlate checks the plate exists and belongs to the caller; only
// the owner curates a listing's tags.
func (s *hashtagService) requireOwnedPlate(userID, platesID uint) error {
	plate, err := s.plateRepo.FindByID(platesID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlateNotFound
		}
		return err
	}
	if plate.UserID != userID {
		return ErrPlateNotOwned
	}
	return nil
}

func (s *hashtagService) Attach(userID, platesID uint, tag string) (*model.Hashtag, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" || len(tag) > maxHashtagLength {
		return nil, ErrInvalidHashtag
	}
	if err := s.requireOwnedPlate(userID, platesID); err != nil {
		return nil, err
	}

	hashtag, err := s.hashtagRepo.Attach(platesID, tag)
	if err != nil {
		if isDuplicateError(err) {
			logger.Warn("Hashtag already attached", map[string]interface{}{
				"plates_id": platesID,
				"tag":       tag,
			})
			return nil, ErrHashtagAlreadyAttached
		}
		logger.Error("Failed to attach hashtag", err, map[string]interface{}{
			"plates_id": platesID,
		})
		return nil, err
	}

	logger.Info("Hashtag attached to plate", map[string]interface{}{
		"plates_id":  platesID,
		"hashtag_id": hashtag.ID,
	})
	return hashtag, nil
}

func (s *hashtagService) Detach(userID, platesID, hashtagID uint) error {
	if err := s.requireOwnedPlate(userID, platesID); err != nil {
		return err
	}
	if err := s.hashtagRepo.Detach(platesID, hashtagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHashtagNotFound
		}
		return err
	}
	return nil
}

func (s *hashtagService) GetByPlate(platesID uint) ([]model.Hashtag, error) {
	return s.hashtagRepo.FindByPlate(platesID)
}

func (s *hashtagService) GetPlateIDsByTag(tag string) ([]uint, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, ErrInvalidHashtag
	}
	return s.hashtagRepo.FindPlateIDsByTag(tag)
}
