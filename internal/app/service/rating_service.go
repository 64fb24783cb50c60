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
	ErrRatingAlreadyExists = errors.New("store already rated by user")
	ErrRatingNotFound      = errors.New("rating not found")
	ErrInvalidRating       = errors.New("rating score out of range")
	ErrRatingOwnStore      = errors.New("cannot rate own store")
)

type RatingService interface {
	Rate(userID, storeID uint, score float64, review string) (*model.Rating, error)
	GetByStore(storeID uint) ([]model.Rating, error)
	Delete(ratingID, userID uint) error
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	storeRepo repository.StoreRepository,
) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
	}
}

func (s *ratingService) Rate(userID, storeID uint, score float64, review string) (*model.Rating, error) {
	if score < 0 || score > 5 {
		return nil, ErrInvalidRating
	}
	if userID == storeID {
		return nil, ErrRatingOwnStore
	}

	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	rating := &model.Rating{
		UserID:  userID,
		StoreID: storeID,
		Score:   score,
		Review:  strings.TrimSpace(review),
	}
	if err := s.ratingRepo.Create(rating); err != nil {
		if isDuplicateError(err) {
			logger.Warn("Store already rated by user", map[string]interface{}{
				"user_id":  userID,
				"store_id": storeID,
			})
			return nil, ErrRatingAlreadyExists
		}
		logger.Error("Failed to rate store", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}

	logger.Info("Store rated", map[string]interface{}{
		"rating_id": rating.ID,
		"store_id":  storeID,
		"score":     score,
	})
	return rating, nil
}

func (s *ratingService) GetByStore(storeID uint) ([]model.Rating, error) {
	ratings, err := s.ratingRepo.FindByStore(storeID)
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (s *ratingService) Delete(ratingID, userID uint) error {
	if err := s.ratingRepo.Delete(ratingID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}
	return nil
}
