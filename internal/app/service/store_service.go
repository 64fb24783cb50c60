package service

import (
	"errors"

	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

type StoreService interface {
	GetByID(storeID uint) (*repository.StoreResult, error)
	Search(name string, limit, offset int) ([]repository.StoreResult, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
}

func NewStoreService(storeRepo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

func (s *storeService) GetByID(storeID uint) (*repository.StoreResult, error) {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

func (s *storeService) Search(name string, limit, offset int) ([]repository.StoreResult, error) {
	stores, err := s.storeRepo.Search(name, limit, offset)
	if err != nil {
		logger.Error("Failed to search stores", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	return stores, nil
}
