package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/app789plates/plates-backend/config"
	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/internal/pattern"
	"github.com/app789plates/plates-backend/pkg/logger"
	"github.com/app789plates/plates-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrInvalidCategory      = errors.New("unknown pattern category")
	ErrInvalidSort          = errors.New("unknown sort key")
	ErrInvalidProvinceScope = errors.New("unknown province scope")
)

const categoryCacheTTL = 60 * time.Second

// ParseSort maps a query-string sort key onto the repository sort. An empty
// key means cheapest-first.
func ParseSort(key string) (repository.SearchSort, error) {
	switch key {
	case "", string(repository.SearchSortPriceAsc):
		return repository.SearchSortPriceAsc, nil
	case string(repository.SearchSortPriceDesc):
		return repository.SearchSortPriceDesc, nil
	case string(repository.SearchSortPopularity):
		return repository.SearchSortPopularity, nil
	case string(repository.SearchSortRandom):
		return repository.SearchSortRandom, nil
	default:
		return "", ErrInvalidSort
	}
}

// ParseProvinceScope maps a query-string scope onto the tri-state province
// comparison.
func ParseProvinceScope(key string) (repository.ProvinceScope, error) {
	switch key {
	case "", "any":
		return repository.ProvinceScopeAny, nil
	case "capital":
		return repository.ProvinceScopeCapital, nil
	case "provincial":
		return repository.ProvinceScopeProvincial, nil
	default:
		return repository.ProvinceScopeAny, ErrInvalidProvinceScope
	}
}

type SearchService interface {
	SearchByCategory(ctx context.Context, category string, filter repository.SearchFilter) ([]repository.PlateResult, error)
	BrowseFrontTags(filter repository.SearchFilter) ([]repository.PlateResult, error)
	SearchByPlatesType(platesTypeID int, scope repository.ProvinceScope, filter repository.SearchFilter) ([]repository.PlateResult, error)
	SearchByVehicleType(vehicleTypeID int, scope repository.ProvinceScope, filter repository.SearchFilter) ([]repository.PlateResult, error)
	GetPlateDetail(platesID uint) (*repository.PlateResult, error)
	SearchByTerms(terms repository.SearchTerms, filter repository.SearchFilter) ([]repository.PlateResult, error)
}

type searchService struct {
	searchRepo repository.SearchRepository
	searchCfg  *config.SearchConfig
}

func NewSearchService(searchRepo repository.SearchRepository, searchCfg *config.SearchConfig) SearchService {
	return &searchService{
		searchRepo: searchRepo,
		searchCfg:  searchCfg,
	}
}

func categoryCacheKey(category string, filter repository.SearchFilter) string {
	return fmt.Sprintf("search:category:%s:%v:%v:%d:%s:%d:%d",
		category, filter.PlatesTypeIDs, filter.ProvinceIDs,
		filter.PriceCeiling, filter.Sort, filter.Limit, filter.Offset)
}

// SearchByCategory validates the selector against the classifier catalog and
// serves the browse through a short-TTL cache. Random-ordered requests skip
// the cache so shuffles stay fresh.
func (s *searchService) SearchByCategory(ctx context.Context, category string, filter repository.SearchFilter) ([]repository.PlateResult, error) {
	if !pattern.Valid(pattern.Category(category)) {
		return nil, ErrInvalidCategory
	}

	cacheable := filter.Sort != repository.SearchSortRandom
	key := categoryCacheKey(category, filter)
	if cacheable {
		var cached []repository.PlateResult
		if hit, err := redis.GetJSON(ctx, key, &cached); err == nil && hit {
			logger.Debug("Category search served from cache", map[string]interface{}{
				"category": category,
			})
			return cached, nil
		}
	}

	results, err := s.searchRepo.FindByCategory(pattern.Category(category), filter)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCategory) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}

	if cacheable {
		if err := redis.CacheJSON(ctx, key, results, categoryCacheTTL); err != nil {
			logger.Warn("Failed to cache category search results", map[string]interface{}{
				"category": category,
			})
		}
	}
	return results, nil
}

func (s *searchService) BrowseFrontTags(filter repository.SearchFilter) ([]repository.PlateResult, error) {
	return s.searchRepo.FindFrontTagBrowse(filter)
}

func (s *searchService) SearchByPlatesType(platesTypeID int, scope repository.ProvinceScope, filter repository.SearchFilter) ([]repository.PlateResult, error) {
	return s.searchRepo.FindByPlatesType(platesTypeID, scope, filter)
}

func (s *searchService) SearchByVehicleType(vehicleTypeID int, scope repository.ProvinceScope, filter repository.SearchFilter) ([]repository.PlateResult, error) {
	return s.searchRepo.FindByVehicleType(vehicleTypeID, scope, filter)
}

func (s *searchService) GetPlateDetail(platesID uint) (*repository.PlateResult, error) {
	result, err := s.searchRepo.FindByID(platesID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlateNotFound
		}
		return nil, err
	}
	return result, nil
}

func (s *searchService) SearchByTerms(terms repository.SearchTerms, filter repository.SearchFilter) ([]repository.PlateResult, error) {
	return s.searchRepo.SearchByTerms(terms, filter, s.searchCfg.FallbackThreshold)
}
