package repository

import (
	"errors"
	"strconv"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/internal/pattern"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

// ReservedSpecialFrontID marks listings excluded from the default front-tag
// browse view.
const ReservedSpecialFrontID = 1

// capitalProvinceID is Bangkok in the province catalog.
const capitalProvinceID = 1

// ErrInvalidCategory means a caller-supplied pattern selector is not in the
// classifier catalog. The selector is never used in a query before this check.
var ErrInvalidCategory = errors.New("unknown pattern category")

type SearchSort string

const (
	SearchSortPriceAsc   SearchSort = "price_asc"
	SearchSortPriceDesc  SearchSort = "price_desc"
	SearchSortPopularity SearchSort = "popularity"
	SearchSortRandom     SearchSort = "random"
)

// ProvinceScope is the tri-state province comparison used by the
// plates-type and vehicle-type browse variants.
type ProvinceScope int

const (
	ProvinceScopeAny        ProvinceScope = 0
	ProvinceScopeCapital    ProvinceScope = 1 // Bangkok only
	ProvinceScopeProvincial ProvinceScope = 2 // everything but Bangkok
)

// SearchFilter is the base filter and ranking shared by every search variant.
type SearchFilter struct {
	PriceCeiling  int   // 0 means no ceiling
	PlatesTypeIDs []int // empty means any
	ProvinceIDs   []int // empty means any
	Sort          SearchSort
	Limit         int
	Offset        int
}

// SearchTerms is the number/text search input. Nil numeric fields and an
// empty text are absent facets; each present facet adds a predicate. The five
// supported shapes all flow through the same builder.
type SearchTerms struct {
	FrontNumber *int
	BackNumber  *int
	FrontText   string
}

// PlateResult is a listing enriched with its current price and popularity.
type PlateResult struct {
	model.Plate
	Price         int   `gorm:"column:current_price" json:"price"`
	ReactionCount int64 `gorm:"column:reaction_count" json:"reaction_count"`
}

type SearchRepository interface {
	FindByCategory(category pattern.Category, filter SearchFilter) ([]PlateResult, error)
	FindFrontTagBrowse(filter SearchFilter) ([]PlateResult, error)
	FindByPlatesType(platesTypeID int, scope ProvinceScope, filter SearchFilter) ([]PlateResult, error)
	FindByVehicleType(vehicleTypeID int, scope ProvinceScope, filter SearchFilter) ([]PlateResult, error)
	FindByID(platesID uint) (*PlateResult, error)
	SearchByTerms(terms SearchTerms, filter SearchFilter, fallbackThreshold int) ([]PlateResult, error)
}

type searchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) SearchRepository {
	return &searchRepository{db: db}
}

// enrichedQuery joins every listing with its latest price and its reaction
// count. The two aggregations are independent subqueries: the latest price is
// the top-ranked history row per listing, and reactions are counted straight
// off the relation tables keyed by listing id, so history depth can never
// multiply popularity.
func (r *searchRepository) enrichedQuery() *gorm.DB {
	ranked := r.db.Table("price_history").
		Select("plates_id, price, ROW_NUMBER() OVER (PARTITION BY plates_id ORDER BY created_at DESC, id DESC) AS price_rank")

	likeCounts := r.db.Table("liked_plates").
		Select("plates_id, COUNT(*) AS like_count").
		Group("plates_id")

	saveCounts := r.db.Table("saved_plates").
		Select("plates_id, COUNT(*) AS save_count").
		Group("plates_id")

	return r.db.Model(&model.Plate{}).
		Select("plates.*, latest_price.price AS current_price, " +
			"COALESCE(like_counts.like_count, 0) + COALESCE(save_counts.save_count, 0) AS reaction_count").
		Joins("JOIN (SELECT plates_id, price FROM (?) ranked WHERE ranked.price_rank = 1) AS latest_price ON latest_price.plates_id = plates.id", ranked).
		Joins("LEFT JOIN (?) AS like_counts ON like_counts.plates_id = plates.id", likeCounts).
		Joins("LEFT JOIN (?) AS save_counts ON save_counts.plates_id = plates.id", saveCounts).
		Where("plates.deleted_at IS NULL")
}

// baseQuery applies the shared sale filter and ranking on top of the
// enriched join.
func (r *searchRepository) baseQuery(filter SearchFilter) *gorm.DB {
	query := r.enrichedQuery().
		Where("plates.is_selling = ?", true).
		Where("plates.is_temporary = ?", false)

	if filter.PriceCeiling > 0 {
		query = query.Where("latest_price.price <= ?", filter.PriceCeiling)
	}
	if len(filter.PlatesTypeIDs) > 0 {
		query = query.Where("plates.plates_type_id IN ?", filter.PlatesTypeIDs)
	}
	if len(filter.ProvinceIDs) > 0 {
		query = query.Where("plates.province_id IN ?", filter.ProvinceIDs)
	}

	switch filter.Sort {
	case SearchSortPriceDesc:
		query = query.Order("latest_price.price DESC").Order("plates.id ASC")
	case SearchSortPopularity:
		query = query.Order("reaction_count DESC").Order("plates.id ASC")
	case SearchSortRandom:
		query = query.Order("RANDOM()")
	case SearchSortPriceAsc:
		fallthrough
	default:
		// Unrecognized sort keys fall back to cheapest-first.
		query = query.Order("latest_price.price ASC").Order("plates.id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	return query
}

func provinceScopeQuery(query *gorm.DB, scope ProvinceScope) *gorm.DB {
	switch scope {
	case ProvinceScopeCapital:
		return query.Where("plates.province_id = ?", capitalProvinceID)
	case ProvinceScopeProvincial:
		return query.Where("plates.province_id <> ?", capitalProvinceID)
	default:
		return query
	}
}

// FindByCategory lists selling plates belonging to a lucky-number category.
// The category is validated against the fixed catalog and then bound as a
// plain parameter; query structure never depends on caller input.
func (r *searchRepository) FindByCategory(category pattern.Category, filter SearchFilter) ([]PlateResult, error) {
	if !pattern.Valid(category) {
		logger.Warn("Rejecting unknown pattern category", map[string]interface{}{
			"category": category,
		})
		return nil, ErrInvalidCategory
	}

	logger.Debug("Searching plates by pattern category", map[string]interface{}{
		"category": category,
		"sort":     filter.Sort,
	})

	query := r.baseQuery(filter).
		Where("EXISTS (SELECT 1 FROM pattern_memberships pm WHERE pm.plates_id = plates.id AND pm.category = ?)", string(category))

	var results []PlateResult
	if err := query.Scan(&results).Error; err != nil {
		logger.Error("Failed to search plates by category", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}
	return results, nil
}

// FindFrontTagBrowse is the default front-tag browse: everything except
// listings carrying the reserved special-front tag.
func (r *searchRepository) FindFrontTagBrowse(filter SearchFilter) ([]PlateResult, error) {
	logger.Debug("Browsing plates excluding reserved special front", map[string]interface{}{
		"sort": filter.Sort,
	})

	query := r.baseQuery(filter).
		Where("(plates.special_front_id IS NULL OR plates.special_front_id <> ?)", ReservedSpecialFrontID)

	var results []PlateResult
	if err := query.Scan(&results).Error; err != nil {
		logger.Error("Failed to browse plates by special front", err)
		return nil, err
	}
	return results, nil
}

func (r *searchRepository) FindByPlatesType(platesTypeID int, scope ProvinceScope, filter SearchFilter) ([]PlateResult, error) {
	logger.Debug("Searching plates by plates type", map[string]interface{}{
		"plates_type_id": platesTypeID,
		"province_scope": scope,
	})

	query := provinceScopeQuery(r.baseQuery(filter).Where("plates.plates_type_id = ?", platesTypeID), scope)

	var results []PlateResult
	if err := query.Scan(&results).Error; err != nil {
		logger.Error("Failed to search plates by plates type", err, map[string]interface{}{
			"plates_type_id": platesTypeID,
		})
		return nil, err
	}
	return results, nil
}

func (r *searchRepository) FindByVehicleType(vehicleTypeID int, scope ProvinceScope, filter SearchFilter) ([]PlateResult, error) {
	logger.Debug("Searching plates by vehicle type", map[string]interface{}{
		"vehicle_type_id": vehicleTypeID,
		"province_scope":  scope,
	})

	query := provinceScopeQuery(r.baseQuery(filter).Where("plates.vehicle_type_id = ?", vehicleTypeID), scope)

	var results []PlateResult
	if err := query.Scan(&results).Error; err != nil {
		logger.Error("Failed to search plates by vehicle type", err, map[string]interface{}{
			"vehicle_type_id": vehicleTypeID,
		})
		return nil, err
	}
	return results, nil
}

// FindByID returns the enriched detail row for one listing, ignoring the
// sale filter, price ceiling and pagination.
func (r *searchRepository) FindByID(platesID uint) (*PlateResult, error) {
	logger.Debug("Finding enriched plate by ID", map[string]interface{}{
		"plates_id": platesID,
	})

	var results []PlateResult
	err := r.enrichedQuery().
		Where("plates.id = ?", platesID).
		Limit(1).
		Scan(&results).Error
	if err != nil {
		logger.Error("Failed to find enriched plate by ID", err, map[string]interface{}{
			"plates_id": platesID,
		})
		return nil, err
	}
	if len(results) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &results[0], nil
}

// termsQuery adds one predicate per supplied facet. In the relaxed tier the
// back-number equality is widened to a substring match over its decimal text;
// every other facet keeps its strict predicate.
func termsQuery(query *gorm.DB, terms SearchTerms, relaxed bool) *gorm.DB {
	if terms.BackNumber != nil {
		if relaxed {
			query = query.Where("CAST(plates.back_number AS TEXT) LIKE ?", "%"+strconv.Itoa(*terms.BackNumber)+"%")
		} else {
			query = query.Where("plates.back_number = ?", *terms.BackNumber)
		}
	}
	if terms.FrontNumber != nil {
		query = query.Where("plates.front_number = ?", *terms.FrontNumber)
	}
	if terms.FrontText != "" {
		query = query.Where("plates.front_text LIKE ?", terms.FrontText+"%")
	}
	return query
}

// SearchByTerms runs the tiered number/text search: a strict pass first, and
// when it yields fewer than fallbackThreshold rows and a back number was
// supplied, a relaxed substring pass whose rows are appended after the strict
// ones. Rows satisfying both tiers are reported once.
func (r *searchRepository) SearchByTerms(terms SearchTerms, filter SearchFilter, fallbackThreshold int) ([]PlateResult, error) {
	logger.Debug("Searching plates by terms", map[string]interface{}{
		"has_back_number":  terms.BackNumber != nil,
		"has_front_number": terms.FrontNumber != nil,
		"front_text":       terms.FrontText,
		"threshold":        fallbackThreshold,
	})

	var strict []PlateResult
	if err := termsQuery(r.baseQuery(filter), terms, false).Scan(&strict).Error; err != nil {
		logger.Error("Failed to run strict search pass", err)
		return nil, err
	}

	// The relaxed tier only broadens the numeric facet; without one there is
	// nothing to relax.
	if terms.BackNumber == nil || len(strict) >= fallbackThreshold {
		return strict, nil
	}

	logger.Debug("Strict pass below threshold, running relaxed pass", map[string]interface{}{
		"strict_count": len(strict),
		"threshold":    fallbackThreshold,
	})

	var relaxed []PlateResult
	if err := termsQuery(r.baseQuery(filter), terms, true).Scan(&relaxed).Error; err != nil {
		logger.Error("Failed to run relaxed search pass", err)
		return nil, err
	}

	seen := make(map[uint]struct{}, len(strict))
	for _, row := range strict {
		seen[row.ID] = struct{}{}
	}
	merged := strict
	for _, row := range relaxed {
		if _, dup := seen[row.ID]; dup {
			continue
		}
		seen[row.ID] = struct{}{}
		merged = append(merged, row)
	}
	return merged, nil
}
