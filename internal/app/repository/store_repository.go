package repository

import (
	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/pkg/logger"
	"gorm.io/gorm"
)

// StoreResult is a seller profile enriched with inventory and reputation
// aggregates. AssetValue sums the current price of every active listing.
type StoreResult struct {
	model.User
	AssetValue    int64   `gorm:"column:asset_value" json:"asset_value"`
	ListingCount  int64   `gorm:"column:listing_count" json:"listing_count"`
	AverageRating float64 `gorm:"column:average_rating" json:"average_rating"`
	ReactionCount int64   `gorm:"column:reaction_count" json:"reaction_count"`
}

type StoreRepository interface {
	FindByID(storeID uint) (*StoreResult, error)
	Search(name string, limit, offset int) ([]StoreResult, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// enrichedQuery aggregates each store's inventory value, listing count,
// average rating and reactions through independent per-store subqueries, the
// same shape the plate search uses so one sparse relation cannot skew
// another.
func (r *storeRepository) enrichedQuery() *gorm.DB {
	ranked := r.db.Table("price_history").
		Select("plates_id, price, ROW_NUMBER() OVER (PARTITION BY plates_id ORDER BY created_at DESC, id DESC) AS price_rank")

	inventory := r.db.Table("plates").
		Select("plates.user_id AS store_id, SUM(latest_price.price) AS asset_value, COUNT(*) AS listing_count").
		Joins("JOIN (SELECT plates_id, price FROM (?) ranked WHERE ranked.price_rank = 1) AS latest_price ON latest_price.plates_id = plates.id", ranked).
		Where("plates.is_selling = ? AND plates.is_temporary = ? AND plates.deleted_at IS NULL", true, false).
		Group("plates.user_id")

	ratings := r.db.Table("rating").
		Select("store_id, AVG(score) AS average_rating").
		Group("store_id")

	likeCounts := r.db.Table("liked_stores").
		Select("store_id, COUNT(*) AS like_count").
		Group("store_id")

	saveCounts := r.db.Table("saved_stores").
		Select("store_id, COUNT(*) AS save_count").
		Group("store_id")

	return r.db.Model(&model.User{}).
		Select("users.*, COALESCE(inventory.asset_value, 0) AS asset_value, " +
			"COALESCE(inventory.listing_count, 0) AS listing_count, " +
			"COALESCE(ratings.average_rating, 0) AS average_rating, " +
			"COALESCE(like_counts.like_count, 0) + COALESCE(save_counts.save_count, 0) AS reaction_count").
		Joins("LEFT JOIN (?) AS inventory ON inventory.store_id = users.id", inventory).
		Joins("LEFT JOIN (?) AS ratings ON ratings.store_id = users.id", ratings).
		Joins("LEFT JOIN (?) AS like_counts ON like_counts.store_id = users.id", likeCounts).
		Joins("LEFT JOIN (?) AS save_counts ON save_counts.store_id = users.id", saveCounts).
		Where("users.deleted_at IS NULL")
}

func (r *storeRepository) FindByID(storeID uint) (*StoreResult, error) {
	logger.Debug("Finding store by ID", map[string]interface{}{
		"store_id": storeID,
	})

	var results []StoreResult
	err := r.enrichedQuery().
		Where("users.id = ?", storeID).
		Limit(1).
		Scan(&results).Error
	if err != nil {
		logger.Error("Failed to find store by ID", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	if len(results) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &results[0], nil
}

// Search lists stores whose name contains the query, highest asset value
// first. An empty query lists every store.
func (r *storeRepository) Search(name string, limit, offset int) ([]StoreResult, error) {
	logger.Debug("Searching stores", map[string]interface{}{
		"name": name,
	})

	query := r.enrichedQuery().
		Order("asset_value DESC").
		Order("users.id ASC")
	if name != "" {
		query = query.Where("users.name LIKE ?", "%"+name+"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var results []StoreResult
	if err := query.Scan(&results).Error; err != nil {
		logger.Error("Failed to search stores", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	return results, nil
}
