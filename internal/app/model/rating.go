package model

import "time"

// Rating is a buyer's review of a store. The average score feeds the store
// search aggregation.
type Rating struct {
	ID        uint      `gorm:"primarykey" json:"rating_id"`
	UserID    uint      `gorm:"not null;index:idx_rating_user_store,unique" json:"users_id"`
	StoreID   uint      `gorm:"not null;index:idx_rating_user_store,unique" json:"store_id"`
	Score     float64   `gorm:"not null" json:"score"`
	Review    string    `gorm:"type:text" json:"review"`
	CreatedAt time.Time `json:"add_date"`
}

func (Rating) TableName() string {
	return "rating"
}
