package model

import "time"

// Social relations: liked/saved crossed with plate/store. Four independent
// tables; presence of a row means the relation holds. Each carries a composite
// unique index so repeated likes cannot inflate popularity counts.

type LikedPlate struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_liked_plate,unique" json:"users_id"`
	PlatesID  uint      `gorm:"not null;index:idx_liked_plate,unique" json:"plates_id"`
	CreatedAt time.Time `json:"add_date"`
}

func (LikedPlate) TableName() string {
	return "liked_plates"
}

type SavedPlate struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_saved_plate,unique" json:"users_id"`
	PlatesID  uint      `gorm:"not null;index:idx_saved_plate,unique" json:"plates_id"`
	CreatedAt time.Time `json:"add_date"`
}

func (SavedPlate) TableName() string {
	return "saved_plates"
}

type LikedStore struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_liked_store,unique" json:"users_id"`
	StoreID   uint      `gorm:"not null;index:idx_liked_store,unique" json:"store_id"`
	CreatedAt time.Time `json:"add_date"`
}

func (LikedStore) TableName() string {
	return "liked_stores"
}

type SavedStore struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_saved_store,unique" json:"users_id"`
	StoreID   uint      `gorm:"not null;index:idx_saved_store,unique" json:"store_id"`
	CreatedAt time.Time `json:"add_date"`
}

func (SavedStore) TableName() string {
	return "saved_stores"
}
