package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Plate is a listing: one license plate offered for sale.
type Plate struct {
	ID            uint           `gorm:"primarykey" json:"plates_id"`
	FrontText     string         `gorm:"not null" json:"front_text"`               // Thai letter prefix, free-form
	FrontNumber   int            `gorm:"default:0" json:"front_number"`            // numeric prefix, 0 if absent
	BackNumber    int            `gorm:"not null;index" json:"back_number"`        // primary numeric facet, 0-9999
	VehicleTypeID int            `gorm:"not null" json:"vehicle_type_id"`
	PlatesTypeID  int            `gorm:"not null" json:"plates_type_id"`
	ProvinceID    int            `gorm:"not null;index" json:"province_id"`
	SpecialFrontID *int          `json:"special_front_id"` // categorical tag; 1 is reserved for exclusion from the front-tag browse view
	UserID        uint           `gorm:"not null;index" json:"users_id"` // owner; transfers reassign this
	PlatesURI     string         `json:"plates_uri"`                     // photo object URL
	IsSelling     bool           `gorm:"default:true;index" json:"is_selling"`
	IsPin         bool           `gorm:"default:false;index" json:"is_pin"`
	IsTemporary   bool           `gorm:"default:false" json:"is_temporary"`
	Total         int            `gorm:"default:1" json:"total"`
	Information   string         `gorm:"type:text" json:"information"`
	UniqueText    string         `gorm:"index;not null" json:"unique_text"` // identity over the five identifying facets, unique among non-deleted rows
	CreatedAt     time.Time      `json:"add_date"`
	UpdatedAt     time.Time      `json:"-"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PriceHistory []PriceHistory      `gorm:"foreignKey:PlatesID" json:"-"`
	Memberships  []PatternMembership `gorm:"foreignKey:PlatesID" json:"-"`
}

func (Plate) TableName() string {
	return "plates"
}

// UniqueKey derives the identity string for the five identifying facets.
// Two non-deleted listings may never share it.
func UniqueKey(provinceID, vehicleTypeID, frontNumber int, frontText string, backNumber int) string {
	return fmt.Sprintf("province(%d)-vehicle(%d)-front(%d)-text(%s)-back(%d)",
		provinceID, vehicleTypeID, frontNumber, frontText, backNumber)
}

// BeforeCreate fills the unique key from the facets when the caller did not.
func (p *Plate) BeforeCreate(tx *gorm.DB) error {
	if p.UniqueText == "" {
		p.UniqueText = UniqueKey(p.ProvinceID, p.VehicleTypeID, p.FrontNumber, p.FrontText, p.BackNumber)
	}
	return nil
}

// PriceHistory is an append-only price log row. The most recent row per plate
// is that plate's current price; rows are never updated or deleted.
type PriceHistory struct {
	ID        uint      `gorm:"primarykey" json:"price_history_id"`
	PlatesID  uint      `gorm:"not null;index" json:"plates_id"`
	Price     int       `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"add_date"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}
