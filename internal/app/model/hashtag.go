package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Hashtag struct {
	ID        uint      `gorm:"primarykey" json:"hashtag_id"`
	Tag       string    `gorm:"uniqueIndex;not null" json:"tag"`
	CreatedAt time.Time `json:"add_date"`
}

func (Hashtag) TableName() string {
	return "hashtag"
}

// PlateHashtag attaches a hashtag to a plate. The unique text prevents the
// same tag being attached to the same plate twice.
type PlateHashtag struct {
	ID         uint      `gorm:"primarykey" json:"plates_hashtag_id"`
	PlatesID   uint      `gorm:"not null;index" json:"plates_id"`
	HashtagID  uint      `gorm:"not null" json:"hashtag_id"`
	UniqueText string    `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt  time.Time `json:"add_date"`
}

func (PlateHashtag) TableName() string {
	return "plates_hashtag"
}

func (ph *PlateHashtag) BeforeCreate(tx *gorm.DB) error {
	if ph.UniqueText == "" {
		ph.UniqueText = fmt.Sprintf("plates_id(%d)-hashtag_id(%d)", ph.PlatesID, ph.HashtagID)
	}
	return nil
}
