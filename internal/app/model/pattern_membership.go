package model

import "time"

// PatternMembership records that a plate satisfies one lucky-number category.
// One row per (plate, category) match at classification time; rows are never
// updated. Reclassification clears a plate's rows before re-recording, so
// repeated backfills do not pile up.
type PatternMembership struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PlatesID  uint      `gorm:"not null;index:idx_pattern_plate_category" json:"plates_id"`
	Category  string    `gorm:"type:varchar(20);not null;index:idx_pattern_plate_category;index" json:"category"`
	CreatedAt time.Time `json:"add_date"`
}

func (PatternMembership) TableName() string {
	return "pattern_memberships"
}
