package model

import "time"

// PlateTransfer is an offer to hand a plate from its owning store to a buyer.
// Accepting marks it received and reassigns the plate's owner.
type PlateTransfer struct {
	ID           uint       `gorm:"primarykey" json:"transfer_plates_id"`
	PlatesID     uint       `gorm:"not null;index" json:"plates_id"`
	UserID       uint       `gorm:"not null;index" json:"users_id"` // receiving user
	StoreID      uint       `gorm:"not null;index" json:"store_id"` // current owner
	Received     bool       `gorm:"default:false" json:"received"`
	ReceivedAt   *time.Time `json:"received_date"`
	CreatedAt    time.Time  `json:"add_date"`
}

func (PlateTransfer) TableName() string {
	return "transfer_plates"
}
