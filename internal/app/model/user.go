package model

import (
	"time"

	"gorm.io/gorm"
)

// User is owned by the auth subsystem; this service only reads it. A store is
// a user acting as seller, referenced by the same id space.
type User struct {
	ID          uint           `gorm:"primarykey" json:"users_id"`
	Name        string         `gorm:"not null" json:"name"`
	Information string         `gorm:"type:text" json:"information"`
	ProfileURI  string         `json:"profile_uri"`
	CreatedAt   time.Time      `json:"add_date"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Plates []Plate `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
