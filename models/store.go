package models

import "time"

type Store struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"uniqueIndex;not null" json:"owner_id"` // Enforces ONE store per user
	Owner       User      `gorm:"foreignKey:OwnerID" json:"-"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	Products    []Product `gorm:"foreignKey:StoreID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
