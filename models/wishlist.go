package models

import "time"

type Wishlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_product_wish;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product_wish;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	CreatedAt time.Time `json:"created_at"`
}
