package models

import "time"

// Review requires a prior purchase of the product; the check happens at
// creation time in the review controller, not as a standing constraint.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_product_review;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product_review;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
