package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CartCode  string     `gorm:"type:VARCHAR(11);uniqueIndex;not null" json:"cart_code"`
	UserID    *uint      `gorm:"index" json:"user_id"` // NULL for guest carts
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem keeps at most one row per (cart, product); racing adds are
// resolved by the unique index, not by application locking.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
