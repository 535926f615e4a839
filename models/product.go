package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Slug  string `gorm:"uniqueIndex;not null" json:"slug"`
	Image string `json:"image"`
}

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID       uint            `gorm:"index;not null" json:"store_id"`
	Store         Store           `gorm:"foreignKey:StoreID" json:"-"`
	CategoryID    *uint           `json:"category_id"`
	Category      *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name          string          `gorm:"not null" json:"name"`
	Slug          string          `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	InStock       bool            `gorm:"default:true" json:"in_stock"`
	StockQuantity int             `json:"stock_quantity"`
	Featured      bool            `gorm:"default:false" json:"featured"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}
