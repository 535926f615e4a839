package models

import "time"

type UserType string

const (
	UserTypeBuyer  UserType = "buyer"
	UserTypeSeller UserType = "seller"
	UserTypeAdmin  UserType = "admin"
)

type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"uniqueIndex;not null" json:"username"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	UserType         UserType  `gorm:"type:VARCHAR(10);default:'buyer'" json:"user_type"`
	Phone            string    `json:"phone"`
	AvatarURL        string    `json:"avatar_url"`
	BirthDate        string    `json:"birth_date"`
	IsApprovedSeller bool      `gorm:"default:false" json:"is_approved_seller"` // Set by an admin before the seller may open a store
	CreatedAt        time.Time `json:"created_at"`
}
