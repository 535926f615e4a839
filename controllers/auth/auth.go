package authControllers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	UserType        string `json:"user_type"`
	Phone           string `json:"phone"`
	BirthDate       string `json:"birth_date"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"` // Username or email
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
	BirthDate *string `json:"birth_date"`
}

// POST /api/v1/auth/register/
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Password != input.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords don't match."})
			return
		}

		userType := models.UserTypeBuyer
		switch input.UserType {
		case "", string(models.UserTypeBuyer):
		case string(models.UserTypeSeller):
			userType = models.UserTypeSeller
		default:
			// Admin accounts are provisioned out of band, never self-registered.
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_type must be buyer or seller"})
			return
		}

		var count int64
		db.Model(&models.User{}).Where("username = ? OR email = ?", input.Username, input.Email).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken."})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		user := models.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: string(hash),
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			UserType:     userType,
			Phone:        input.Phone,
			BirthDate:    input.BirthDate,
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "User created successfully."})
	}
}

// POST /api/v1/auth/token/
func ObtainToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		err := db.Where("username = ? OR email = ?", input.Username, input.Username).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := issueToken(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"access": token, "user": user})
	}
}

// GET /api/v1/auth/profile/
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// PUT /api/v1/auth/profile/
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.FirstName != nil {
			updates["first_name"] = *input.FirstName
		}
		if input.LastName != nil {
			updates["last_name"] = *input.LastName
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.AvatarURL != nil {
			updates["avatar_url"] = *input.AvatarURL
		}
		if input.BirthDate != nil {
			updates["birth_date"] = *input.BirthDate
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
				return
			}
		}

		c.JSON(http.StatusOK, user)
	}
}

func issueToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"user_type": string(user.UserType),
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
