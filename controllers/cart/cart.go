package cartControllers

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const cartCodeLength = 11

const cartCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type AddItemInput struct {
	CartCode  string `json:"cart_code" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"min=1"`
}

type UpdateItemInput struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type MergeInput struct {
	TempCartCode string `json:"temp_cart_code" binding:"required"`
}

// NewCartCode returns a fresh 11-character cart identifier.
func NewCartCode() string {
	b := make([]byte, cartCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(cartCodeCharset))))
		if err != nil {
			n = big.NewInt(int64(i % len(cartCodeCharset)))
		}
		b[i] = cartCodeCharset[n.Int64()]
	}
	return string(b)
}

// POST /api/v1/cart/create/
// Guest carts have no owner until merged after login.
func CreateCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := models.Cart{
			CartCode:  NewCartCode(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := db.Create(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
			return
		}
		c.JSON(http.StatusCreated, cart)
	}
}

// GET /api/v1/cart/:cart_code/
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartCode := c.Param("cart_code")

		var cart models.Cart
		if err := db.Preload("Items.Product").Where("cart_code = ?", cartCode).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// POST /api/v1/cart/add/
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}

		var cart models.Cart
		if err := db.Where("cart_code = ?", input.CartCode).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found."})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusNotFound
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		// One row per (cart, product): bump quantity if the item is already there.
		var item models.CartItem
		err := db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
				return
			}
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
		} else {
			item.Quantity += input.Quantity
			item.AddedAt = time.Now()
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
		}

		if err := db.Preload("Items.Product").First(&cart, cart.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusCreated, cart)
	}
}

// PUT /api/v1/cart/update/
func UpdateItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var item models.CartItem
		if err := db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
			Where("cart_items.id = ? AND carts.user_id = ?", input.ItemID, userID).
			First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/v1/cart/items/:item_id/
func DeleteItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID := c.Param("item_id")

		result := db.Where("id = ? AND cart_id IN (?)", itemID,
			db.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID),
		).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// POST /api/v1/cart/create-user/
func CreateUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cart, err := getOrCreateUserCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
			return
		}

		c.JSON(http.StatusCreated, cart)
	}
}

// GET /api/v1/cart/user/
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// POST /api/v1/cart/merge/
// Folds a guest cart into the user's cart after login. Quantities are summed
// when both carts hold the same product; the guest cart is deleted.
func MergeCarts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input MergeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var guestCart models.Cart
		if err := db.Preload("Items").Where("cart_code = ?", input.TempCartCode).First(&guestCart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found."})
			return
		}
		if guestCart.UserID != nil && *guestCart.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cart belongs to another user."})
			return
		}

		userCart, err := getOrCreateUserCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}
		if guestCart.ID == userCart.ID {
			c.JSON(http.StatusOK, userCart)
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			for _, guestItem := range guestCart.Items {
				var item models.CartItem
				err := tx.Where("cart_id = ? AND product_id = ?", userCart.ID, guestItem.ProductID).First(&item).Error
				if err != nil {
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return err
					}
					item = models.CartItem{
						CartID:    userCart.ID,
						ProductID: guestItem.ProductID,
						Quantity:  guestItem.Quantity,
						AddedAt:   time.Now(),
					}
					if err := tx.Create(&item).Error; err != nil {
						return err
					}
					continue
				}
				item.Quantity += guestItem.Quantity
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("cart_id = ?", guestCart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&guestCart).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge carts"})
			return
		}

		var merged models.Cart
		if err := db.Preload("Items.Product").First(&merged, userCart.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, merged)
	}
}

func getOrCreateUserCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{
		CartCode:  NewCartCode(),
		UserID:    &userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}
