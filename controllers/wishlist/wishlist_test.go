package wishlistControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Store{}, &models.Product{}, &models.Wishlist{}))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string) models.Product {
	t.Helper()
	owner := models.User{Username: name + "-dono", Email: name + "@test.com", PasswordHash: "x", UserType: models.UserTypeSeller}
	require.NoError(t, db.Create(&owner).Error)
	store := models.Store{OwnerID: owner.ID, Name: name + " store", Slug: name + "-store", IsActive: true}
	require.NoError(t, db.Create(&store).Error)
	product := models.Product{StoreID: store.ID, Name: name, Slug: name, Price: decimal.NewFromInt(700), InStock: true}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func wishlistRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_type", "buyer")
		c.Next()
	})
	r.GET("/wishlist/", GetUserWishlist(db))
	r.POST("/wishlist/add/", ToggleWishlistItem(db))
	r.DELETE("/wishlist/:id/", DeleteWishlistItem(db))
	return r
}

func doJSON(r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestToggleWishlistItem(t *testing.T) {
	db := testDB(t)
	product := createProduct(t, db, "tenis")
	user := models.User{Username: "zara", Email: "z@test.com", PasswordHash: "x", UserType: models.UserTypeBuyer}
	require.NoError(t, db.Create(&user).Error)

	r := wishlistRouter(db, user.ID)

	// First toggle adds.
	w := doJSON(r, http.MethodPost, "/wishlist/add/", gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	db.Model(&models.Wishlist{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// Second toggle removes.
	w = doJSON(r, http.MethodPost, "/wishlist/add/", gin.H{"product_id": product.ID})
	assert.Equal(t, http.StatusNoContent, w.Code)

	db.Model(&models.Wishlist{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestToggleWishlistUnknownProduct(t *testing.T) {
	db := testDB(t)
	user := models.User{Username: "vera", Email: "v@test.com", PasswordHash: "x", UserType: models.UserTypeBuyer}
	require.NoError(t, db.Create(&user).Error)

	w := doJSON(wishlistRouter(db, user.ID), http.MethodPost, "/wishlist/add/", gin.H{"product_id": 123})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWishlistIsPerUser(t *testing.T) {
	db := testDB(t)
	product := createProduct(t, db, "mochila")
	alice := models.User{Username: "alice", Email: "a@test.com", PasswordHash: "x", UserType: models.UserTypeBuyer}
	require.NoError(t, db.Create(&alice).Error)
	bruna := models.User{Username: "bruna", Email: "b@test.com", PasswordHash: "x", UserType: models.UserTypeBuyer}
	require.NoError(t, db.Create(&bruna).Error)

	w := doJSON(wishlistRouter(db, alice.ID), http.MethodPost, "/wishlist/add/", gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.Wishlist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	// The other user sees an empty wishlist and cannot delete the item.
	w = doJSON(wishlistRouter(db, bruna.ID), http.MethodGet, "/wishlist/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.Wishlist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 0)

	w = doJSON(wishlistRouter(db, bruna.ID), http.MethodDelete, fmt.Sprintf("/wishlist/%d/", item.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(wishlistRouter(db, alice.ID), http.MethodDelete, fmt.Sprintf("/wishlist/%d/", item.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
