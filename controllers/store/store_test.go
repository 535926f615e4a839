package storeControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Store{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, userType models.UserType, approved bool) models.User {
	t.Helper()
	user := models.User{
		Username:         username,
		Email:            username + "@test.com",
		PasswordHash:     "x",
		UserType:         userType,
		IsApprovedSeller: approved,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func storeRouter(db *gorm.DB, user models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("user_type", string(user.UserType))
		c.Next()
	})
	r.POST("/auth/store/create/", CreateStore(db))
	r.GET("/auth/store/", GetStore(db))
	r.PUT("/auth/store/", UpdateStore(db))
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

func TestCreateStoreApprovedSeller(t *testing.T) {
	db := testDB(t)
	seller := createUser(t, db, "mariana", models.UserTypeSeller, true)

	r := storeRouter(db, seller)
	w := doJSON(r, http.MethodPost, "/auth/store/create/", gin.H{"name": "Loja da Mariana", "description": "Roupa e calçado"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var store models.Store
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &store))
	assert.Equal(t, "loja-da-mariana", store.Slug)
	assert.True(t, store.IsActive)
	assert.Equal(t, seller.ID, store.OwnerID)

	// One store per seller.
	w = doJSON(r, http.MethodPost, "/auth/store/create/", gin.H{"name": "Segunda Loja"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateStoreRequiresApproval(t *testing.T) {
	db := testDB(t)
	seller := createUser(t, db, "pendente", models.UserTypeSeller, false)

	w := doJSON(storeRouter(db, seller), http.MethodPost, "/auth/store/create/", gin.H{"name": "Loja Pendente"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateStoreBuyerForbidden(t *testing.T) {
	db := testDB(t)
	buyer := createUser(t, db, "consumidor", models.UserTypeBuyer, false)

	w := doJSON(storeRouter(db, buyer), http.MethodPost, "/auth/store/create/", gin.H{"name": "Loja Errada"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStoreSlugCollision(t *testing.T) {
	db := testDB(t)
	first := createUser(t, db, "um", models.UserTypeSeller, true)
	second := createUser(t, db, "dois", models.UserTypeSeller, true)

	w := doJSON(storeRouter(db, first), http.MethodPost, "/auth/store/create/", gin.H{"name": "Boutique"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(storeRouter(db, second), http.MethodPost, "/auth/store/create/", gin.H{"name": "Boutique"})
	require.Equal(t, http.StatusCreated, w.Code)

	var store models.Store
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &store))
	assert.Equal(t, "boutique-2", store.Slug)
}

func TestGetAndUpdateStore(t *testing.T) {
	db := testDB(t)
	seller := createUser(t, db, "gloria", models.UserTypeSeller, true)
	r := storeRouter(db, seller)

	w := doJSON(r, http.MethodGet, "/auth/store/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/auth/store/create/", gin.H{"name": "Casa da Glória"}).Code)

	w = doJSON(r, http.MethodPut, "/auth/store/", gin.H{"description": "Artigos para o lar"})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Store
	require.NoError(t, db.Where("owner_id = ?", seller.ID).First(&stored).Error)
	assert.Equal(t, "Artigos para o lar", stored.Description)
	assert.Equal(t, "Casa da Glória", stored.Name)
}
