package productControllers

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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Store{}, &models.Category{}, &models.Product{}))
	return db
}

func createSellerWithStore(t *testing.T, db *gorm.DB, username string, active bool) (models.User, models.Store) {
	t.Helper()
	seller := models.User{Username: username, Email: username + "@test.com", PasswordHash: "x", UserType: models.UserTypeSeller, IsApprovedSeller: true}
	require.NoError(t, db.Create(&seller).Error)
	store := models.Store{OwnerID: seller.ID, Name: username + " store", Slug: username + "-store", IsActive: active}
	require.NoError(t, db.Create(&store).Error)
	return seller, store
}

func createProduct(t *testing.T, db *gorm.DB, store models.Store, name string, featured bool) models.Product {
	t.Helper()
	product := models.Product{
		StoreID:  store.ID,
		Name:     name,
		Slug:     name,
		Price:    decimal.NewFromInt(5000),
		InStock:  true,
		Featured: featured,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func asSeller(seller models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", seller.ID)
		c.Set("user_type", string(seller.UserType))
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func publicRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products/", GetProducts(db))
	r.GET("/products/search/", SearchProducts(db))
	r.GET("/products/:slug/", GetProductBySlug(db, nil))
	return r
}

func TestGetProductsFeaturedOnly(t *testing.T) {
	db := testDB(t)
	_, store := createSellerWithStore(t, db, "ativa", true)
	createProduct(t, db, store, "destaque", true)
	createProduct(t, db, store, "comum", false)

	_, hidden := createSellerWithStore(t, db, "inativa", false)
	createProduct(t, db, hidden, "escondido", true)

	w := doJSON(publicRouter(db), http.MethodGet, "/products/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "destaque", products[0].Slug)
}

func TestGetProductsByStore(t *testing.T) {
	db := testDB(t)
	_, store := createSellerWithStore(t, db, "lojinha", true)
	createProduct(t, db, store, "item-a", false)
	createProduct(t, db, store, "item-b", true)

	w := doJSON(publicRouter(db), http.MethodGet, "/products/?store="+store.Slug, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}

func TestSearchProducts(t *testing.T) {
	db := testDB(t)
	_, store := createSellerWithStore(t, db, "busca", true)
	createProduct(t, db, store, "camisa-azul", false)
	createProduct(t, db, store, "sapato-preto", false)

	r := publicRouter(db)

	w := doJSON(r, http.MethodGet, "/products/search/?query=camisa", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "camisa-azul", products[0].Slug)

	w = doJSON(r, http.MethodGet, "/products/search/", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductBySlug(t *testing.T) {
	db := testDB(t)
	_, store := createSellerWithStore(t, db, "detalhe", true)
	product := createProduct(t, db, store, "colar", false)

	r := publicRouter(db)

	w := doJSON(r, http.MethodGet, "/products/"+product.Slug+"/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, product.ID, got.ID)

	w = doJSON(r, http.MethodGet, "/products/nao-existe/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func sellerProductRouter(db *gorm.DB, seller models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asSeller(seller))
	r.POST("/products/seller/create/", CreateProduct(db))
	r.PUT("/products/seller/:slug/", UpdateProduct(db))
	r.DELETE("/products/seller/:slug/", DeleteProduct(db))
	return r
}

func TestCreateProductSlugsAreUnique(t *testing.T) {
	db := testDB(t)
	seller, _ := createSellerWithStore(t, db, "vende", true)

	r := sellerProductRouter(db, seller)

	payload := gin.H{"name": "Camisa Polo", "price": "8500.00", "stock_quantity": 5}
	w := doJSON(r, http.MethodPost, "/products/seller/create/", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var first models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, "camisa-polo", first.Slug)

	w = doJSON(r, http.MethodPost, "/products/seller/create/", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var second models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, "camisa-polo-2", second.Slug)
	assert.True(t, second.Price.Equal(decimal.RequireFromString("8500.00")))
}

func TestCreateProductRequiresStore(t *testing.T) {
	db := testDB(t)
	seller := models.User{Username: "semloja", Email: "sl@test.com", PasswordHash: "x", UserType: models.UserTypeSeller}
	require.NoError(t, db.Create(&seller).Error)

	w := doJSON(sellerProductRouter(db, seller), http.MethodPost, "/products/seller/create/", gin.H{"name": "Bola", "price": "100"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductBuyerForbidden(t *testing.T) {
	db := testDB(t)
	buyer := models.User{Username: "sopesquisa", Email: "sp@test.com", PasswordHash: "x", UserType: models.UserTypeBuyer}
	require.NoError(t, db.Create(&buyer).Error)

	w := doJSON(sellerProductRouter(db, buyer), http.MethodPost, "/products/seller/create/", gin.H{"name": "Bola", "price": "100"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateProductScopedToOwnStore(t *testing.T) {
	db := testDB(t)
	seller, store := createSellerWithStore(t, db, "dona", true)
	other, _ := createSellerWithStore(t, db, "vizinha", true)
	product := createProduct(t, db, store, "vaso", false)

	// The neighbour's seller cannot touch it.
	w := doJSON(sellerProductRouter(db, other), http.MethodPut, "/products/seller/"+product.Slug+"/", gin.H{"stock_quantity": 0})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(sellerProductRouter(db, seller), http.MethodPut, "/products/seller/"+product.Slug+"/", gin.H{"in_stock": false, "stock_quantity": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Product
	require.NoError(t, db.Where("slug = ?", product.Slug).First(&stored).Error)
	assert.False(t, stored.InStock)
	assert.Equal(t, 0, stored.StockQuantity)
}

func TestDeleteProduct(t *testing.T) {
	db := testDB(t)
	seller, store := createSellerWithStore(t, db, "fecha", true)
	product := createProduct(t, db, store, "abajur", false)

	w := doJSON(sellerProductRouter(db, seller), http.MethodDelete, "/products/seller/"+product.Slug+"/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Product{}).Where("slug = ?", product.Slug).Count(&count)
	assert.EqualValues(t, 0, count)

	// Soft delete keeps the slug reserved.
	db.Unscoped().Model(&models.Product{}).Where("slug = ?", product.Slug).Count(&count)
	assert.EqualValues(t, 1, count)
}
