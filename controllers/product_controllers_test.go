package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/middlewares"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
)

func setupProductRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	categoryCtrl := NewProductCategoryController(db)
	productCtrl := NewProductController(db)

	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/:slug", productCtrl.GetProductBySlug)

	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:product_id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:product_id", productCtrl.DeleteProduct)
	}

	return r
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.ProductCategory {
	category := models.ProductCategory{Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name, kind string, price float64) models.Product {
	product := models.Product{
		CategoryID: categoryID,
		Name:       name,
		Slug:       fmt.Sprintf("%s-%d", name, categoryID),
		Kind:       kind,
		Price:      price,
		InStock:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestCreateProductWithVariantFields(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	category := seedCategory(t, db, "Mains")
	r := setupProductRouter(db)
	token := tokenFor(t, admin)

	w := doJSON(t, r, http.MethodPost, "/admin/products", token, gin.H{
		"category_id": category.ID,
		"name":        "Adana Kebab",
		"kind":        "kebab",
		"price":       185.50,
		"meat_type":   "lamb",
		"spice_level": 3,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "adana-kebab", data["slug"])
	assert.Equal(t, "lamb", data["meat_type"])
	assert.EqualValues(t, 3, data["spice_level"])
	assert.Equal(t, true, data["in_stock"])

	// Unknown kind is rejected before touching the database
	w = doJSON(t, r, http.MethodPost, "/admin/products", token, gin.H{
		"category_id": category.ID,
		"name":        "Mystery Dish",
		"kind":        "pizza",
		"price":       99.0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Drinks carry their own variant fields
	w = doJSON(t, r, http.MethodPost, "/admin/products", token, gin.H{
		"category_id": category.ID,
		"name":        "Ayran",
		"kind":        "drink",
		"price":       25.0,
		"volume_ml":   300,
		"carbonated":  false,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 300, data["volume_ml"])
}

func TestProductFiltersAndDetail(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, "Menu")
	other := seedCategory(t, db, "Drinks")
	seedProduct(t, db, category.ID, "iskender", models.ProductKindKebab, 210)
	seedProduct(t, db, category.ID, "beef-doner", models.ProductKindDoner, 120)
	drink := seedProduct(t, db, other.ID, "cola", models.ProductKindDrink, 30)
	r := setupProductRouter(db)

	w := doJSON(t, r, http.MethodGet, "/products", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 3)

	w = doJSON(t, r, http.MethodGet, "/products?kind=kebab", "", nil)
	data = decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 1)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/products?category_id=%d", other.ID), "", nil)
	data = decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 1)

	// Out-of-stock products drop out of the in_stock filter
	assert.NoError(t, db.Model(&drink).Update("in_stock", false).Error)
	w = doJSON(t, r, http.MethodGet, "/products?in_stock=true", "", nil)
	data = decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 2)

	w = doJSON(t, r, http.MethodGet, "/products/"+drink.Slug, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/products/no-such-dish", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProductPartial(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	category := seedCategory(t, db, "Menu")
	product := seedProduct(t, db, category.ID, "chicken-doner", models.ProductKindDoner, 95)
	r := setupProductRouter(db)
	token := tokenFor(t, admin)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/products/%d", product.ID), token, gin.H{
		"price": 110.0,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 110, data["price"])
	// Untouched fields survive the partial update
	assert.Equal(t, "chicken-doner", data["name"])

	// Renaming regenerates the slug
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/products/%d", product.ID), token, gin.H{
		"name": "Chicken Doner XL",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "chicken-doner-xl", data["slug"])
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	category := seedCategory(t, db, "Menu")
	product := seedProduct(t, db, category.ID, "baklava", models.ProductKindDessert, 75)
	r := setupProductRouter(db)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/products/%d", product.ID), tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Gone from queries, still on disk
	var count int64
	assert.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.NoError(t, db.Unscoped().Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCategoryEndpoints(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	customer := seedUser(t, db, models.RoleCustomer)
	r := setupProductRouter(db)

	// Customers cannot create categories
	w := doJSON(t, r, http.MethodPost, "/admin/categories", tokenFor(t, customer), gin.H{"name": "Soups"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/categories", tokenFor(t, admin), gin.H{"name": "Soups"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 1)
}
