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

func setupFavouriteRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	favCtrl := NewFavouriteController(db)
	commentCtrl := NewCommentController(db)

	r.GET("/comments/:product_id", commentCtrl.GetCommentsByProduct)

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/favourites", favCtrl.GetMyFavourites)
		auth.POST("/favourites", favCtrl.AddFavourite)
		auth.DELETE("/favourites/:product_id", favCtrl.RemoveFavourite)

		auth.POST("/comments", commentCtrl.CreateComment)
		auth.DELETE("/comments/:comment_id", commentCtrl.DeleteComment)
	}

	return r
}

func TestFavouritesFlow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	category := seedCategory(t, db, "Menu")
	product := seedProduct(t, db, category.ID, "kunefe", models.ProductKindDessert, 85)
	r := setupFavouriteRouter(db)
	token := tokenFor(t, user)

	w := doJSON(t, r, http.MethodPost, "/favourites", token, gin.H{"product_id": product.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Favouriting the same product again returns the existing row
	w = doJSON(t, r, http.MethodPost, "/favourites", token, gin.H{"product_id": product.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	assert.NoError(t, db.Model(&models.Favourite{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Unknown product
	w = doJSON(t, r, http.MethodPost, "/favourites", token, gin.H{"product_id": product.ID + 99})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/favourites", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 1)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/favourites/%d", product.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/favourites/%d", product.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentsFlow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	other := seedUser(t, db, models.RoleCustomer)
	staff := seedUser(t, db, models.RoleStaff)
	category := seedCategory(t, db, "Menu")
	product := seedProduct(t, db, category.ID, "lentil-soup", models.ProductKindSalad, 45)
	r := setupFavouriteRouter(db)

	w := doJSON(t, r, http.MethodPost, "/comments", tokenFor(t, user), gin.H{
		"product_id": product.ID,
		"rating":     5,
		"body":       "best in town",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeResponse(t, w)["data"].(map[string]interface{})["id"].(float64))

	// Rating outside 1..5 fails validation
	w = doJSON(t, r, http.MethodPost, "/comments", tokenFor(t, user), gin.H{
		"product_id": product.ID,
		"rating":     6,
		"body":       "too good to rate",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Reviews are public
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/comments/%d", product.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 1)

	// Only the author or staff may delete
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/comments/%d", id), tokenFor(t, other), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/comments/%d", id), tokenFor(t, staff), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/comments/%d", product.ID), "", nil)
	data = decodeResponse(t, w)["data"].([]interface{})
	assert.Empty(t, data)
}
