package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FavouriteController struct {
	DB *gorm.DB
}

func NewFavouriteController(db *gorm.DB) *FavouriteController {
	return &FavouriteController{DB: db}
}

// GetMyFavourites -> the user's favourite products
func (fc *FavouriteController) GetMyFavourites(c *gin.Context) {
	var favourites []models.Favourite
	if err := fc.DB.Preload("Product").
		Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&favourites).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of favourites", favourites)
}

// AddFavourite -> idempotent: favouriting twice returns the existing row
func (fc *FavouriteController) AddFavourite(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var product models.Product
	if err := fc.DB.First(&product, req.ProductID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	userID := currentUserID(c)

	var favourite models.Favourite
	err := fc.DB.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&favourite).Error
	if err == nil {
		utils.RespondJSON(c, http.StatusOK, "Already in favourites", favourite)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	favourite = models.Favourite{UserID: userID, ProductID: req.ProductID}
	if err := fc.DB.Create(&favourite).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Added to favourites", favourite)
}

// RemoveFavourite -> drop a product from the user's favourites
func (fc *FavouriteController) RemoveFavourite(c *gin.Context) {
	productID, _ := strconv.Atoi(c.Param("product_id"))

	result := fc.DB.Where("user_id = ? AND product_id = ?", currentUserID(c), productID).
		Delete(&models.Favourite{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("favourite not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Removed from favourites", gin.H{"product_id": productID})
}
