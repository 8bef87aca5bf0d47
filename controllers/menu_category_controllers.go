package controllers

import (
	"errors"
	"net/http"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductCategoryController struct {
	DB *gorm.DB
}

func NewProductCategoryController(db *gorm.DB) *ProductCategoryController {
	return &ProductCategoryController{DB: db}
}

// GetAllCategories -> list every category
func (pc *ProductCategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.ProductCategory
	if err := pc.DB.Order("name").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// CreateCategory -> admin adds a category
func (pc *ProductCategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.ProductCategory{Name: req.Name}
	if err := pc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("category already exists"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}
