package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> browse, with optional kind/category/in-stock filters
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	query := pc.DB.Preload("Category").Order("name")

	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if categoryID, err := strconv.Atoi(c.Query("category_id")); err == nil {
		query = query.Where("category_id = ?", categoryID)
	}
	if c.Query("in_stock") == "true" {
		query = query.Where("in_stock = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetProductBySlug -> single product detail
func (pc *ProductController) GetProductBySlug(c *gin.Context) {
	var product models.Product
	if err := pc.DB.Preload("Category").Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

type productRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Kind        string  `json:"kind" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	ImageUrl    *string `json:"image_url"`
	MeatType    *string `json:"meat_type"`
	SpiceLevel  *int    `json:"spice_level"`
	VolumeML    *int    `json:"volume_ml"`
	Carbonated  *bool   `json:"carbonated"`
	GlutenFree  *bool   `json:"gluten_free"`
}

// CreateProduct -> admin adds a menu item
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidProductKind(req.Kind) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown product kind"))
		return
	}

	var product models.Product
	if err := copier.Copy(&product, &req); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	product.Slug = slug.Make(req.Name)
	product.InStock = true

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("product with this name already exists"))
		return
	}

	utils.InfoLogger.Printf("Product created: %s (%s)", product.Name, product.Kind)
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct -> partial update; only provided fields are copied over
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	var req struct {
		CategoryID  *uint    `json:"category_id"`
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		ImageUrl    *string  `json:"image_url"`
		InStock     *bool    `json:"in_stock"`
		MeatType    *string  `json:"meat_type"`
		SpiceLevel  *int     `json:"spice_level"`
		VolumeML    *int     `json:"volume_ml"`
		Carbonated  *bool    `json:"carbonated"`
		GlutenFree  *bool    `json:"gluten_free"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := copier.CopyWithOption(&product, &req, copier.Option{IgnoreEmpty: true}); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if req.Name != nil {
		product.Slug = slug.Make(*req.Name)
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct -> soft delete
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	if err := pc.DB.Delete(&models.Product{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}
