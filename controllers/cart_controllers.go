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

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// GetCart -> the requesting user's cart with line totals
func (cc *CartController) GetCart(c *gin.Context) {
	var items []models.CartItem
	if err := cc.DB.Preload("Product").
		Where("user_id = ?", currentUserID(c)).
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}

	utils.RespondJSON(c, http.StatusOK, "Cart", gin.H{
		"items": items,
		"total": total,
	})
}

// AddItem -> add a product; adding an existing product increments quantity
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		ProductID uint   `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
		Note      string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var product models.Product
	if err := cc.DB.First(&product, req.ProductID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	if !product.InStock {
		utils.RespondError(c, http.StatusConflict, errors.New("product is out of stock"))
		return
	}

	userID := currentUserID(c)

	var item models.CartItem
	err := cc.DB.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += req.Quantity
		if req.Note != "" {
			item.Note = req.Note
		}
		if err := cc.DB.Save(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Note:      req.Note,
		}
		if err := cc.DB.Create(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", item)
}

// UpdateItem -> change quantity of a cart line
func (cc *CartController) UpdateItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.CartItem
	if err := cc.DB.Where("id = ? AND user_id = ?", id, currentUserID(c)).First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart item not found"))
		return
	}

	item.Quantity = req.Quantity
	if err := cc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart item updated", item)
}

// RemoveItem -> drop a cart line
func (cc *CartController) RemoveItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	result := cc.DB.Where("id = ? AND user_id = ?", id, currentUserID(c)).Delete(&models.CartItem{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart item not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart item removed", gin.H{"item_id": id})
}

// ClearCart -> empty the user's cart
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.DB.Where("user_id = ?", currentUserID(c)).Delete(&models.CartItem{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}
