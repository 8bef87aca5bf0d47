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

type CommentController struct {
	DB *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

// GetCommentsByProduct -> public product reviews, newest first
func (cc *CommentController) GetCommentsByProduct(c *gin.Context) {
	productID, _ := strconv.Atoi(c.Param("product_id"))

	var comments []models.Comment
	if err := cc.DB.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of comments", comments)
}

// CreateComment -> rate and review a product
func (cc *CommentController) CreateComment(c *gin.Context) {
	var req struct {
		ProductID uint   `json:"product_id" binding:"required"`
		Rating    int    `json:"rating" binding:"required,min=1,max=5"`
		Body      string `json:"body" binding:"required"`
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

	comment := models.Comment{
		UserID:    currentUserID(c),
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Body:      req.Body,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Comment created", comment)
}

// DeleteComment -> soft delete by the author or staff
func (cc *CommentController) DeleteComment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("comment_id"))

	var comment models.Comment
	if err := cc.DB.First(&comment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("comment not found"))
		return
	}

	if comment.UserID != currentUserID(c) && !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, errors.New("comment belongs to another user"))
		return
	}

	if err := cc.DB.Delete(&comment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Comment deleted", gin.H{"comment_id": id})
}
