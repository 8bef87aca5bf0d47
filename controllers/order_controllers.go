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

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// Checkout -> turn the user's cart into a pending order, snapshotting
// prices and clearing the cart in one transaction.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID := currentUserID(c)

	var order models.Order
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return errors.New("cart is empty")
		}

		order = models.Order{
			UserID: userID,
			Status: models.OrderStatusPendingPayment,
		}

		for _, item := range items {
			if !item.Product.InStock {
				return errors.New(item.Product.Name + " is out of stock")
			}
			order.OrderItems = append(order.OrderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Product.Price,
				Note:      item.Note,
			})
			order.TotalAmount += item.Product.Price * float64(item.Quantity)
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	utils.InfoLogger.Printf("Order %d created for user %d, total %.2f", order.ID, userID, order.TotalAmount)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetMyOrders -> orders of the requesting user
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("OrderItems.Product").
		Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail, owner or staff
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("OrderItems.Product").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if order.UserID != currentUserID(c) && !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, errors.New("order belongs to another user"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> staff moves an order along the allowed transitions
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if !models.OrderCanTransition(order.Status, req.Status) {
		utils.RespondError(c, http.StatusConflict, errors.New("invalid order status transition"))
		return
	}

	order.Status = req.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// CancelOrder -> owner cancels while still awaiting payment
func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	if order.UserID != currentUserID(c) {
		utils.RespondError(c, http.StatusForbidden, errors.New("order belongs to another user"))
		return
	}
	if order.Status != models.OrderStatusPendingPayment {
		utils.RespondError(c, http.StatusConflict, errors.New("only unpaid orders can be cancelled"))
		return
	}

	order.Status = models.OrderStatusCancelled
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}
