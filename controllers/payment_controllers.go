package controllers

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/services"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *services.PaymentService
}

func NewPaymentController(db *gorm.DB, service *services.PaymentService) *PaymentController {
	return &PaymentController{DB: db, Service: service}
}

func respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPaymentNotFound), errors.Is(err, services.ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrOrdersNotPayable), errors.Is(err, services.ErrPaymentNotPending):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrNoOrders), errors.Is(err, services.ErrInvalidMethod):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// CreatePayment -> pay one or more of the user's pending orders at once
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var req struct {
		OrderIDs []uint `json:"order_ids" binding:"required"`
		Method   string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := pc.DB.First(&user, currentUserID(c)).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found"))
		return
	}

	payment, err := pc.Service.Create(user, req.OrderIDs, req.Method)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment created", payment)
}

// GetPaymentByID -> detail, owner or staff
func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("payment_id"))

	var payment models.Payment
	if err := pc.DB.Preload("Orders").First(&payment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrPaymentNotFound)
		return
	}
	if payment.UserID != currentUserID(c) && !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, errors.New("payment belongs to another user"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// SettleCash -> staff records a cash payment taken at the counter
func (pc *PaymentController) SettleCash(c *gin.Context) {
	var req struct {
		ReferenceID string `json:"reference_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.Service.Settle(req.ReferenceID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment settled", payment)
}

// HandleGatewayCallback -> Midtrans notification webhook. The signature is
// sha512(order_id + status_code + gross_amount + server_key); skipped when
// no server key is configured (tests, local runs).
func (pc *PaymentController) HandleGatewayCallback(c *gin.Context) {
	var notif struct {
		OrderID           string `json:"order_id" binding:"required"`
		TransactionStatus string `json:"transaction_status" binding:"required"`
		StatusCode        string `json:"status_code"`
		GrossAmount       string `json:"gross_amount"`
		SignatureKey      string `json:"signature_key"`
	}
	if err := c.ShouldBindJSON(&notif); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if serverKey := os.Getenv("MIDTRANS_SERVER_KEY"); serverKey != "" {
		raw := notif.OrderID + notif.StatusCode + notif.GrossAmount + serverKey
		sum := sha512.Sum512([]byte(raw))
		if hex.EncodeToString(sum[:]) != notif.SignatureKey {
			utils.RespondError(c, http.StatusForbidden, errors.New("invalid signature"))
			return
		}
	}

	var (
		payment *models.Payment
		err     error
	)
	switch notif.TransactionStatus {
	case "capture", "settlement":
		payment, err = pc.Service.Settle(notif.OrderID)
	case "expire":
		payment, err = pc.Service.Fail(notif.OrderID, models.PaymentStatusExpired)
	case "deny", "cancel", "failure":
		payment, err = pc.Service.Fail(notif.OrderID, models.PaymentStatusFailed)
	default:
		utils.RespondJSON(c, http.StatusOK, "Notification ignored", nil)
		return
	}
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification processed", payment)
}
