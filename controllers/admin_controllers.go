package controllers

import (
	"net/http"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetStats -> dashboard counters and revenue
func (ac *AdminController) GetStats(c *gin.Context) {
	var (
		userCount    int64
		tableCount   int64
		productCount int64
		revenue      float64
	)

	ac.DB.Model(&models.User{}).Count(&userCount)
	ac.DB.Model(&models.Table{}).Count(&tableCount)
	ac.DB.Model(&models.Product{}).Count(&productCount)
	ac.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusSuccess).
		Select("COALESCE(SUM(amount), 0)").Scan(&revenue)

	ordersByStatus := map[string]int64{}
	for _, status := range []string{
		models.OrderStatusPendingPayment, models.OrderStatusPaid,
		models.OrderStatusPreparing, models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	} {
		var n int64
		ac.DB.Model(&models.Order{}).Where("status = ?", status).Count(&n)
		ordersByStatus[status] = n
	}

	reservationsByStatus := map[string]int64{}
	for _, status := range []string{
		models.ReservationStatusPending, models.ReservationStatusConfirmed,
		models.ReservationStatusCancelled,
	} {
		var n int64
		ac.DB.Model(&models.Reservation{}).Where("status = ?", status).Count(&n)
		reservationsByStatus[status] = n
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"users":        userCount,
		"tables":       tableCount,
		"products":     productCount,
		"orders":       ordersByStatus,
		"reservations": reservationsByStatus,
		"revenue":      revenue,
	})
}
