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

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetMyNotifications -> the user's notifications, newest first
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	var notifications []models.Notification
	if err := nc.DB.Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of notifications", notifications)
}

// MarkRead -> flag a notification as read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("notification_id"))

	var notification models.Notification
	if err := nc.DB.Where("id = ? AND user_id = ?", id, currentUserID(c)).
		First(&notification).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	notification.Read = true
	if err := nc.DB.Save(&notification).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notification)
}
