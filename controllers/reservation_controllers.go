package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/services"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReservationController struct {
	DB      *gorm.DB
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB, service *services.ReservationService) *ReservationController {
	return &ReservationController{DB: db, Service: service}
}

// respondReservationError maps the service error taxonomy onto HTTP codes.
func respondReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTableNotFound), errors.Is(err, services.ErrReservationNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrTableUnavailable), errors.Is(err, services.ErrSlotConflict),
		errors.Is(err, services.ErrInvalidTransition):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrCapacityExceeded), errors.Is(err, services.ErrPastTime):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, services.ErrNotOwner):
		utils.RespondError(c, http.StatusForbidden, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// CheckAvailability -> dry-run admission check, no side effects
func (rc *ReservationController) CheckAvailability(c *gin.Context) {
	tableID, _ := strconv.Atoi(c.Query("table_id"))
	partySize, _ := strconv.Atoi(c.Query("party_size"))
	at, err := time.Parse(time.RFC3339, c.Query("time"))
	if err != nil || tableID == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table_id, time (RFC3339) and party_size are required"))
		return
	}

	if err := rc.Service.CheckAvailability(uint(tableID), at, partySize); err != nil {
		respondReservationError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Slot available", gin.H{
		"table_id":     tableID,
		"window_start": at,
		"window_end":   at.Add(models.ReservationDuration),
	})
}

// CreateReservation -> book a table for the requesting user
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		TableID         uint      `json:"table_id" binding:"required"`
		ReservationTime time.Time `json:"reservation_time" binding:"required"`
		PartySize       int       `json:"party_size" binding:"required,min=1,max=20"`
		Note            string    `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Service.Create(currentUserID(c), req.TableID, req.ReservationTime, req.PartySize, req.Note)
	if err != nil {
		respondReservationError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// GetMyReservations -> reservations owned by the requesting user
func (rc *ReservationController) GetMyReservations(c *gin.Context) {
	var reservations []models.Reservation
	if err := rc.DB.Preload("Table").
		Where("user_id = ?", currentUserID(c)).
		Order("reservation_time").
		Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetAllReservations -> staff view, optionally filtered by table
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	query := rc.DB.Preload("Table").Order("reservation_time")
	if tableID, err := strconv.Atoi(c.Query("table_id")); err == nil {
		query = query.Where("table_id = ?", tableID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationByID -> detail, owner or staff only
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("reservation_id"))

	var reservation models.Reservation
	if err := rc.DB.Preload("Table").First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrReservationNotFound)
		return
	}

	if reservation.UserID != currentUserID(c) && !isStaff(c) {
		utils.RespondError(c, http.StatusForbidden, services.ErrNotOwner)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// UpdateReservation -> owner changes table/time/party size/note
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("reservation_id"))

	var changes services.ReservationChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if changes.PartySize != nil && (*changes.PartySize < 1 || *changes.PartySize > models.MaxPartySize) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("party_size must be between 1 and 20"))
		return
	}

	reservation, err := rc.Service.Update(uint(id), currentUserID(c), changes)
	if err != nil {
		respondReservationError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

// CancelReservation -> owner or staff; idempotent on cancelled rows
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("reservation_id"))

	reservation, err := rc.Service.Cancel(uint(id), currentUserID(c), currentRole(c))
	if err != nil {
		respondReservationError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", reservation)
}

// ConfirmReservation -> staff approves a pending reservation
func (rc *ReservationController) ConfirmReservation(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("reservation_id"))

	reservation, err := rc.Service.Confirm(uint(id))
	if err != nil {
		respondReservationError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation confirmed", reservation)
}
