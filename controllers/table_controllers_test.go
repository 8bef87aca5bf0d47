package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/middlewares"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
)

func setupTableRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	ctrl := NewTableController(db)

	r.GET("/tables", ctrl.GetAllTables)
	r.GET("/tables/:table_id", ctrl.GetTableByID)
	r.GET("/tables/:table_id/qr", ctrl.GetTableQR)

	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/tables", ctrl.CreateTable)
		admin.PATCH("/tables/:table_id/availability", ctrl.UpdateTableAvailability)
		admin.DELETE("/tables/:table_id", ctrl.DeleteTable)
	}

	return r
}

func TestCreateAndListTables(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	r := setupTableRouter(db)
	token := tokenFor(t, admin)

	w := doJSON(t, r, http.MethodPost, "/admin/tables", token, gin.H{
		"table_number": "W1",
		"capacity":     2,
		"location":     "window",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate table number is rejected
	w = doJSON(t, r, http.MethodPost, "/admin/tables", token, gin.H{
		"table_number": "W1",
		"capacity":     4,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown location is rejected
	w = doJSON(t, r, http.MethodPost, "/admin/tables", token, gin.H{
		"table_number": "X1",
		"capacity":     4,
		"location":     "rooftop",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/tables", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "List of tables", response["message"])
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestTableAvailabilityToggle(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	table := seedTable(t, db, "P1", 4)
	r := setupTableRouter(db)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/tables/%d/availability", table.ID),
		tokenFor(t, admin), gin.H{"available": false})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["available"])
}

func TestDeleteTableBlockedByActiveReservations(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	guest := seedUser(t, db, models.RoleCustomer)
	table := seedTable(t, db, "M1", 4)
	r := setupTableRouter(db)
	token := tokenFor(t, admin)

	reservation := models.Reservation{
		UserID:          guest.ID,
		TableID:         table.ID,
		ReservationTime: time.Now().Add(24 * time.Hour),
		PartySize:       2,
		Status:          models.ReservationStatusConfirmed,
	}
	assert.NoError(t, db.Create(&reservation).Error)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/tables/%d", table.ID), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Once the reservation is cancelled the table can go
	assert.NoError(t, db.Model(&reservation).Update("status", models.ReservationStatusCancelled).Error)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/tables/%d", table.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTableQRCode(t *testing.T) {
	db := newTestDB(t)
	table := seedTable(t, db, "Q1", 2)
	r := setupTableRouter(db)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/tables/%d/qr", table.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())

	w = doJSON(t, r, http.MethodGet, "/tables/999/qr", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
