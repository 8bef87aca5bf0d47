package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> register a new physical table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required,min=1"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Location:    models.TableLocationMainDining,
		Available:   true,
	}
	if req.Location != "" {
		if !models.ValidTableLocation(req.Location) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("unknown table location"))
			return
		}
		table.Location = req.Location
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("table number already exists"))
		return
	}

	utils.InfoLogger.Printf("Table %s created (capacity %d, %s)", table.TableNumber, table.Capacity, table.Location)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// GetAllTables -> list of all tables
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> single table detail
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTableAvailability -> toggle the availability flag
func (tc *TableController) UpdateTableAvailability(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	table.Available = *req.Available
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table availability updated", table)
}

// DeleteTable -> remove a table; blocked while active reservations exist
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	var active int64
	if err := tc.DB.Model(&models.Reservation{}).
		Where("table_id = ? AND status <> ?", table.ID, models.ReservationStatusCancelled).
		Count(&active).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if active > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("table has active reservations"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %s deleted", table.TableNumber)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": table.ID})
}

// GetTableQR -> PNG QR code encoding the table number, printed on the table
func (tc *TableController) GetTableQR(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	png, err := qrcode.Encode("table:"+table.TableNumber, qrcode.Medium, 256)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
