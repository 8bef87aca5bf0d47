package services

import (
	"time"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReservationSweeper cancels pending reservations nobody confirmed before
// their window fully elapsed, so stale rows stop blocking the table.
type ReservationSweeper struct {
	db   *gorm.DB
	cron *cron.Cron
}

func NewReservationSweeper(db *gorm.DB) *ReservationSweeper {
	return &ReservationSweeper{
		db:   db,
		cron: cron.New(),
	}
}

func (w *ReservationSweeper) Start() {
	w.cron.AddFunc("@every 5m", w.Sweep)
	w.cron.Start()
	utils.InfoLogger.Println("Reservation sweeper started")
}

func (w *ReservationSweeper) Stop() {
	w.cron.Stop()
}

// Sweep runs one pass; exported so tests can trigger it directly.
func (w *ReservationSweeper) Sweep() {
	cutoff := time.Now().Add(-models.ReservationDuration)
	result := w.db.Model(&models.Reservation{}).
		Where("status = ? AND reservation_time < ?", models.ReservationStatusPending, cutoff).
		Update("status", models.ReservationStatusCancelled)

	if result.Error != nil {
		utils.ErrorLogger.Printf("Reservation sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		utils.InfoLogger.Printf("Reservation sweep cancelled %d stale reservations", result.RowsAffected)
	}
}
