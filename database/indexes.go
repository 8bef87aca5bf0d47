package database

import (
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"gorm.io/gorm"
)

// EnsureIndexes installs the composite index backing the reservation
// overlap scan. AutoMigrate creates the single-column indexes from the
// model tags; the admission check filters on all three columns at once.
func EnsureIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	if !migrator.HasIndex(&models.Reservation{}, "idx_reservations_ledger") {
		if err := db.Exec(
			"CREATE INDEX idx_reservations_ledger ON reservations (table_id, reservation_time, status)",
		).Error; err != nil {
			return err
		}
		utils.InfoLogger.Println("Created reservation ledger index")
	}

	return nil
}
