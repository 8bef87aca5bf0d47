package models

import (
	"time"

	"gorm.io/gorm"
)

// ReservationDuration is the fixed slot length every reservation occupies
// on a table, as the half-open window [ReservationTime, ReservationTime+2h).
const ReservationDuration = 2 * time.Hour

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

const MaxPartySize = 20

type Reservation struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	User            User           `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TableID         uint           `gorm:"not null;index" json:"table_id"`
	Table           Table          `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	ReservationTime time.Time      `gorm:"not null;index" json:"reservation_time"`
	PartySize       int            `gorm:"not null" json:"party_size"`
	Status          string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Note            string         `gorm:"type:text" json:"note"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// WindowEnd returns the exclusive end of the reservation's time window.
func (r *Reservation) WindowEnd() time.Time {
	return r.ReservationTime.Add(ReservationDuration)
}
