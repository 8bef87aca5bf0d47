package models

import "time"

const (
	TableLocationWindow     = "window"
	TableLocationPatio      = "patio"
	TableLocationMainDining = "main_dining_room"
)

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"table_number"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Location    string    `gorm:"type:varchar(50);not null;default:'main_dining_room'" json:"location"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func ValidTableLocation(loc string) bool {
	switch loc {
	case TableLocationWindow, TableLocationPatio, TableLocationMainDining:
		return true
	}
	return false
}
