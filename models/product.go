package models

import (
	"time"

	"gorm.io/gorm"
)

// Product kinds. Each kind carries its own optional variant columns; rows
// for other kinds leave them NULL.
const (
	ProductKindDoner   = "doner"
	ProductKindKebab   = "kebab"
	ProductKindDrink   = "drink"
	ProductKindDessert = "dessert"
	ProductKindSalad   = "salad"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CategoryID  uint            `gorm:"not null" json:"category_id"`
	Category    ProductCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Kind        string          `gorm:"type:varchar(20);not null" json:"kind"`
	Price       float64         `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	ImageUrl    *string         `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	InStock     bool            `gorm:"not null;default:true" json:"in_stock"`

	// doner / kebab
	MeatType   *string `gorm:"type:varchar(50)" json:"meat_type,omitempty"`
	SpiceLevel *int    `json:"spice_level,omitempty"`
	// drink
	VolumeML   *int  `json:"volume_ml,omitempty"`
	Carbonated *bool `json:"carbonated,omitempty"`
	// dessert / salad
	GlutenFree *bool `json:"gluten_free,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func ValidProductKind(kind string) bool {
	switch kind {
	case ProductKindDoner, ProductKindKebab, ProductKindDrink, ProductKindDessert, ProductKindSalad:
		return true
	}
	return false
}
