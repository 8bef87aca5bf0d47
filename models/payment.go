package models

import "time"

const (
	PaymentMethodCash    = "cash"
	PaymentMethodGateway = "gateway"

	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
	PaymentStatusExpired = "expired"
)

// Payment settles one or more orders at once; the linkage lives in the
// payment_orders join table.
type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method      string     `gorm:"type:varchar(20);not null;default:'cash'" json:"method"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReferenceID string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference_id"`
	PaymentURL  string     `gorm:"type:varchar(255)" json:"payment_url,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	Orders      []Order    `gorm:"many2many:payment_orders" json:"orders"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}
