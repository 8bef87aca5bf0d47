package models

import "time"

const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusPreparing      = "preparing"
	OrderStatusCompleted      = "completed"
	OrderStatusCancelled      = "cancelled"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Status      string      `gorm:"type:varchar(20);not null;default:'pending_payment'" json:"status"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	OrderItems  []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

// OrderTransitions lists the staff-driven status moves; anything else is
// rejected by the order controller.
var OrderTransitions = map[string][]string{
	OrderStatusPendingPayment: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusPreparing},
	OrderStatusPreparing:      {OrderStatusCompleted},
}

func OrderCanTransition(from, to string) bool {
	for _, next := range OrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
