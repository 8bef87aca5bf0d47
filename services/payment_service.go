package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrOrderNotFound     = errors.New("one or more orders not found")
	ErrOrdersNotPayable  = errors.New("only pending orders can be paid")
	ErrNoOrders          = errors.New("payment must reference at least one order")
	ErrInvalidMethod     = errors.New("unsupported payment method")
	ErrPaymentNotPending = errors.New("payment is not pending")
)

// PaymentGateway is the slice of the payment provider the service needs;
// MidtransService implements it.
type PaymentGateway interface {
	Enabled() bool
	CreateTransaction(payment *models.Payment, user models.User) (string, error)
}

// PaymentService creates payments settling one or more orders and applies
// gateway/staff settlement results back to the linked orders.
type PaymentService struct {
	db      *gorm.DB
	gateway PaymentGateway
}

func NewPaymentService(db *gorm.DB, gateway PaymentGateway) *PaymentService {
	return &PaymentService{db: db, gateway: gateway}
}

// Create links the given pending orders of the user into one payment.
// Gateway payments get a Snap redirect URL; cash payments stay pending
// until staff settle them at the counter.
func (ps *PaymentService) Create(user models.User, orderIDs []uint, method string) (*models.Payment, error) {
	if len(orderIDs) == 0 {
		return nil, ErrNoOrders
	}
	if method != models.PaymentMethodCash && method != models.PaymentMethodGateway {
		return nil, ErrInvalidMethod
	}

	var payment models.Payment
	err := ps.db.Transaction(func(tx *gorm.DB) error {
		var orders []models.Order
		if err := tx.Where("id IN ? AND user_id = ?", orderIDs, user.ID).Find(&orders).Error; err != nil {
			return err
		}
		if len(orders) != len(orderIDs) {
			return ErrOrderNotFound
		}

		var amount float64
		for _, order := range orders {
			if order.Status != models.OrderStatusPendingPayment {
				return ErrOrdersNotPayable
			}
			amount += order.TotalAmount
		}

		payment = models.Payment{
			UserID:      user.ID,
			Amount:      amount,
			Method:      method,
			Status:      models.PaymentStatusPending,
			ReferenceID: fmt.Sprintf("PAY-%s", uuid.New().String()[:13]),
			Orders:      orders,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	if method == models.PaymentMethodGateway && ps.gateway != nil && ps.gateway.Enabled() {
		redirectURL, err := ps.gateway.CreateTransaction(&payment, user)
		if err != nil {
			utils.ErrorLogger.Printf("Gateway transaction for payment %s failed: %v", payment.ReferenceID, err)
			// Close out the just-created payment so the orders stay
			// payable on retry instead of piling up pending rows.
			if _, failErr := ps.Fail(payment.ReferenceID, models.PaymentStatusFailed); failErr != nil {
				utils.ErrorLogger.Printf("Failed to mark payment %s failed: %v", payment.ReferenceID, failErr)
			}
			return nil, err
		}
		payment.PaymentURL = redirectURL
		if err := ps.db.Model(&payment).Update("payment_url", redirectURL).Error; err != nil {
			return nil, err
		}
	}

	utils.InfoLogger.Printf("Payment %s created for %d order(s), amount %.2f",
		payment.ReferenceID, len(payment.Orders), payment.Amount)
	return &payment, nil
}

// Settle marks a pending payment successful and flips every linked order
// to paid. Used by the gateway callback and by staff for cash payments.
// Settling an already successful payment is a no-op.
func (ps *PaymentService) Settle(referenceID string) (*models.Payment, error) {
	var payment models.Payment
	err := ps.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Orders").Where("reference_id = ?", referenceID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if payment.Status == models.PaymentStatusSuccess {
			return nil
		}
		if payment.Status != models.PaymentStatusPending {
			return ErrPaymentNotPending
		}

		now := time.Now()
		payment.Status = models.PaymentStatusSuccess
		payment.PaidAt = &now
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		for i := range payment.Orders {
			if err := tx.Model(&payment.Orders[i]).Update("status", models.OrderStatusPaid).Error; err != nil {
				return err
			}
		}

		notification := models.Notification{
			UserID:  payment.UserID,
			Title:   "Payment received",
			Message: fmt.Sprintf("Payment %s for %.2f was successful.", payment.ReferenceID, payment.Amount),
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Payment %s settled", payment.ReferenceID)
	return &payment, nil
}

// Fail marks a pending payment failed or expired without touching orders.
func (ps *PaymentService) Fail(referenceID, status string) (*models.Payment, error) {
	if status != models.PaymentStatusFailed && status != models.PaymentStatusExpired {
		status = models.PaymentStatusFailed
	}

	var payment models.Payment
	if err := ps.db.Where("reference_id = ?", referenceID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status != models.PaymentStatusPending {
		return &payment, nil
	}

	payment.Status = status
	if err := ps.db.Save(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
