package services

import (
	"os"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransService wraps the Snap client; the payment flow is a pass-through
// to the gateway, nothing here retries or reconciles.
type MidtransService struct {
	client  snap.Client
	enabled bool
}

func NewMidtransService() *MidtransService {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")

	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_ENV") == "production" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(serverKey, env)

	return &MidtransService{
		client:  client,
		enabled: serverKey != "",
	}
}

func (ms *MidtransService) Enabled() bool {
	return ms.enabled
}

// CreateTransaction opens a Snap transaction for the payment and returns
// the redirect URL the customer completes it on.
func (ms *MidtransService) CreateTransaction(payment *models.Payment, user models.User) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  payment.ReferenceID,
			GrossAmt: int64(payment.Amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.Name,
			Email: user.Email,
		},
	}

	resp, err := ms.client.CreateTransaction(req)
	if err != nil {
		return "", err
	}

	return resp.RedirectURL, nil
}
