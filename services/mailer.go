package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewMailerFromEnv returns nil when SMTP_HOST is unset, which disables
// mail entirely.
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@restaurant-app.local"
	}

	return &Mailer{
		host:     host,
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
		from:     from,
	}
}

func (m *Mailer) SendReservationConfirmed(to string, reservation models.Reservation) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your reservation is confirmed")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your reservation for table %s on %s (party of %d) has been confirmed.\n\nSee you soon!",
		reservation.Table.TableNumber,
		reservation.ReservationTime.Format("2006-01-02 15:04"),
		reservation.PartySize,
	))

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}
