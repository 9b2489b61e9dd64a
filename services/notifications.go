package services

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/sirupsen/logrus"
)

// NotificationService sends booking confirmation emails. Delivery is best
// effort: failures are logged and never surfaced to the caller, since the
// booking has already committed by the time we get here.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// BookingConfirmation is the payload rendered into the confirmation email.
type BookingConfirmation struct {
	RestaurantName   string
	Date             string
	Time             string
	PartySize        int
	BookingID        uint
	ConfirmationCode string
}

// SendBookingConfirmation emails the customer. When SMTP is not configured
// (local development, tests) it logs and returns.
func (ns *NotificationService) SendBookingConfirmation(email, name string, confirmation BookingConfirmation) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logrus.WithFields(logrus.Fields{
			"bookingID": confirmation.BookingID,
			"email":     email,
		}).Debug("SMTP_HOST not set, skipping confirmation email")
		return nil
	}

	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")

	subject := fmt.Sprintf("Your table at %s is booked", confirmation.RestaurantName)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour reservation is confirmed.\r\n\r\n"+
			"Restaurant: %s\r\nDate: %s\r\nTime: %s\r\nParty size: %d\r\n"+
			"Confirmation code: %s\r\n",
		name, confirmation.RestaurantName, confirmation.Date, confirmation.Time,
		confirmation.PartySize, confirmation.ConfirmationCode,
	)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", from, email, subject, body))

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	if err := smtp.SendMail(host+":"+port, auth, from, []string{email}, msg); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"bookingID": confirmation.BookingID,
			"email":     email,
		}).Warn("failed to send booking confirmation")
		return err
	}

	logrus.WithField("bookingID", confirmation.BookingID).Info("booking confirmation sent")
	return nil
}
