package notification

import (
	"fmt"

	"travelgo/models"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// EmailSender abstracts the SMTP dialer so tests can substitute a fake.
type EmailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotificationService is the production implementation, backed by a
// single pre-configured SMTP transport.
type EmailNotificationService struct {
	Sender      EmailSender
	From        string
	FrontendURL string
	Logger      *zap.Logger
}

// NewEmailNotificationService wires a gomail dialer from SMTP settings.
func NewEmailNotificationService(host string, port int, user, password, frontendURL string, logger *zap.Logger) *EmailNotificationService {
	return &EmailNotificationService{
		Sender:      gomail.NewDialer(host, port, user, password),
		From:        user,
		FrontendURL: frontendURL,
		Logger:      logger,
	}
}

// SendPaymentSuccess emails the receipt summary after a successful payment.
func (s *EmailNotificationService) SendPaymentSuccess(booking *models.Booking, result *models.PaymentResult) bool {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour payment for booking %s is confirmed.\n\nAmount charged: %.2f\nInvoice: %s\nPayment reference: %s\n",
		booking.GuestName, booking.ID, result.AmountCharged, result.InvoiceNumber, result.PaymentID)
	if result.TransactionHash != "" {
		body += fmt.Sprintf("Transaction hash: %s\n", result.TransactionHash)
	}
	body += fmt.Sprintf("\nView your booking: %s/bookings/%s\n", s.FrontendURL, booking.ID)
	return s.send(booking.GuestEmail, "Your Travel.Go booking is confirmed", body)
}

// SendPaymentFailure emails the guest when a payment attempt fails.
func (s *EmailNotificationService) SendPaymentFailure(booking *models.Booking, reason string) bool {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour payment for booking %s could not be processed: %s\n\nNo charge was made. You can retry from %s/bookings/%s\n",
		booking.GuestName, booking.ID, reason, s.FrontendURL, booking.ID)
	return s.send(booking.GuestEmail, "Travel.Go payment failed", body)
}

// SendRefundNotice emails the guest after a refund is processed.
func (s *EmailNotificationService) SendRefundNotice(booking *models.Booking, result *models.RefundResult) bool {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour refund of %.2f for booking %s has been processed.\nRefund reference: %s\n",
		booking.GuestName, result.Amount, booking.ID, result.RefundID)
	return s.send(booking.GuestEmail, "Travel.Go refund processed", body)
}

// SendCheckInReminder emails the guest ahead of check-in.
func (s *EmailNotificationService) SendCheckInReminder(booking *models.Booking) bool {
	body := fmt.Sprintf(
		"Hi %s,\n\nA reminder that your stay begins on %s.\n\nBooking details: %s/bookings/%s\n",
		booking.GuestName, booking.CheckIn.Format("2 January 2006"), s.FrontendURL, booking.ID)
	return s.send(booking.GuestEmail, "Your Travel.Go stay is coming up", body)
}

// send swallows transport errors into a logged message: a failed email never
// rolls back booking state or an already-rendered invoice.
func (s *EmailNotificationService) send(to, subject, body string) bool {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.Sender.DialAndSend(m); err != nil {
		s.Logger.Error("failed to send email",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return false
	}
	return true
}
