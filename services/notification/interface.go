package notification

import "travelgo/models"

// NotificationService sends transactional email around the payment
// lifecycle. Every method is fire-and-forget: it returns whether the send
// succeeded and never propagates transport errors to the caller.
type NotificationService interface {
	SendPaymentSuccess(booking *models.Booking, result *models.PaymentResult) bool
	SendPaymentFailure(booking *models.Booking, reason string) bool
	SendRefundNotice(booking *models.Booking, result *models.RefundResult) bool
	SendCheckInReminder(booking *models.Booking) bool
}
