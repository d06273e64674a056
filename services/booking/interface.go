package booking

import (
	"context"

	"travelgo/models"
)

// BookingService manages the reservation lifecycle: creation at checkout,
// the single allowed edit, and cancellation.
type BookingService interface {
	CreateBooking(ctx context.Context, userID string, input models.BookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	EditBooking(ctx context.Context, bookingID string, input models.BookingEditInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	AttachTransaction(ctx context.Context, bookingID, txHash, approvalHash string) (*models.Booking, error)
	MarkRefunded(ctx context.Context, bookingID string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
}
