package bookingRepo

import (
	"context"
	"errors"
	"time"

	"travelgo/models"
)

// ErrVersionConflict is returned when a conditional update loses against a
// concurrent writer (the document's version moved underneath us).
var ErrVersionConflict = errors.New("booking was modified concurrently")

// BookingRepository abstracts persistence for booking documents. Bookings
// are never hard-deleted; cancellation is a status transition.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByHotel(ctx context.Context, hotelID string) ([]models.Booking, error)
	// UpdateVersioned applies fields only when the stored version still
	// matches expectedVersion, bumping the version on success. Returns
	// ErrVersionConflict when the guard fails.
	UpdateVersioned(ctx context.Context, bookingID string, expectedVersion int, fields map[string]interface{}) (*models.Booking, error)
	SetReconcileStatus(ctx context.Context, bookingID, status string) error
	ListRecentWithTransactions(ctx context.Context, since time.Time) ([]models.Booking, error)
	ListUpcomingCheckIns(ctx context.Context, from, to time.Time) ([]models.Booking, error)
}
