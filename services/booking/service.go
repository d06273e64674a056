package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "travelgo/database/repository/booking"
	hotelRepo "travelgo/database/repository/hotel"
	"travelgo/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	HotelRepo hotelRepo.HotelRepository
	Logger    *zap.Logger

	// Now is swapped in tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateBooking persists a confirmed reservation at checkout. The room must
// exist under the hotel and still be available; nightly price times the stay
// length sets the total.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, input models.BookingInput) (*models.Booking, error) {
	if !input.CheckOut.After(input.CheckIn) {
		return nil, newError(CodeInvalidDates, "check-out date must be after check-in date")
	}
	if input.CheckIn.Before(s.now()) {
		return nil, newError(CodeInvalidDates, "check-in date must be in the future")
	}
	if input.PaymentMethod != "" && !models.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, newError(CodeInvalidDates, fmt.Sprintf("unsupported payment method %q", input.PaymentMethod))
	}

	hotel, err := s.HotelRepo.GetByID(ctx, input.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotel: %w", err)
	}
	if hotel == nil {
		return nil, newError(CodeNotFound, "hotel not found")
	}
	room := hotel.RoomByID(input.RoomID)
	if room == nil {
		return nil, newError(CodeNotFound, "room not found in hotel")
	}
	if !room.Available {
		return nil, newError(CodeRoomUnavailable, "room is not available")
	}

	nights := int(input.CheckOut.Sub(input.CheckIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	now := s.now()
	b := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		HotelID:       input.HotelID,
		RoomID:        input.RoomID,
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		Guests:        input.Guests,
		TotalPrice:    room.PricePerNight * float64(nights),
		Status:        models.BookingStatusConfirmed,
		GuestName:     input.GuestName,
		GuestEmail:    input.GuestEmail,
		GuestPhone:    input.GuestPhone,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// A booked room stops being offered until the booking is cancelled.
	if err := s.HotelRepo.SetRoomAvailability(ctx, b.HotelID, b.RoomID, false); err != nil {
		s.Logger.Warn("failed to mark room unavailable",
			zap.String("bookingID", b.ID), zap.Error(err))
	}

	s.Logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("hotelID", b.HotelID),
		zap.String("roomID", b.RoomID))
	return b, nil
}

// GetBooking fetches a single booking.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, newError(CodeNotFound, "booking not found")
	}
	return b, nil
}

// EditBooking applies the one allowed edit. Preconditions, checked in order:
// the booking exists, its status is confirmed, it has not been edited
// before, and check-in is still in the future. Only allow-listed fields are
// applied; editRequested flips true permanently.
func (s *DefaultBookingService) EditBooking(ctx context.Context, bookingID string, input models.BookingEditInput) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, newError(CodeNotFound, "booking not found")
	}
	if !b.IsConfirmed() {
		return nil, newError(CodeNotConfirmed, "only confirmed bookings can be edited")
	}
	if b.EditRequested {
		return nil, newError(CodeAlreadyEdited, "edit already requested for this booking")
	}
	if !b.CheckIn.After(s.now()) {
		return nil, newError(CodeAlreadyStarted, "cannot edit a booking that has started")
	}

	checkIn, checkOut := b.CheckIn, b.CheckOut
	if input.CheckIn != nil {
		checkIn = *input.CheckIn
	}
	if input.CheckOut != nil {
		checkOut = *input.CheckOut
	}
	if !checkOut.After(checkIn) {
		return nil, newError(CodeInvalidDates, "check-out date must be after check-in date")
	}

	fields := map[string]interface{}{
		"edit_requested": true,
		"check_in":       checkIn,
		"check_out":      checkOut,
	}
	if input.Guests != nil {
		fields["guests"] = *input.Guests
	}
	if input.GuestName != nil {
		fields["guest_name"] = *input.GuestName
	}
	if input.GuestEmail != nil {
		fields["guest_email"] = *input.GuestEmail
	}
	if input.GuestPhone != nil {
		fields["guest_phone"] = *input.GuestPhone
	}

	updated, err := s.Repo.UpdateVersioned(ctx, bookingID, b.Version, fields)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			return nil, newError(CodeConflict, "booking was modified concurrently, retry")
		}
		return nil, err
	}

	s.Logger.Info("booking edited", zap.String("bookingID", bookingID))
	return updated, nil
}

// CancelBooking transitions a confirmed, not-yet-started booking to
// cancelled. Fund movement is deferred to a client-initiated wallet
// transaction; refunded stays false until the refund path runs.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, newError(CodeNotFound, "booking not found")
	}
	if !b.IsConfirmed() {
		return nil, newError(CodeNotConfirmed, "only confirmed bookings can be cancelled")
	}
	if !b.CheckIn.After(s.now()) {
		return nil, newError(CodeAlreadyStarted, "cannot cancel a booking that has started")
	}

	fields := map[string]interface{}{
		"status":   models.BookingStatusCancelled,
		"refunded": false,
	}
	updated, err := s.Repo.UpdateVersioned(ctx, bookingID, b.Version, fields)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			return nil, newError(CodeConflict, "booking was modified concurrently, retry")
		}
		return nil, err
	}

	// Free the room for new reservations. Best effort: the booking is
	// already cancelled, so a failure here only delays re-listing.
	if err := s.HotelRepo.SetRoomAvailability(ctx, b.HotelID, b.RoomID, true); err != nil {
		s.Logger.Warn("failed to release room after cancellation",
			zap.String("bookingID", bookingID), zap.Error(err))
	}

	s.Logger.Info("booking cancelled", zap.String("bookingID", bookingID))
	return updated, nil
}

// AttachTransaction records the client wallet's transaction and approval
// hashes on the booking.
func (s *DefaultBookingService) AttachTransaction(ctx context.Context, bookingID, txHash, approvalHash string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, newError(CodeNotFound, "booking not found")
	}

	fields := map[string]interface{}{
		"transaction_hash": txHash,
	}
	if approvalHash != "" {
		fields["approval_hash"] = approvalHash
	}
	updated, err := s.Repo.UpdateVersioned(ctx, bookingID, b.Version, fields)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			return nil, newError(CodeConflict, "booking was modified concurrently, retry")
		}
		return nil, err
	}
	return updated, nil
}

// MarkRefunded flips the refunded flag after a refund job completes.
func (s *DefaultBookingService) MarkRefunded(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, newError(CodeNotFound, "booking not found")
	}

	updated, err := s.Repo.UpdateVersioned(ctx, bookingID, b.Version, map[string]interface{}{
		"refunded": true,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			return nil, newError(CodeConflict, "booking was modified concurrently, retry")
		}
		return nil, err
	}
	return updated, nil
}

// ListUserBookings returns the user's bookings, newest first.
func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, userID)
}
