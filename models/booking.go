package models

import "time"

// Booking statuses. "active" is a legacy alias for confirmed still present in
// old documents and is treated as confirmed everywhere.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusActive    = "active"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Reconciliation outcomes recorded by the chain reconciliation job.
const (
	ReconcileOK         = "ok"
	ReconcileMismatch   = "mismatch"
	ReconcileUnverified = "unverified"
)

// Booking represents a guest's reservation record. Bookings are never hard
// deleted; cancellation is a status transition.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"user_id" json:"userId"`
	HotelID         string    `bson:"hotel_id" json:"hotelId"`
	RoomID          string    `bson:"room_id" json:"roomId"`
	CheckIn         time.Time `bson:"check_in" json:"checkIn"`
	CheckOut        time.Time `bson:"check_out" json:"checkOut"`
	Guests          int       `bson:"guests" json:"guests"`
	TotalPrice      float64   `bson:"total_price" json:"totalPrice"`
	Status          string    `bson:"status" json:"status"`
	GuestName       string    `bson:"guest_name" json:"guestName"`
	GuestEmail      string    `bson:"guest_email" json:"guestEmail"`
	GuestPhone      string    `bson:"guest_phone,omitempty" json:"guestPhone,omitempty"`
	PaymentMethod   string    `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"` // crypto, card or bank
	TransactionHash string    `bson:"transaction_hash,omitempty" json:"transactionHash,omitempty"`
	ApprovalHash    string    `bson:"approval_hash,omitempty" json:"approvalHash,omitempty"`
	EditRequested   bool      `bson:"edit_requested" json:"editRequested"` // one-time-edit guard, flips true permanently
	Refunded        bool      `bson:"refunded" json:"refunded"`
	ReconcileStatus string    `bson:"reconcile_status,omitempty" json:"reconcileStatus,omitempty"`
	Version         int       `bson:"version" json:"-"` // optimistic-concurrency counter
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsConfirmed reports whether the booking is in a state that allows edits
// and cancellation (status-wise; the check-in guard is separate).
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusActive
}
