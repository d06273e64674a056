package models

import "time"

// Invoice points at a PDF receipt rendered for a paid booking.
type Invoice struct {
	Number    string    `bson:"number" json:"number"` // INV-YYYYMMDD-<bookingID>
	BookingID string    `bson:"booking_id" json:"bookingId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Path      string    `bson:"path" json:"path"` // location of the rendered PDF on disk
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
