package models

import "time"

// Amenities a hotel or room may advertise. Create and update requests are
// validated against this list; anything else is rejected.
var ValidAmenities = []string{
	"wifi",
	"parking",
	"pool",
	"gym",
	"spa",
	"restaurant",
	"bar",
	"room-service",
	"laundry",
	"airport-shuttle",
	"pet-friendly",
	"air-conditioning",
}

// IsValidAmenity reports whether s is a member of ValidAmenities.
func IsValidAmenity(s string) bool {
	for _, a := range ValidAmenities {
		if a == s {
			return true
		}
	}
	return false
}

// Location describes where a hotel is.
type Location struct {
	City    string  `bson:"city" json:"city"`
	Country string  `bson:"country" json:"country"`
	Address string  `bson:"address" json:"address"`
	Lat     float64 `bson:"lat" json:"lat"`
	Lng     float64 `bson:"lng" json:"lng"`
}

// Room is embedded in its parent hotel document and has no identity outside it.
type Room struct {
	ID            string   `bson:"id" json:"id"`
	Type          string   `bson:"type" json:"type"`                     // e.g. "double", "suite"
	Beds          string   `bson:"beds" json:"beds"`                     // bed configuration, e.g. "1 king", "2 queen"
	PricePerNight float64  `bson:"price_per_night" json:"pricePerNight"` // in the platform currency
	Available     bool     `bson:"available" json:"available"`
	Amenities     []string `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Images        []string `bson:"images,omitempty" json:"images,omitempty"`
}

// Review is embedded in the hotel document.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Author    string    `bson:"author" json:"author"`
	Rating    float64   `bson:"rating" json:"rating"` // 1-10
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Hotel is the catalog document: rooms, reviews and the legacy bookings
// sub-array are embedded rather than referenced.
type Hotel struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Location    Location  `bson:"location" json:"location"`
	Images      []string  `bson:"images,omitempty" json:"images,omitempty"`
	Amenities   []string  `bson:"amenities,omitempty" json:"amenities,omitempty"`
	StarRating  int       `bson:"star_rating" json:"starRating"` // 1-5
	Rating      float64   `bson:"rating" json:"rating"`          // 1-10
	MaxGuests   int       `bson:"max_guests" json:"maxGuests"`
	Rooms       []Room    `bson:"rooms,omitempty" json:"rooms,omitempty"`
	Reviews     []Review  `bson:"reviews,omitempty" json:"reviews,omitempty"`
	Bookings    []Booking `bson:"bookings,omitempty" json:"bookings,omitempty"` // legacy sub-array, kept for old documents
	OwnerID     string    `bson:"owner_id" json:"ownerId"`
	Featured    bool      `bson:"featured,omitempty" json:"featured,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// RoomByID returns the embedded room with the given id, or nil.
func (h *Hotel) RoomByID(roomID string) *Room {
	for i := range h.Rooms {
		if h.Rooms[i].ID == roomID {
			return &h.Rooms[i]
		}
	}
	return nil
}
