package models

import "time"

// Input DTOs. Handlers bind these strictly (unknown fields rejected) and
// services copy only these fields into persisted documents, so request
// bodies can never smuggle extra state into Mongo.

// HotelInput is the owner-facing create payload.
type HotelInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Location    Location `json:"location" binding:"required"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	StarRating  int      `json:"starRating" binding:"required,min=1,max=5"`
	Rating      float64  `json:"rating" binding:"omitempty,min=1,max=10"`
	MaxGuests   int      `json:"maxGuests" binding:"required,min=1"`
	Rooms       []Room   `json:"rooms"`
	Featured    bool     `json:"featured"`
}

// HotelUpdateInput is the partial update payload. Every field is optional;
// only fields on this allow-list are ever applied to the document.
type HotelUpdateInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Location    *Location `json:"location"`
	Images      []string  `json:"images"`
	Amenities   []string  `json:"amenities"`
	StarRating  *int      `json:"starRating" binding:"omitempty,min=1,max=5"`
	Rating      *float64  `json:"rating" binding:"omitempty,min=1,max=10"`
	MaxGuests   *int      `json:"maxGuests" binding:"omitempty,min=1"`
	Featured    *bool     `json:"featured"`
}

// RoomUpdateInput mutates an embedded room in place.
type RoomUpdateInput struct {
	PricePerNight *float64 `json:"pricePerNight" binding:"omitempty,gt=0"`
	Available     *bool    `json:"available"`
	Beds          string   `json:"beds"`
}

// BookingInput creates a booking at checkout.
type BookingInput struct {
	HotelID       string    `json:"hotelId" binding:"required"`
	RoomID        string    `json:"roomId" binding:"required"`
	CheckIn       time.Time `json:"checkIn" binding:"required"`
	CheckOut      time.Time `json:"checkOut" binding:"required"`
	Guests        int       `json:"guests" binding:"required,min=1"`
	GuestName     string    `json:"guestName" binding:"required"`
	GuestEmail    string    `json:"guestEmail" binding:"required,email"`
	GuestPhone    string    `json:"guestPhone"`
	PaymentMethod string    `json:"paymentMethod"`
}

// BookingEditInput is the one allowed edit. Every field is optional; only
// fields on this allow-list are ever applied to the document.
type BookingEditInput struct {
	CheckIn    *time.Time `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut"`
	Guests     *int       `json:"guests" binding:"omitempty,min=1"`
	GuestName  *string    `json:"guestName"`
	GuestEmail *string    `json:"guestEmail" binding:"omitempty,email"`
	GuestPhone *string    `json:"guestPhone"`
}

// ReviewInput adds an embedded review to a hotel.
type ReviewInput struct {
	Author  string  `json:"author" binding:"required"`
	Rating  float64 `json:"rating" binding:"required,min=1,max=10"`
	Comment string  `json:"comment"`
}

// HotelFilter narrows catalog listings.
type HotelFilter struct {
	City    string
	Country string
}

// SetHotelOwnerInput is the admin payload that grants ownership.
type SetHotelOwnerInput struct {
	HotelID  string `json:"hotelId" binding:"required"`
	OwnerUID string `json:"ownerUid" binding:"required"`
}
