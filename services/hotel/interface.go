package hotel

import (
	"context"

	"travelgo/models"
)

// HotelService manages the hotel/room catalog.
type HotelService interface {
	RegisterHotel(ctx context.Context, ownerID string, input models.HotelInput) (*models.Hotel, error)
	GetHotel(ctx context.Context, hotelID string) (*models.Hotel, error)
	ListHotels(ctx context.Context, filter models.HotelFilter) ([]models.Hotel, error)
	ListFeatured(ctx context.Context) ([]models.Hotel, error)
	ListOwnerHotels(ctx context.Context, ownerID string) ([]models.Hotel, error)
	UpdateHotel(ctx context.Context, hotelID, ownerID string, input models.HotelUpdateInput) (*models.Hotel, error)
	UpdateRoom(ctx context.Context, hotelID, ownerID, roomID string, input models.RoomUpdateInput) (*models.Hotel, error)
	AddReview(ctx context.Context, hotelID, userID string, input models.ReviewInput) error
	DeleteHotel(ctx context.Context, hotelID, ownerID string) error
	SetOwner(ctx context.Context, hotelID, ownerID string) error
	FacilitiesCount(ctx context.Context) (map[string]int64, error)
}
