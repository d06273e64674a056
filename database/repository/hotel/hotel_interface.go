package hotelRepo

import (
	"context"

	"travelgo/models"
)

// HotelRepository abstracts persistence for hotel documents.
type HotelRepository interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	GetByID(ctx context.Context, hotelID string) (*models.Hotel, error)
	List(ctx context.Context, filter models.HotelFilter) ([]models.Hotel, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Hotel, error)
	ListFeatured(ctx context.Context) ([]models.Hotel, error)
	Update(ctx context.Context, hotelID string, fields map[string]interface{}) (*models.Hotel, error)
	UpdateRoom(ctx context.Context, hotelID, roomID string, fields map[string]interface{}) (*models.Hotel, error)
	SetRoomAvailability(ctx context.Context, hotelID, roomID string, available bool) error
	AddReview(ctx context.Context, hotelID string, review models.Review) error
	SetOwner(ctx context.Context, hotelID, ownerID string) error
	Delete(ctx context.Context, hotelID string) error
	CountByAmenity(ctx context.Context) (map[string]int64, error)
}
