package hotel

import (
	"context"
	"fmt"
	"time"

	hotelRepo "travelgo/database/repository/hotel"
	"travelgo/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultHotelService implements HotelService.
type DefaultHotelService struct {
	Repo        hotelRepo.HotelRepository
	CacheClient *redis.Client
	Logger      *zap.Logger
}

func validateAmenities(amenities []string) error {
	for _, a := range amenities {
		if !models.IsValidAmenity(a) {
			return newError(CodeValidation, fmt.Sprintf("invalid amenity %q", a))
		}
	}
	return nil
}

func validateInput(input models.HotelInput) error {
	if input.StarRating < 1 || input.StarRating > 5 {
		return newError(CodeValidation, "star rating must be between 1 and 5")
	}
	if input.Rating != 0 && (input.Rating < 1 || input.Rating > 10) {
		return newError(CodeValidation, "rating must be between 1 and 10")
	}
	if err := validateAmenities(input.Amenities); err != nil {
		return err
	}
	for _, r := range input.Rooms {
		if err := validateAmenities(r.Amenities); err != nil {
			return err
		}
		if r.PricePerNight <= 0 {
			return newError(CodeValidation, fmt.Sprintf("room %q must have a positive nightly price", r.Type))
		}
	}
	return nil
}

// RegisterHotel creates a hotel for the authenticated owner. Embedded rooms
// get generated IDs and start available unless the input says otherwise.
func (s *DefaultHotelService) RegisterHotel(ctx context.Context, ownerID string, input models.HotelInput) (*models.Hotel, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	h := &models.Hotel{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		Images:      input.Images,
		Amenities:   input.Amenities,
		StarRating:  input.StarRating,
		Rating:      input.Rating,
		MaxGuests:   input.MaxGuests,
		Rooms:       input.Rooms,
		OwnerID:     ownerID,
		Featured:    input.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i := range h.Rooms {
		if h.Rooms[i].ID == "" {
			h.Rooms[i].ID = uuid.New().String()
			h.Rooms[i].Available = true
		}
	}

	if err := s.Repo.Create(ctx, h); err != nil {
		return nil, err
	}
	s.invalidateCatalogCache(ctx)

	s.Logger.Info("hotel registered", zap.String("hotelID", h.ID), zap.String("ownerID", ownerID))
	return h, nil
}

// GetHotel fetches a single hotel.
func (s *DefaultHotelService) GetHotel(ctx context.Context, hotelID string) (*models.Hotel, error) {
	h, err := s.Repo.GetByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, newError(CodeNotFound, "hotel not found")
	}
	return h, nil
}

// ListHotels returns hotels matching the filter.
func (s *DefaultHotelService) ListHotels(ctx context.Context, filter models.HotelFilter) ([]models.Hotel, error) {
	return s.Repo.List(ctx, filter)
}

// ListOwnerHotels returns the owner's hotels.
func (s *DefaultHotelService) ListOwnerHotels(ctx context.Context, ownerID string) ([]models.Hotel, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// UpdateHotel applies an allow-listed partial update. Only provided fields
// are touched, and only the registered owner may mutate the hotel.
func (s *DefaultHotelService) UpdateHotel(ctx context.Context, hotelID, ownerID string, input models.HotelUpdateInput) (*models.Hotel, error) {
	if input.Amenities != nil {
		if err := validateAmenities(input.Amenities); err != nil {
			return nil, err
		}
	}
	if input.StarRating != nil && (*input.StarRating < 1 || *input.StarRating > 5) {
		return nil, newError(CodeValidation, "star rating must be between 1 and 5")
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 10) {
		return nil, newError(CodeValidation, "rating must be between 1 and 10")
	}
	if err := s.requireOwner(ctx, hotelID, ownerID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.StarRating != nil {
		fields["star_rating"] = *input.StarRating
	}
	if input.Rating != nil {
		fields["rating"] = *input.Rating
	}
	if input.MaxGuests != nil {
		fields["max_guests"] = *input.MaxGuests
	}
	if input.Featured != nil {
		fields["featured"] = *input.Featured
	}
	if input.Images != nil {
		fields["images"] = input.Images
	}
	if input.Amenities != nil {
		fields["amenities"] = input.Amenities
	}
	if len(fields) == 0 {
		return nil, newError(CodeValidation, "no hotel fields to update")
	}

	updated, err := s.Repo.Update(ctx, hotelID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, newError(CodeNotFound, "hotel not found")
	}
	s.invalidateCatalogCache(ctx)
	return updated, nil
}

// UpdateRoom mutates an embedded room in place (price, availability, beds).
func (s *DefaultHotelService) UpdateRoom(ctx context.Context, hotelID, ownerID, roomID string, input models.RoomUpdateInput) (*models.Hotel, error) {
	if err := s.requireOwner(ctx, hotelID, ownerID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.PricePerNight != nil {
		fields["price_per_night"] = *input.PricePerNight
	}
	if input.Available != nil {
		fields["available"] = *input.Available
	}
	if input.Beds != "" {
		fields["beds"] = input.Beds
	}
	if len(fields) == 0 {
		return nil, newError(CodeValidation, "no room fields to update")
	}

	updated, err := s.Repo.UpdateRoom(ctx, hotelID, roomID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, newError(CodeNotFound, "room not found in hotel")
	}
	return updated, nil
}

// AddReview appends an embedded review to the hotel.
func (s *DefaultHotelService) AddReview(ctx context.Context, hotelID, userID string, input models.ReviewInput) error {
	review := models.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		Author:    input.Author,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}
	return s.Repo.AddReview(ctx, hotelID, review)
}

// DeleteHotel removes the hotel document. Owner-only; explicit hard delete.
func (s *DefaultHotelService) DeleteHotel(ctx context.Context, hotelID, ownerID string) error {
	if err := s.requireOwner(ctx, hotelID, ownerID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, hotelID); err != nil {
		return err
	}
	s.invalidateCatalogCache(ctx)
	s.Logger.Info("hotel deleted", zap.String("hotelID", hotelID))
	return nil
}

// SetOwner assigns ownership; called from the admin surface after the
// Firebase custom claim is granted.
func (s *DefaultHotelService) SetOwner(ctx context.Context, hotelID, ownerID string) error {
	return s.Repo.SetOwner(ctx, hotelID, ownerID)
}

func (s *DefaultHotelService) requireOwner(ctx context.Context, hotelID, ownerID string) error {
	h, err := s.Repo.GetByID(ctx, hotelID)
	if err != nil {
		return err
	}
	if h == nil {
		return newError(CodeNotFound, "hotel not found")
	}
	if h.OwnerID != ownerID {
		return newError(CodeForbidden, "caller does not own this hotel")
	}
	return nil
}
