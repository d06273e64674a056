package hotelRepo

import (
	"context"
	"fmt"
	"time"

	"travelgo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new hotel document.
func (repo *MongoHotelRepo) Create(ctx context.Context, hotel *models.Hotel) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, hotel)
	if err != nil {
		return fmt.Errorf("error creating hotel: %w", err)
	}
	return nil
}

// GetByID retrieves a hotel by its ID.
func (repo *MongoHotelRepo) GetByID(ctx context.Context, hotelID string) (*models.Hotel, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var hotel models.Hotel
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": hotelID}).Decode(&hotel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching hotel %s: %w", hotelID, err)
	}
	return &hotel, nil
}

// Update applies the given fields to a hotel document and returns the
// updated document.
func (repo *MongoHotelRepo) Update(ctx context.Context, hotelID string, fields map[string]interface{}) (*models.Hotel, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Hotel
	err := repo.coll.FindOneAndUpdate(ctxWithTimeout, bson.M{"id": hotelID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating hotel %s: %w", hotelID, err)
	}
	return &updated, nil
}

// UpdateRoom mutates an embedded room in place via the positional operator.
func (repo *MongoHotelRepo) UpdateRoom(ctx context.Context, hotelID, roomID string, fields map[string]interface{}) (*models.Hotel, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set["rooms.$."+k] = v
	}

	filter := bson.M{"id": hotelID, "rooms.id": roomID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Hotel
	err := repo.coll.FindOneAndUpdate(ctxWithTimeout, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating room %s of hotel %s: %w", roomID, hotelID, err)
	}
	return &updated, nil
}

// SetRoomAvailability flips the availability flag on an embedded room.
func (repo *MongoHotelRepo) SetRoomAvailability(ctx context.Context, hotelID, roomID string, available bool) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": hotelID, "rooms.id": roomID}
	update := bson.M{"$set": bson.M{"rooms.$.available": available, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error setting availability of room %s: %w", roomID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("room %s not found in hotel %s", roomID, hotelID)
	}
	return nil
}

// AddReview appends an embedded review.
func (repo *MongoHotelRepo) AddReview(ctx context.Context, hotelID string, review models.Review) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": hotelID}, update)
	if err != nil {
		return fmt.Errorf("error adding review to hotel %s: %w", hotelID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("hotel %s not found", hotelID)
	}
	return nil
}

// SetOwner assigns the hotel's owner identifier.
func (repo *MongoHotelRepo) SetOwner(ctx context.Context, hotelID, ownerID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"owner_id": ownerID, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": hotelID}, update)
	if err != nil {
		return fmt.Errorf("error setting owner of hotel %s: %w", hotelID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("hotel %s not found", hotelID)
	}
	return nil
}

// Delete removes a hotel document.
func (repo *MongoHotelRepo) Delete(ctx context.Context, hotelID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctxWithTimeout, bson.M{"id": hotelID})
	if err != nil {
		return fmt.Errorf("error deleting hotel %s: %w", hotelID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("hotel %s not found", hotelID)
	}
	return nil
}
