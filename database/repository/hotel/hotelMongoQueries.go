package hotelRepo

import (
	"context"
	"fmt"
	"time"

	"travelgo/models"

	"go.mongodb.org/mongo-driver/bson"
)

// List returns hotels matching the given filter.
func (repo *MongoHotelRepo) List(ctx context.Context, filter models.HotelFilter) ([]models.Hotel, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.City != "" {
		query["location.city"] = filter.City
	}
	if filter.Country != "" {
		query["location.country"] = filter.Country
	}

	cursor, err := repo.coll.Find(ctxWithTimeout, query)
	if err != nil {
		return nil, fmt.Errorf("error listing hotels: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var hotels []models.Hotel
	if err := cursor.All(ctxWithTimeout, &hotels); err != nil {
		return nil, fmt.Errorf("error decoding hotels: %w", err)
	}
	return hotels, nil
}

// ListByOwner returns all hotels registered to the given owner.
func (repo *MongoHotelRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Hotel, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("error listing hotels for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var hotels []models.Hotel
	if err := cursor.All(ctxWithTimeout, &hotels); err != nil {
		return nil, fmt.Errorf("error decoding hotels: %w", err)
	}
	return hotels, nil
}

// ListFeatured returns the featured subset of the catalog.
func (repo *MongoHotelRepo) ListFeatured(ctx context.Context) ([]models.Hotel, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{"featured": true})
	if err != nil {
		return nil, fmt.Errorf("error listing featured hotels: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var hotels []models.Hotel
	if err := cursor.All(ctxWithTimeout, &hotels); err != nil {
		return nil, fmt.Errorf("error decoding hotels: %w", err)
	}
	return hotels, nil
}

// CountByAmenity aggregates how many hotels carry each amenity.
func (repo *MongoHotelRepo) CountByAmenity(ctx context.Context) (map[string]int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$unwind": "$amenities"},
		{"$group": bson.M{"_id": "$amenities", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := repo.coll.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating amenities: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	counts := make(map[string]int64)
	for cursor.Next(ctxWithTimeout) {
		var row struct {
			Amenity string `bson:"_id"`
			Count   int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("error decoding amenity count: %w", err)
		}
		counts[row.Amenity] = row.Count
	}
	return counts, nil
}
