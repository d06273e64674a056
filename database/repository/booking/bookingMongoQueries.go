package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"travelgo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListByUser returns all bookings made by the given user, newest first.
func (repo *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return repo.find(ctx, bson.M{"user_id": userID})
}

// ListByHotel returns all bookings against the given hotel, newest first.
func (repo *MongoBookingRepo) ListByHotel(ctx context.Context, hotelID string) ([]models.Booking, error) {
	return repo.find(ctx, bson.M{"hotel_id": hotelID})
}

// ListRecentWithTransactions returns bookings created since the given time
// that carry an on-chain transaction hash. Used by the reconciliation job.
func (repo *MongoBookingRepo) ListRecentWithTransactions(ctx context.Context, since time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"created_at":       bson.M{"$gte": since},
		"transaction_hash": bson.M{"$nin": bson.A{"", nil}},
	}
	return repo.find(ctx, filter)
}

// ListUpcomingCheckIns returns confirmed bookings whose check-in falls in
// [from, to). Used by the reminder sweep; a booking qualifies regardless of
// when it was created or how it was paid.
func (repo *MongoBookingRepo) ListUpcomingCheckIns(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status":   bson.M{"$in": bson.A{models.BookingStatusConfirmed, models.BookingStatusActive}},
		"check_in": bson.M{"$gte": from, "$lt": to},
	}
	return repo.find(ctx, filter)
}

func (repo *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ensureIndexes creates indexes for frequently used booking queries.
func (repo *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	userIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	}
	hotelIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "hotel_id", Value: 1}},
	}
	checkInIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "check_in", Value: 1}},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, userIdx, hotelIdx, checkInIdx})
	return err
}
