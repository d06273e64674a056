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

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, booking)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID. Returns (nil, nil) when missing.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// UpdateVersioned applies the given fields under an optimistic-concurrency
// guard: the filter pins the version the caller read, and the update bumps
// it, so a concurrent edit loses cleanly instead of clobbering.
func (repo *MongoBookingRepo) UpdateVersioned(ctx context.Context, bookingID string, expectedVersion int, fields map[string]interface{}) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	filter := bson.M{"id": bookingID, "version": expectedVersion}
	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := repo.coll.FindOneAndUpdate(ctxWithTimeout, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish a missing booking from a lost version race.
			existing, getErr := repo.GetByID(ctx, bookingID)
			if getErr != nil {
				return nil, getErr
			}
			if existing == nil {
				return nil, fmt.Errorf("booking %s not found", bookingID)
			}
			return nil, ErrVersionConflict
		}
		return nil, fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	return &updated, nil
}

// SetReconcileStatus records the outcome of a chain reconciliation scan.
// The write is unconditioned: reconciliation never races user edits on the
// fields it touches.
func (repo *MongoBookingRepo) SetReconcileStatus(ctx context.Context, bookingID, status string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"reconcile_status": status, "updated_at": time.Now()}}
	_, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error setting reconcile status on booking %s: %w", bookingID, err)
	}
	return nil
}
