package bookingRepo

import (
	"log"

	"travelgo/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("travelgo")
	repo := &MongoBookingRepo{
		coll: db.Collection("bookings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("booking repo: failed to ensure indexes: %v", err)
	}
	return repo
}
