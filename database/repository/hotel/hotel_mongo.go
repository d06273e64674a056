package hotelRepo

import (
	"log"

	"travelgo/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoHotelRepo implements HotelRepository using MongoDB.
type MongoHotelRepo struct {
	coll *mongo.Collection
}

// NewMongoHotelRepo constructs a new instance of MongoHotelRepo.
func NewMongoHotelRepo() HotelRepository {
	db := database.MongoClient.Database("travelgo")
	repo := &MongoHotelRepo{
		coll: db.Collection("hotels"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("hotel repo: failed to ensure indexes: %v", err)
	}
	return repo
}
