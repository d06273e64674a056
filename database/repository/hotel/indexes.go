package hotelRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used catalog queries.
func (repo *MongoHotelRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	ownerIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	}
	cityIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "location.city", Value: 1}, {Key: "location.country", Value: 1}},
	}
	// Partial index: only hotels flagged featured.
	featuredIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "featured", Value: 1}},
		Options: options.Index().SetPartialFilterExpression(bson.M{
			"featured": true,
		}),
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, ownerIdx, cityIdx, featuredIdx})
	return err
}
