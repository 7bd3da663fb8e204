package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ShopsCollection         *mongo.Collection
	BookingsCollection      *mongo.Collection
	ReviewsCollection       *mongo.Collection
	UserCollection          *mongo.Collection
	SubscriptionsCollection *mongo.Collection
	Client                  *mongo.Client
)

// Init connects to MongoDB and binds the collection handles. Called
// once from main; core packages never touch the database.
func Init() error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	Client = client

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "garagedb"
	}

	ShopsCollection = client.Database(dbName).Collection("shops")
	BookingsCollection = client.Database(dbName).Collection("bookings")
	ReviewsCollection = client.Database(dbName).Collection("reviews")
	UserCollection = client.Database(dbName).Collection("users")
	SubscriptionsCollection = client.Database(dbName).Collection("subscriptions")

	log.Printf("Connected to MongoDB at %s (db=%s)", uri, dbName)
	return nil
}

// Close disconnects the client. Used during graceful shutdown.
func Close(ctx context.Context) {
	if Client != nil {
		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("Mongo disconnect error: %v", err)
		}
	}
}
