package lib

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var DB *mongo.Database

// ConnectDB establishes the MongoDB connection and sets the global DB handle.
// The connect and ping are bounded so a stalled database fails fast at boot.
func ConnectDB() *mongo.Client {
	uri := Env("MONGO_URI", "mongodb://localhost:27017")
	dbName := Env("MONGO_DB", "worklink")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	DB = client.Database(dbName)
	log.Println("Connected to MongoDB!")
	return client
}
