package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var DB *mongo.Database

// ConnectDB connects to MongoDB and sets the global Client and DB variables.
// Load must have been called first.
func ConnectDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(App.MongoURI))
	if err != nil {
		log.Fatalf("mongo.Connect error: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("mongo.Ping error: %v", err)
	}

	Client = client
	DB = client.Database(App.MongoDB)

	log.Println("Connected to MongoDB:", App.MongoDB)
}
