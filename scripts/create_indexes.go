package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Run this script once to create database indexes
// Usage: MONGO_URI=... go run scripts/create_indexes.go
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("❌ MONGO_URI is required")
	}
	dbName := os.Getenv("MONGO_DB_NAME")
	if dbName == "" {
		dbName = "ecommerce"
	}

	clientOptions := options.Client().ApplyURI(mongoURI).SetServerSelectionTimeout(30 * time.Second)

	log.Println("🔄 Connecting to MongoDB...")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("❌ Failed to create client: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	log.Println("✅ Connected to MongoDB successfully!")

	db := client.Database(dbName)

	createIndex := func(coll string, model mongo.IndexModel) {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, model)
		if err != nil {
			log.Printf("Failed to create index %s on %s: %v", *model.Options.Name, coll, err)
		} else {
			log.Printf("✅ Created index: %s on %s", *model.Options.Name, coll)
		}
	}

	// Uniqueness guards. The repositories pre-check for friendlier errors,
	// but these indexes are the authority under concurrent writes.
	createIndex("users", mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	})
	createIndex("categories", mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("uniq_slug").SetUnique(true),
	})
	createIndex("coupons", mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetName("uniq_code").SetUnique(true),
	})
	createIndex("reviews", mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "productId", Value: 1},
			{Key: "orderId", Value: 1},
		},
		Options: options.Index().SetName("uniq_user_product_order").SetUnique(true),
	})

	// Query-path indexes.
	createIndex("products", mongo.IndexModel{
		Keys: bson.D{
			{Key: "categoryId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("idx_category_createdAt"),
	})
	createIndex("products", mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_status"),
	})
	createIndex("orders", mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("idx_user_createdAt"),
	})
	createIndex("orders", mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_status"),
	})
	createIndex("carts", mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("uniq_userId").SetUnique(true),
	})
	createIndex("flashDeals", mongo.IndexModel{
		Keys: bson.D{
			{Key: "isActive", Value: 1},
			{Key: "startDate", Value: 1},
			{Key: "endDate", Value: 1},
		},
		Options: options.Index().SetName("idx_active_window"),
	})
	createIndex("reviews", mongo.IndexModel{
		Keys: bson.D{
			{Key: "productId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("idx_product_createdAt"),
	})
	createIndex("banners", mongo.IndexModel{
		Keys: bson.D{
			{Key: "isActive", Value: 1},
			{Key: "position", Value: 1},
		},
		Options: options.Index().SetName("idx_active_position"),
	})

	log.Println("🎉 Index creation complete")
}
