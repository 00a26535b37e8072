package repository

import (
	"context"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DashboardStats struct {
	TotalUsers    int64            `json:"totalUsers"`
	TotalProducts int64            `json:"totalProducts"`
	TotalOrders   int64            `json:"totalOrders"`
	TotalRevenue  float64          `json:"totalRevenue"`
	RecentOrders  []models.Order   `json:"recentOrders"`
	LowStock      []models.Product `json:"lowStockProducts"`
}

type AdminRepository interface {
	GetDashboardStats(ctx context.Context) (DashboardStats, error)
	ListUsers(ctx context.Context, limit, skip int64) ([]models.User, int64, error)
}

type MongoAdminRepository struct {
	DB *mongo.Database
}

func NewAdminRepository(db *mongo.Database) AdminRepository {
	return &MongoAdminRepository{DB: db}
}

func (r *MongoAdminRepository) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalUsers, err = r.DB.Collection("users").CountDocuments(ctx, bson.M{}); err != nil {
		return stats, err
	}
	if stats.TotalProducts, err = r.DB.Collection("products").CountDocuments(ctx, bson.M{}); err != nil {
		return stats, err
	}
	if stats.TotalOrders, err = r.DB.Collection("orders").CountDocuments(ctx, bson.M{}); err != nil {
		return stats, err
	}

	// Revenue over paid-class statuses only
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$in": models.PaidStatuses}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": "$total"},
		}}},
	}
	cursor, err := r.DB.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return stats, err
	}
	defer cursor.Close(ctx)
	var revenueRows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &revenueRows); err != nil {
		return stats, err
	}
	if len(revenueRows) > 0 {
		stats.TotalRevenue = revenueRows[0].Revenue
	}

	// Recent orders
	recentOpts := options.Find().SetLimit(5).SetSort(bson.M{"createdAt": -1})
	recentCursor, err := r.DB.Collection("orders").Find(ctx, bson.M{}, recentOpts)
	if err != nil {
		return stats, err
	}
	defer recentCursor.Close(ctx)
	stats.RecentOrders = []models.Order{}
	if err := recentCursor.All(ctx, &stats.RecentOrders); err != nil {
		return stats, err
	}

	// Products at or below their low-stock threshold
	lowStockOpts := options.Find().
		SetLimit(10).
		SetSort(bson.M{"stock": 1}).
		SetProjection(bson.M{"costPrice": 0})
	lowStockCursor, err := r.DB.Collection("products").Find(ctx,
		bson.M{"$expr": bson.M{"$lte": []string{"$stock", "$lowStockThreshold"}}},
		lowStockOpts)
	if err != nil {
		return stats, err
	}
	defer lowStockCursor.Close(ctx)
	stats.LowStock = []models.Product{}
	if err := lowStockCursor.All(ctx, &stats.LowStock); err != nil {
		return stats, err
	}

	return stats, nil
}

func (r *MongoAdminRepository) ListUsers(ctx context.Context, limit, skip int64) ([]models.User, int64, error) {
	collection := r.DB.Collection("users")
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.M{"createdAt": -1}).
		SetProjection(bson.M{"password": 0})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
