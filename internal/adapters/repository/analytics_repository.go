package repository

import (
	"context"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategorySales struct {
	CategoryID   string  `bson:"_id" json:"categoryId"`
	CategoryName string  `bson:"categoryName" json:"categoryName"`
	Revenue      float64 `bson:"revenue" json:"revenue"`
	Units        int     `bson:"units" json:"units"`
}

type GrowthReport struct {
	CurrentRevenue  float64 `json:"currentRevenue"`
	PreviousRevenue float64 `json:"previousRevenue"`
	RevenueGrowth   float64 `json:"revenueGrowthPct"`
	CurrentOrders   int     `json:"currentOrders"`
	PreviousOrders  int     `json:"previousOrders"`
	OrderGrowth     float64 `json:"orderGrowthPct"`
	WindowDays      int     `json:"windowDays"`
}

type AnalyticsRepository interface {
	RevenueByPeriod(ctx context.Context, period string, days int) ([]models.DailySales, error)
	SalesByCategory(ctx context.Context) ([]CategorySales, error)
	Growth(ctx context.Context, windowDays int) (GrowthReport, error)
}

type MongoAnalyticsRepository struct {
	DB *mongo.Database
}

func NewAnalyticsRepository(db *mongo.Database) AnalyticsRepository {
	return &MongoAnalyticsRepository{DB: db}
}

func paidMatch(since time.Time) bson.M {
	m := bson.M{"status": bson.M{"$in": models.PaidStatuses}}
	if !since.IsZero() {
		m["createdAt"] = bson.M{"$gte": since}
	}
	return m
}

// RevenueByPeriod groups paid-class orders into daily or monthly buckets over
// the trailing window.
func (r *MongoAnalyticsRepository) RevenueByPeriod(ctx context.Context, period string, days int) ([]models.DailySales, error) {
	format := "%Y-%m-%d"
	if period == "monthly" {
		format = "%Y-%m"
	}
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: paidMatch(since)}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": format, "date": "$createdAt"}},
			"revenue": bson.M{"$sum": "$total"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.DB.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date    string  `bson:"_id"`
		Revenue float64 `bson:"revenue"`
		Orders  int     `bson:"orders"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	sales := make([]models.DailySales, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, models.DailySales{Date: row.Date, Revenue: row.Revenue, Orders: row.Orders})
	}
	return sales, nil
}

// SalesByCategory unwinds order items, joins products for their category, and
// sums revenue and units per category.
func (r *MongoAnalyticsRepository) SalesByCategory(ctx context.Context) ([]CategorySales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: paidMatch(time.Time{})}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "items.productId",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "product.categoryId",
			"foreignField": "_id",
			"as":           "category",
		}}},
		{{Key: "$unwind", Value: "$category"}},
		{{Key: "$group", Value: bson.M{
			"_id":          bson.M{"$toString": "$category._id"},
			"categoryName": bson.M{"$first": "$category.name"},
			"revenue":      bson.M{"$sum": "$items.subtotal"},
			"units":        bson.M{"$sum": "$items.quantity"},
		}}},
		{{Key: "$sort", Value: bson.M{"revenue": -1}}},
	}

	cursor, err := r.DB.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sales := []CategorySales{}
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// Growth compares the trailing window against the window before it.
func (r *MongoAnalyticsRepository) Growth(ctx context.Context, windowDays int) (GrowthReport, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	now := time.Now()
	currentStart := now.AddDate(0, 0, -windowDays)
	previousStart := now.AddDate(0, 0, -2*windowDays)

	currentRevenue, currentOrders, err := r.windowTotals(ctx, currentStart, now)
	if err != nil {
		return GrowthReport{}, err
	}
	previousRevenue, previousOrders, err := r.windowTotals(ctx, previousStart, currentStart)
	if err != nil {
		return GrowthReport{}, err
	}

	report := GrowthReport{
		CurrentRevenue:  currentRevenue,
		PreviousRevenue: previousRevenue,
		CurrentOrders:   currentOrders,
		PreviousOrders:  previousOrders,
		WindowDays:      windowDays,
	}
	if previousRevenue > 0 {
		report.RevenueGrowth = (currentRevenue - previousRevenue) / previousRevenue * 100
	}
	if previousOrders > 0 {
		report.OrderGrowth = float64(currentOrders-previousOrders) / float64(previousOrders) * 100
	}
	return report, nil
}

func (r *MongoAnalyticsRepository) windowTotals(ctx context.Context, from, to time.Time) (float64, int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    bson.M{"$in": models.PaidStatuses},
			"createdAt": bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": "$total"},
			"orders":  bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.DB.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Revenue float64 `bson:"revenue"`
		Orders  int     `bson:"orders"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Revenue, rows[0].Orders, nil
}
