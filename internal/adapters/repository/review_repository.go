package repository

import (
	"context"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, userID primitive.ObjectID, userName string, userImage string, input models.CreateReviewInput) (models.Review, error)
	GetProductReviews(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	ListReviews(ctx context.Context, limit, skip int64) ([]models.Review, int64, error)
	DeleteReview(ctx context.Context, reviewID primitive.ObjectID) error
	GetAverageRating(ctx context.Context, productID primitive.ObjectID) (float64, int, error)
}

var errDuplicateReview = apperrors.BadRequest("you have already reviewed this product for this order")

// mapReviewInsertError translates a unique-index violation on
// (userId, productId, orderId) into the duplicate-review error, so a race
// past the pre-check gets the same response.
func mapReviewInsertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errDuplicateReview
	}
	return err
}

type MongoReviewRepository struct {
	DB *mongo.Database
}

func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &MongoReviewRepository{DB: db}
}

func (r *MongoReviewRepository) CreateReview(ctx context.Context, userID primitive.ObjectID, userName string, userImage string, input models.CreateReviewInput) (models.Review, error) {
	reviewColl := r.DB.Collection("reviews")
	productColl := r.DB.Collection("products")

	// 1. Product must exist
	var product models.Product
	if err := productColl.FindOne(ctx, bson.M{"_id": input.ProductID}).Decode(&product); err != nil {
		return models.Review{}, apperrors.NotFound("product not found")
	}

	// 2. One review per (user, product, order). Fast-path check; the unique
	// index on (userId, productId, orderId) is the authoritative guard.
	count, err := reviewColl.CountDocuments(ctx, bson.M{
		"userId":    userID,
		"productId": input.ProductID,
		"orderId":   input.OrderID,
	})
	if err != nil {
		return models.Review{}, err
	}
	if count > 0 {
		return models.Review{}, errDuplicateReview
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		ProductID: input.ProductID,
		OrderID:   input.OrderID,
		UserID:    userID,
		UserName:  userName,
		UserImage: userImage,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Images:    input.Images,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := reviewColl.InsertOne(ctx, review); err != nil {
		return models.Review{}, mapReviewInsertError(err)
	}

	r.refreshProductAggregates(input.ProductID)

	return review, nil
}

func (r *MongoReviewRepository) GetProductReviews(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	collection := r.DB.Collection("reviews")
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := collection.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *MongoReviewRepository) ListReviews(ctx context.Context, limit, skip int64) ([]models.Review, int64, error) {
	collection := r.DB.Collection("reviews")
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.M{"createdAt": -1})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *MongoReviewRepository) DeleteReview(ctx context.Context, reviewID primitive.ObjectID) error {
	collection := r.DB.Collection("reviews")

	var review models.Review
	if err := collection.FindOne(ctx, bson.M{"_id": reviewID}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperrors.NotFound("review not found")
		}
		return err
	}

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": reviewID}); err != nil {
		return err
	}

	r.refreshProductAggregates(review.ProductID)
	return nil
}

func (r *MongoReviewRepository) GetAverageRating(ctx context.Context, productID primitive.ObjectID) (float64, int, error) {
	collection := r.DB.Collection("reviews")
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"productId": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$productId",
			"avgRating": bson.M{"$avg": "$rating"},
			"total":     bson.M{"$sum": 1},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		AvgRating float64 `bson:"avgRating"`
		Total     int     `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}

	if len(results) == 0 {
		return 0, 0, nil
	}

	return results[0].AvgRating, results[0].Total, nil
}

// refreshProductAggregates recomputes the product's cached rating and review
// count off the request path.
func (r *MongoReviewRepository) refreshProductAggregates(productID primitive.ObjectID) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		avg, total, _ := r.GetAverageRating(bgCtx, productID)
		r.DB.Collection("products").UpdateOne(bgCtx, bson.M{"_id": productID}, bson.M{
			"$set": bson.M{
				"rating":      avg,
				"reviewCount": total,
			},
		})
	}()
}
