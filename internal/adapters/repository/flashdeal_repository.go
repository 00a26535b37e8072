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

const defaultActiveDealLimit = 10

type FlashDealRepository interface {
	FindActive(ctx context.Context, dealType models.FlashDealType, limit int64, now time.Time) ([]models.FlashDeal, error)
	List(ctx context.Context) ([]models.FlashDeal, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.FlashDeal, error)
	Create(ctx context.Context, input models.CreateFlashDealInput) (models.FlashDeal, error)
	Update(ctx context.Context, id primitive.ObjectID, input models.UpdateFlashDealInput) (models.FlashDeal, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoFlashDealRepository struct {
	DB *mongo.Database
}

func NewFlashDealRepository(db *mongo.Database) FlashDealRepository {
	return &MongoFlashDealRepository{DB: db}
}

// validateDealWindow enforces endDate strictly after startDate.
func validateDealWindow(start, end time.Time) error {
	if !end.After(start) {
		return apperrors.BadRequest("endDate must be after startDate")
	}
	return nil
}

// validateDealDiscount enforces the conditionally-required discountPercentage
// for discount-type deals.
func validateDealDiscount(dealType models.FlashDealType, discountPercentage float64) error {
	if dealType == models.FlashDealTypeDiscount {
		if discountPercentage <= 0 || discountPercentage > 100 {
			return apperrors.BadRequest("discountPercentage is required for discount deals and must be between 1 and 100")
		}
	}
	return nil
}

func (r *MongoFlashDealRepository) FindActive(ctx context.Context, dealType models.FlashDealType, limit int64, now time.Time) ([]models.FlashDeal, error) {
	collection := r.DB.Collection("flashDeals")

	if limit <= 0 {
		limit = defaultActiveDealLimit
	}

	filter := bson.M{
		"isActive":  true,
		"startDate": bson.M{"$lte": now},
		"endDate":   bson.M{"$gte": now},
	}
	if dealType != "" {
		filter["type"] = dealType
	}

	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "createdAt", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	deals := []models.FlashDeal{}
	if err := cursor.All(ctx, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *MongoFlashDealRepository) List(ctx context.Context) ([]models.FlashDeal, error) {
	collection := r.DB.Collection("flashDeals")
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	deals := []models.FlashDeal{}
	if err := cursor.All(ctx, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *MongoFlashDealRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.FlashDeal, error) {
	collection := r.DB.Collection("flashDeals")
	var deal models.FlashDeal
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&deal); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.FlashDeal{}, apperrors.NotFound("flash deal not found")
		}
		return models.FlashDeal{}, err
	}
	return deal, nil
}

func (r *MongoFlashDealRepository) Create(ctx context.Context, input models.CreateFlashDealInput) (models.FlashDeal, error) {
	if err := validateDealWindow(input.StartDate, input.EndDate); err != nil {
		return models.FlashDeal{}, err
	}
	if err := validateDealDiscount(input.Type, input.DiscountPercentage); err != nil {
		return models.FlashDeal{}, err
	}

	productIDs, err := parseObjectIDs(input.ProductIDs)
	if err != nil {
		return models.FlashDeal{}, apperrors.BadRequest("invalid product ID in productIds")
	}

	deal := models.FlashDeal{
		Title:              input.Title,
		Type:               input.Type,
		DiscountPercentage: input.DiscountPercentage,
		ProductIDs:         productIDs,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		Priority:           input.Priority,
		IsActive:           true,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	res, err := r.DB.Collection("flashDeals").InsertOne(ctx, deal)
	if err != nil {
		return models.FlashDeal{}, err
	}
	deal.ID = res.InsertedID.(primitive.ObjectID)
	return deal, nil
}

func (r *MongoFlashDealRepository) Update(ctx context.Context, id primitive.ObjectID, input models.UpdateFlashDealInput) (models.FlashDeal, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return models.FlashDeal{}, err
	}

	// Partial updates re-validate the changed bound against the stored
	// value of the other bound.
	start := existing.StartDate
	end := existing.EndDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}
	if input.StartDate != nil || input.EndDate != nil {
		if err := validateDealWindow(start, end); err != nil {
			return models.FlashDeal{}, err
		}
	}

	dealType := existing.Type
	if input.Type != nil {
		dealType = *input.Type
	}
	discount := existing.DiscountPercentage
	if input.DiscountPercentage != nil {
		discount = *input.DiscountPercentage
	}
	if input.Type != nil || input.DiscountPercentage != nil {
		if err := validateDealDiscount(dealType, discount); err != nil {
			return models.FlashDeal{}, err
		}
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Type != nil {
		set["type"] = *input.Type
	}
	if input.DiscountPercentage != nil {
		set["discountPercentage"] = *input.DiscountPercentage
	}
	if input.ProductIDs != nil {
		productIDs, err := parseObjectIDs(input.ProductIDs)
		if err != nil {
			return models.FlashDeal{}, apperrors.BadRequest("invalid product ID in productIds")
		}
		set["productIds"] = productIDs
	}
	if input.StartDate != nil {
		set["startDate"] = *input.StartDate
	}
	if input.EndDate != nil {
		set["endDate"] = *input.EndDate
	}
	if input.Priority != nil {
		set["priority"] = *input.Priority
	}
	if input.IsActive != nil {
		set["isActive"] = *input.IsActive
	}

	if _, err := r.DB.Collection("flashDeals").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return models.FlashDeal{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *MongoFlashDealRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.DB.Collection("flashDeals").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("flash deal not found")
	}
	return nil
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
