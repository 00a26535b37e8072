package repository

import (
	"context"
	"strings"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CouponRepository interface {
	List(ctx context.Context) ([]models.Coupon, error)
	GetByCode(ctx context.Context, code string) (models.Coupon, error)
	Create(ctx context.Context, input models.CreateCouponInput) (models.Coupon, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	Redeem(ctx context.Context, code string) error
}

type MongoCouponRepository struct {
	DB *mongo.Database
}

func NewCouponRepository(db *mongo.Database) CouponRepository {
	return &MongoCouponRepository{DB: db}
}

func (r *MongoCouponRepository) List(ctx context.Context) ([]models.Coupon, error) {
	collection := r.DB.Collection("coupons")
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	coupons := []models.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *MongoCouponRepository) GetByCode(ctx context.Context, code string) (models.Coupon, error) {
	collection := r.DB.Collection("coupons")
	var coupon models.Coupon
	err := collection.FindOne(ctx, bson.M{"code": strings.ToUpper(code)}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Coupon{}, apperrors.NotFound("coupon not found")
		}
		return models.Coupon{}, err
	}
	return coupon, nil
}

func (r *MongoCouponRepository) Create(ctx context.Context, input models.CreateCouponInput) (models.Coupon, error) {
	collection := r.DB.Collection("coupons")
	code := strings.ToUpper(strings.TrimSpace(input.Code))

	// Fast-path check; the unique index on code is the authoritative guard.
	var existing models.Coupon
	if err := collection.FindOne(ctx, bson.M{"code": code}).Decode(&existing); err == nil {
		return models.Coupon{}, apperrors.Conflict("coupon code already exists")
	}

	coupon := models.Coupon{
		Code:           code,
		Type:           input.Type,
		Value:          input.Value,
		MinOrderAmount: input.MinOrderAmount,
		MaxDiscount:    input.MaxDiscount,
		UsageLimit:     input.UsageLimit,
		ExpiresAt:      input.ExpiresAt,
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if coupon.Type == models.CouponTypePercentage && coupon.Value > 100 {
		return models.Coupon{}, apperrors.BadRequest("percentage coupon value cannot exceed 100")
	}

	res, err := collection.InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Coupon{}, apperrors.Conflict("coupon code already exists")
		}
		return models.Coupon{}, err
	}
	coupon.ID = res.InsertedID.(primitive.ObjectID)
	return coupon, nil
}

func (r *MongoCouponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.DB.Collection("coupons").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("coupon not found")
	}
	return nil
}

func (r *MongoCouponRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	res, err := r.DB.Collection("coupons").UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("coupon not found")
	}
	return nil
}

// Redeem increments usedCount with the usage limit enforced in the filter, so
// concurrent redemptions cannot push a coupon past its limit.
func (r *MongoCouponRepository) Redeem(ctx context.Context, code string) error {
	collection := r.DB.Collection("coupons")
	filter := bson.M{
		"code":     strings.ToUpper(code),
		"isActive": true,
		"$or": []bson.M{
			{"usageLimit": 0},
			{"$expr": bson.M{"$lt": []string{"$usedCount", "$usageLimit"}}},
		},
	}
	update := bson.M{
		"$inc": bson.M{"usedCount": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	res, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return apperrors.BadRequest("coupon is no longer redeemable")
	}
	return nil
}
