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

type BannerRepository interface {
	ListActive(ctx context.Context) ([]models.Banner, error)
	List(ctx context.Context) ([]models.Banner, error)
	Create(ctx context.Context, input models.CreateBannerInput) (models.Banner, error)
	Update(ctx context.Context, id primitive.ObjectID, input models.UpdateBannerInput) (models.Banner, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoBannerRepository struct {
	DB *mongo.Database
}

func NewBannerRepository(db *mongo.Database) BannerRepository {
	return &MongoBannerRepository{DB: db}
}

func (r *MongoBannerRepository) ListActive(ctx context.Context) ([]models.Banner, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

func (r *MongoBannerRepository) List(ctx context.Context) ([]models.Banner, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoBannerRepository) find(ctx context.Context, filter bson.M) ([]models.Banner, error) {
	collection := r.DB.Collection("banners")
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "createdAt", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	banners := []models.Banner{}
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *MongoBannerRepository) Create(ctx context.Context, input models.CreateBannerInput) (models.Banner, error) {
	banner := models.Banner{
		Title:     input.Title,
		Image:     input.Image,
		Link:      input.Link,
		Position:  input.Position,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	res, err := r.DB.Collection("banners").InsertOne(ctx, banner)
	if err != nil {
		return models.Banner{}, err
	}
	banner.ID = res.InsertedID.(primitive.ObjectID)
	return banner, nil
}

func (r *MongoBannerRepository) Update(ctx context.Context, id primitive.ObjectID, input models.UpdateBannerInput) (models.Banner, error) {
	collection := r.DB.Collection("banners")

	set := bson.M{"updatedAt": time.Now()}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Image != nil {
		set["image"] = *input.Image
	}
	if input.Link != nil {
		set["link"] = *input.Link
	}
	if input.Position != nil {
		set["position"] = *input.Position
	}
	if input.IsActive != nil {
		set["isActive"] = *input.IsActive
	}

	res, err := collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return models.Banner{}, err
	}
	if res.MatchedCount == 0 {
		return models.Banner{}, apperrors.NotFound("banner not found")
	}

	var banner models.Banner
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&banner); err != nil {
		return models.Banner{}, err
	}
	return banner, nil
}

func (r *MongoBannerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.DB.Collection("banners").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("banner not found")
	}
	return nil
}
