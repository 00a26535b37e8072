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

type ProductRepository interface {
	FetchProductsPublic(ctx context.Context, filter bson.M, limit, skip int64) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, filter bson.M) (models.Product, error)
	GetProductPublic(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, input models.UpdateProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

type MongoProductRepository struct {
	DB *mongo.Database
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &MongoProductRepository{DB: db}
}

func (r *MongoProductRepository) FetchProductsPublic(ctx context.Context, filter bson.M, limit, skip int64) ([]models.Product, int64, error) {
	collection := r.DB.Collection("products")
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.M{"createdAt": -1}).
		SetProjection(bson.M{"costPrice": 0})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *MongoProductRepository) GetProduct(ctx context.Context, filter bson.M) (models.Product, error) {
	collection := r.DB.Collection("products")
	var product models.Product
	if err := collection.FindOne(ctx, filter).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Product{}, apperrors.NotFound("product not found")
		}
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) GetProductPublic(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	collection := r.DB.Collection("products")
	opts := options.FindOne().SetProjection(bson.M{"costPrice": 0})
	var product models.Product
	if err := collection.FindOne(ctx, bson.M{"_id": id, "status": models.ProductStatusActive}, opts).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Product{}, apperrors.NotFound("product not found")
		}
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	// Category reference must resolve before the product is persisted.
	if err := r.ensureCategoryExists(ctx, product.CategoryID); err != nil {
		return models.Product{}, err
	}

	if product.Status == "" {
		product.Status = models.ProductStatusDraft
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	res, err := r.DB.Collection("products").InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, apperrors.Conflict("product slug already exists")
		}
		return models.Product{}, err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (r *MongoProductRepository) UpdateProduct(ctx context.Context, id primitive.ObjectID, input models.UpdateProductInput) (models.Product, error) {
	collection := r.DB.Collection("products")

	set := bson.M{"updatedAt": time.Now()}
	raw, err := bson.Marshal(input)
	if err != nil {
		return models.Product{}, err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return models.Product{}, err
	}
	for k, v := range fields {
		set[k] = v
	}

	if input.CategoryID != nil {
		categoryID, err := primitive.ObjectIDFromHex(*input.CategoryID)
		if err != nil {
			return models.Product{}, apperrors.BadRequest("invalid category ID")
		}
		if err := r.ensureCategoryExists(ctx, categoryID); err != nil {
			return models.Product{}, err
		}
		set["categoryId"] = categoryID
	}

	result, err := collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, apperrors.Conflict("product slug already exists")
		}
		return models.Product{}, err
	}
	if result.MatchedCount == 0 {
		return models.Product{}, apperrors.NotFound("product not found")
	}

	return r.GetProduct(ctx, bson.M{"_id": id})
}

func (r *MongoProductRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.DB.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("product not found")
	}
	return nil
}

func (r *MongoProductRepository) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return r.DB.Collection("products").CountDocuments(ctx, bson.M{"categoryId": categoryID})
}

func (r *MongoProductRepository) ensureCategoryExists(ctx context.Context, categoryID primitive.ObjectID) error {
	count, err := r.DB.Collection("categories").CountDocuments(ctx, bson.M{"_id": categoryID})
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NotFound("category not found")
	}
	return nil
}
