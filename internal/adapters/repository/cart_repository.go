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

type CartRepository interface {
	AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem, stock int) error
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error
	GetCart(ctx context.Context, userID primitive.ObjectID) (models.Cart, error)
	SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity, stock int) error
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

type MongoCartRepository struct {
	DB *mongo.Database
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &MongoCartRepository{DB: db}
}

// AddItem merges item into the user's cart under the stock bound (see
// models.Cart.Merge) and writes the result back as a single upsert, so a
// missing cart and an existing one follow the same path.
func (r *MongoCartRepository) AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem, stock int) error {
	collection := r.DB.Collection("carts")

	cart, err := r.GetCart(ctx, userID)
	if err != nil {
		return err
	}
	if err := cart.Merge(item, stock); err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"items":     cart.Items,
			"updatedAt": time.Now(),
		},
		"$setOnInsert": bson.M{
			"userId":    userID,
			"createdAt": time.Now(),
		},
	}
	_, err = collection.UpdateOne(ctx, bson.M{"userId": userID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *MongoCartRepository) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	collection := r.DB.Collection("carts")

	res, err := collection.UpdateOne(ctx,
		bson.M{"userId": userID, "items.productId": productID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("item not in cart")
	}
	return nil
}

// GetCart never reports a missing cart; a user without one gets an empty
// cart value.
func (r *MongoCartRepository) GetCart(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	collection := r.DB.Collection("carts")

	var cart models.Cart
	err := collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return models.Cart{}, err
	}
	return cart, nil
}

// SetQuantity replaces a line's quantity via a positional update. The stock
// bound is enforced here so every write path shares the same guard.
func (r *MongoCartRepository) SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity, stock int) error {
	if quantity > stock {
		return apperrors.BadRequest("requested quantity exceeds available stock")
	}

	collection := r.DB.Collection("carts")
	res, err := collection.UpdateOne(ctx,
		bson.M{"userId": userID, "items.productId": productID},
		bson.M{"$set": bson.M{
			"items.$.quantity": quantity,
			"updatedAt":        time.Now(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("item not in cart")
	}
	return nil
}

func (r *MongoCartRepository) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	collection := r.DB.Collection("carts")

	_, err := collection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"items":     []models.CartItem{},
			"updatedAt": time.Now(),
		}})
	return err
}
