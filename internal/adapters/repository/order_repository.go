package repository

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	PlaceOrder(ctx context.Context, userID primitive.ObjectID, input models.PlaceOrderInput, cart models.Cart) (models.Order, error)
	GetOrdersByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	GetOrderById(ctx context.Context, orderID primitive.ObjectID) (models.Order, error)
	ListOrders(ctx context.Context, filter bson.M, limit, skip int64) ([]models.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus, trackingNumber string) error
}

type MongoOrderRepository struct {
	DB      *mongo.Database
	Coupons CouponRepository
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoOrderRepository{DB: db, Coupons: NewCouponRepository(db)}
}

func (r *MongoOrderRepository) PlaceOrder(ctx context.Context, userID primitive.ObjectID, input models.PlaceOrderInput, cart models.Cart) (models.Order, error) {
	if len(cart.Items) == 0 {
		return models.Order{}, apperrors.BadRequest("cart is empty")
	}

	productColl := r.DB.Collection("products")
	orderColl := r.DB.Collection("orders")
	cartColl := r.DB.Collection("carts")

	var orderItems []models.OrderItem
	var subtotal float64
	var processedProducts []struct {
		ID  primitive.ObjectID
		Qty int
	}

	rollback := func() {
		for _, p := range processedProducts {
			productColl.UpdateOne(context.Background(), bson.M{"_id": p.ID}, bson.M{"$inc": bson.M{"stock": p.Qty}})
		}
	}

	// 1. Process each item: validate stock and reduce inventory
	for _, item := range cart.Items {
		var product models.Product
		err := productColl.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err != nil {
			rollback()
			return models.Order{}, apperrors.NotFound(fmt.Sprintf("product %s not found", item.Name))
		}

		// Atomic update with stock check
		filter := bson.M{
			"_id":   item.ProductID,
			"stock": bson.M{"$gte": item.Quantity},
		}
		update := bson.M{
			"$inc": bson.M{"stock": -item.Quantity, "totalSales": item.Quantity},
			"$set": bson.M{"updatedAt": time.Now()},
		}

		res, err := productColl.UpdateOne(ctx, filter, update)
		if err != nil {
			rollback()
			return models.Order{}, err
		}
		if res.ModifiedCount == 0 {
			rollback()
			return models.Order{}, apperrors.BadRequest(fmt.Sprintf("insufficient stock for %s", item.Name))
		}

		processedProducts = append(processedProducts, struct {
			ID  primitive.ObjectID
			Qty int
		}{item.ProductID, item.Quantity})

		price := product.Price
		if product.SalePrice > 0 && product.SalePrice < product.Price {
			price = product.SalePrice
		}
		itemSubtotal := price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Image:     item.Image,
			Price:     price,
			Quantity:  item.Quantity,
			Subtotal:  itemSubtotal,
		})
		subtotal += itemSubtotal
	}

	// 2. Apply coupon, if any
	var discount float64
	var couponCode string
	if input.CouponCode != "" {
		coupon, err := r.Coupons.GetByCode(ctx, input.CouponCode)
		if err != nil {
			rollback()
			return models.Order{}, err
		}
		if err := coupon.Validate(subtotal, time.Now()); err != nil {
			rollback()
			return models.Order{}, err
		}
		discount = coupon.Discount(subtotal)
		couponCode = coupon.Code
	}

	// 3. Calculate totals
	shippingFee, tax, total := models.ComputeTotals(subtotal, discount)

	orderNumber := fmt.Sprintf("ORD-%d%d", time.Now().Unix()%100000, rand.Intn(900)+100)
	order := models.Order{
		ID:              primitive.NewObjectID(),
		OrderNumber:     orderNumber,
		UserID:          userID,
		Items:           orderItems,
		Subtotal:        subtotal,
		ShippingFee:     shippingFee,
		Tax:             tax,
		Discount:        discount,
		CouponCode:      couponCode,
		Total:           total,
		Status:          models.StatusPending,
		PaymentStatus:   "pending",
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	// 4. Insert order
	if _, err := orderColl.InsertOne(ctx, order); err != nil {
		logrus.WithError(err).Error("order creation failed, rolling back stock")
		rollback()
		return models.Order{}, err
	}

	// 5. Burn the coupon usage. The order stands even if this fails; the
	// atomic filter in Redeem already guards the limit race.
	if couponCode != "" {
		if err := r.Coupons.Redeem(ctx, couponCode); err != nil {
			logrus.WithField("coupon", couponCode).WithError(err).Warn("coupon redemption failed after order insert")
		}
	}

	// 6. Clear cart (non-critical)
	_, _ = cartColl.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}})

	logrus.WithField("orderNumber", order.OrderNumber).Info("order created")
	return order, nil
}

func (r *MongoOrderRepository) GetOrdersByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	collection := r.DB.Collection("orders")
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) GetOrderById(ctx context.Context, orderID primitive.ObjectID) (models.Order, error) {
	collection := r.DB.Collection("orders")
	var order models.Order
	err := collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, apperrors.NotFound("order not found")
	}
	return order, err
}

func (r *MongoOrderRepository) ListOrders(ctx context.Context, filter bson.M, limit, skip int64) ([]models.Order, int64, error) {
	collection := r.DB.Collection("orders")
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.M{"createdAt": -1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *MongoOrderRepository) UpdateOrderStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus, trackingNumber string) error {
	collection := r.DB.Collection("orders")

	updateData := bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}

	if trackingNumber != "" {
		updateData["trackingNumber"] = trackingNumber
	}

	res, err := collection.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": updateData})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("order not found")
	}
	return nil
}
