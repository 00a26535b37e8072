package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
	StatusRefunded  OrderStatus = "refunded"
)

// PaidStatuses are the statuses counted as revenue by the dashboard and
// analytics queries.
var PaidStatuses = []OrderStatus{StatusPaid, StatusConfirmed, StatusShipped, StatusDelivered}

type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Image     string             `json:"image" bson:"image"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Subtotal  float64            `json:"subtotal" bson:"subtotal"`
}

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber string             `json:"orderNumber" bson:"orderNumber"` // e.g., ORD-100234
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	Items       []OrderItem        `json:"items" bson:"items"`

	// Pricing Breakdown
	Subtotal    float64 `json:"subtotal" bson:"subtotal"`
	ShippingFee float64 `json:"shippingFee" bson:"shippingFee"`
	Tax         float64 `json:"tax" bson:"tax"`
	Discount    float64 `json:"discount" bson:"discount"`
	CouponCode  string  `json:"couponCode,omitempty" bson:"couponCode,omitempty"`
	Total       float64 `json:"total" bson:"total"`

	Status        OrderStatus `json:"status" bson:"status"`
	PaymentStatus string      `json:"paymentStatus" bson:"paymentStatus"`
	PaymentID     string      `json:"paymentId" bson:"paymentId"`
	PaymentMethod string      `json:"paymentMethod" bson:"paymentMethod"`

	ShippingAddress string `json:"shippingAddress" bson:"shippingAddress"`
	TrackingNumber  string `json:"trackingNumber" bson:"trackingNumber"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type PlaceOrderInput struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	PaymentMethod   string `json:"paymentMethod" binding:"required"`
	CouponCode      string `json:"couponCode"`
}

type UpdateOrderStatusInput struct {
	Status         OrderStatus `json:"status" binding:"required"`
	TrackingNumber string      `json:"trackingNumber"`
}

const (
	flatShippingFee   = 25.0
	freeShippingAbove = 500.0
	taxRate           = 0.05
)

// ComputeTotals derives the price breakdown from an order subtotal and an
// already-validated coupon discount. Shipping is flat with a free threshold;
// tax applies to the discounted subtotal.
func ComputeTotals(subtotal, discount float64) (shippingFee, tax, total float64) {
	if discount > subtotal {
		discount = subtotal
	}
	taxable := subtotal - discount
	shippingFee = flatShippingFee
	if subtotal >= freeShippingAbove {
		shippingFee = 0
	}
	tax = taxable * taxRate
	total = taxable + shippingFee + tax
	return shippingFee, tax, total
}

type DailySales struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}
