package models

import (
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

type Coupon struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code           string             `json:"code" bson:"code" validate:"required"`
	Type           CouponType         `json:"type" bson:"type" validate:"required,oneof=percentage fixed"`
	Value          float64            `json:"value" bson:"value" validate:"required,gt=0"`
	MinOrderAmount float64            `json:"minOrderAmount" bson:"minOrderAmount"`
	MaxDiscount    float64            `json:"maxDiscount" bson:"maxDiscount"` // cap for percentage coupons; 0 = uncapped
	UsageLimit     int                `json:"usageLimit" bson:"usageLimit"`   // 0 = unlimited
	UsedCount      int                `json:"usedCount" bson:"usedCount"`
	ExpiresAt      *time.Time         `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
	IsActive       bool               `json:"isActive" bson:"isActive"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks whether the coupon can be applied to an order of the given
// subtotal at time now.
func (c *Coupon) Validate(subtotal float64, now time.Time) error {
	if !c.IsActive {
		return apperrors.BadRequest("coupon is not active")
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return apperrors.BadRequest("coupon has expired")
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return apperrors.BadRequest("coupon usage limit reached")
	}
	if subtotal < c.MinOrderAmount {
		return apperrors.BadRequest("order subtotal is below the coupon minimum")
	}
	return nil
}

// Discount computes the discount amount for subtotal. Percentage coupons are
// capped by MaxDiscount when set; the result never exceeds the subtotal.
func (c *Coupon) Discount(subtotal float64) float64 {
	var d float64
	switch c.Type {
	case CouponTypePercentage:
		d = subtotal * c.Value / 100
		if c.MaxDiscount > 0 && d > c.MaxDiscount {
			d = c.MaxDiscount
		}
	case CouponTypeFixed:
		d = c.Value
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}

type CreateCouponInput struct {
	Code           string     `json:"code" binding:"required"`
	Type           CouponType `json:"type" binding:"required,oneof=percentage fixed"`
	Value          float64    `json:"value" binding:"required,gt=0"`
	MinOrderAmount float64    `json:"minOrderAmount"`
	MaxDiscount    float64    `json:"maxDiscount"`
	UsageLimit     int        `json:"usageLimit"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

type ValidateCouponInput struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
}
