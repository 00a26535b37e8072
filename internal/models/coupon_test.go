package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activeCoupon() Coupon {
	return Coupon{
		Code:     "SAVE10",
		Type:     CouponTypePercentage,
		Value:    10,
		IsActive: true,
	}
}

func TestCouponValidate(t *testing.T) {
	now := time.Now()

	c := activeCoupon()
	assert.NoError(t, c.Validate(100, now))

	c = activeCoupon()
	c.IsActive = false
	assert.Error(t, c.Validate(100, now), "inactive coupon")

	c = activeCoupon()
	past := now.Add(-time.Hour)
	c.ExpiresAt = &past
	assert.Error(t, c.Validate(100, now), "expired coupon")

	c = activeCoupon()
	future := now.Add(time.Hour)
	c.ExpiresAt = &future
	assert.NoError(t, c.Validate(100, now), "not yet expired")

	c = activeCoupon()
	c.UsageLimit = 5
	c.UsedCount = 5
	assert.Error(t, c.Validate(100, now), "usage limit reached")

	c = activeCoupon()
	c.UsageLimit = 0
	c.UsedCount = 1000
	assert.NoError(t, c.Validate(100, now), "zero limit means unlimited")

	c = activeCoupon()
	c.MinOrderAmount = 150
	assert.Error(t, c.Validate(100, now), "below minimum order amount")
	assert.NoError(t, c.Validate(150, now), "at minimum order amount")
}

func TestCouponDiscount_Percentage(t *testing.T) {
	c := Coupon{Type: CouponTypePercentage, Value: 10}
	assert.InDelta(t, 20.0, c.Discount(200), 1e-9)

	c.MaxDiscount = 15
	assert.InDelta(t, 15.0, c.Discount(200), 1e-9, "capped by maxDiscount")

	c.MaxDiscount = 0
	c.Value = 100
	assert.InDelta(t, 200.0, c.Discount(200), 1e-9, "100 percent covers the subtotal")
}

func TestCouponDiscount_Fixed(t *testing.T) {
	c := Coupon{Type: CouponTypeFixed, Value: 30}
	assert.InDelta(t, 30.0, c.Discount(200), 1e-9)
	assert.InDelta(t, 20.0, c.Discount(20), 1e-9, "never exceeds the subtotal")
}
