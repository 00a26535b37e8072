package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	t.Run("flat shipping below threshold", func(t *testing.T) {
		shipping, tax, total := ComputeTotals(100, 0)
		assert.InDelta(t, 25.0, shipping, 1e-9)
		assert.InDelta(t, 5.0, tax, 1e-9)
		assert.InDelta(t, 130.0, total, 1e-9)
	})

	t.Run("free shipping at threshold", func(t *testing.T) {
		shipping, tax, total := ComputeTotals(500, 0)
		assert.InDelta(t, 0.0, shipping, 1e-9)
		assert.InDelta(t, 25.0, tax, 1e-9)
		assert.InDelta(t, 525.0, total, 1e-9)
	})

	t.Run("tax applies to discounted subtotal", func(t *testing.T) {
		shipping, tax, total := ComputeTotals(200, 50)
		assert.InDelta(t, 25.0, shipping, 1e-9)
		assert.InDelta(t, 7.5, tax, 1e-9)
		assert.InDelta(t, 182.5, total, 1e-9)
	})

	t.Run("free shipping threshold uses pre-discount subtotal", func(t *testing.T) {
		shipping, _, _ := ComputeTotals(500, 100)
		assert.InDelta(t, 0.0, shipping, 1e-9)
	})

	t.Run("discount clamped to subtotal", func(t *testing.T) {
		shipping, tax, total := ComputeTotals(100, 150)
		assert.InDelta(t, 25.0, shipping, 1e-9)
		assert.InDelta(t, 0.0, tax, 1e-9)
		assert.InDelta(t, 25.0, total, 1e-9)
	})
}
