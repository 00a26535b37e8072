package models

import (
	"net/http"
	"testing"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartMerge_NewLine(t *testing.T) {
	cart := Cart{Items: []CartItem{}}
	item := CartItem{ProductID: primitive.NewObjectID(), Name: "Lamp", Price: 40, Quantity: 2}

	require.NoError(t, cart.Merge(item, 5))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartMerge_ExistingLineIncrements(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := Cart{Items: []CartItem{{ProductID: productID, Name: "Lamp", Price: 40, Quantity: 2}}}

	require.NoError(t, cart.Merge(CartItem{ProductID: productID, Name: "Lamp", Price: 35, Quantity: 3}, 10))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 35.0, cart.Items[0].Price, "snapshot fields refresh on merge")
}

func TestCartMerge_CumulativeQuantityBoundedByStock(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := Cart{Items: []CartItem{{ProductID: productID, Quantity: 4}}}

	err := cart.Merge(CartItem{ProductID: productID, Quantity: 2}, 5)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Equal(t, 4, cart.Items[0].Quantity, "failed merge leaves the cart unchanged")
}

func TestCartMerge_NewLineBoundedByStock(t *testing.T) {
	cart := Cart{Items: []CartItem{}}

	err := cart.Merge(CartItem{ProductID: primitive.NewObjectID(), Quantity: 6}, 5)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Empty(t, cart.Items)
}

func TestCartMerge_OtherLinesUntouched(t *testing.T) {
	other := CartItem{ProductID: primitive.NewObjectID(), Quantity: 1}
	cart := Cart{Items: []CartItem{other}}
	item := CartItem{ProductID: primitive.NewObjectID(), Quantity: 2}

	require.NoError(t, cart.Merge(item, 2))
	require.Len(t, cart.Items, 2)
	assert.Equal(t, other.ProductID, cart.Items[0].ProductID)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}
