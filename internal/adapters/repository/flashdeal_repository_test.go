package repository

import (
	"testing"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateDealWindow(t *testing.T) {
	now := time.Now()

	assert.NoError(t, validateDealWindow(now, now.Add(time.Hour)))
	assert.Error(t, validateDealWindow(now, now), "equal bounds are rejected")
	assert.Error(t, validateDealWindow(now.Add(time.Hour), now), "inverted window is rejected")
}

func TestValidateDealDiscount(t *testing.T) {
	assert.NoError(t, validateDealDiscount(models.FlashDealTypeDiscount, 25))
	assert.NoError(t, validateDealDiscount(models.FlashDealTypeDiscount, 100))
	assert.Error(t, validateDealDiscount(models.FlashDealTypeDiscount, 0))
	assert.Error(t, validateDealDiscount(models.FlashDealTypeDiscount, 101))

	// Non-discount deals carry no percentage requirement.
	assert.NoError(t, validateDealDiscount(models.FlashDealTypeBogo, 0))
	assert.NoError(t, validateDealDiscount(models.FlashDealTypeBundle, 0))
}

func TestParseObjectIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	ids, err := parseObjectIDs([]string{a.Hex(), b.Hex()})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a, b}, ids)

	_, err = parseObjectIDs([]string{a.Hex(), "not-an-id"})
	assert.Error(t, err)

	ids, err = parseObjectIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
