package repository

import (
	"errors"
	"net/http"
	"testing"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapReviewInsertError_DuplicateKey(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}

	err := mapReviewInsertError(dup)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Equal(t, errDuplicateReview, err)
}

func TestMapReviewInsertError_OtherErrorsPassThrough(t *testing.T) {
	writeErr := errors.New("connection reset")
	assert.ErrorIs(t, mapReviewInsertError(writeErr), writeErr)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusOf(mapReviewInsertError(writeErr)))
}
