package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, APIError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/things", nil)

	RespondError(c, err)

	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondError_TypedError(t *testing.T) {
	w, body := respond(t, apperrors.NotFound("thing not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "thing not found", body.Message)
	assert.Equal(t, "thing not found", body.Error)
	assert.Equal(t, http.StatusNotFound, body.StatusCode)
	assert.Equal(t, "/api/v1/things", body.Path)
	assert.NotEmpty(t, body.Timestamp)
}

func TestRespondError_UntypedErrorIsGeneric(t *testing.T) {
	w, body := respond(t, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body.Message)
	// The raw detail stays server-side.
	assert.Empty(t, body.Error)
}

func TestRespondError_InternalAppErrorHidesDetail(t *testing.T) {
	err := apperrors.Internal("order insert failed", errors.New("write conflict"))
	w, body := respond(t, err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "order insert failed", body.Message)
	assert.Empty(t, body.Error)
}

func TestSuccessResponseEnvelope(t *testing.T) {
	resp := SuccessResponse("Fetched", gin.H{"count": 3})
	assert.True(t, resp.Success)
	assert.Equal(t, "Fetched", resp.Message)
	assert.NotNil(t, resp.Data)
}
