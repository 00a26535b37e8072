package utils

import (
	"net/http"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIResponse is the uniform success envelope. Endpoints documented as raw
// (payment intent, webhook ack, order confirmation) skip it explicitly in
// their handlers; nothing sniffs payload shapes.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// APIError is the uniform error envelope.
type APIError struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
}

func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

func ErrorResponse(message string) gin.H {
	return gin.H{"success": false, "message": message}
}

// RespondError writes the error envelope for err. Typed AppErrors keep their
// status and message; anything else becomes a 500 with a generic message and
// the full detail is logged server-side only.
func RespondError(c *gin.Context, err error) {
	status := apperrors.StatusOf(err)
	body := APIError{
		Success:    false,
		Message:    apperrors.MessageOf(err),
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.Request.URL.Path,
	}

	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": status,
		}).WithError(err).Error("request failed")
	} else {
		body.Error = err.Error()
	}

	c.JSON(status, body)
}
