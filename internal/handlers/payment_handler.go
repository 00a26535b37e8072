package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/adapters/repository"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/config"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"github.com/devsmahesh/e-commerce-backend-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentHandler struct {
	DB        *mongo.Database
	Cfg       *config.Config
	OrderRepo repository.OrderRepository
}

func NewPaymentHandler(db *mongo.Database, cfg *config.Config) *PaymentHandler {
	stripe.Key = cfg.StripeSecretKey
	return &PaymentHandler{DB: db, Cfg: cfg, OrderRepo: repository.NewOrderRepository(db)}
}

// amountInCents converts an order total to Stripe's integer cents. Rounding
// instead of truncating keeps float artifacts like 182.4999... from shaving
// a cent off the charge.
func amountInCents(total float64) int64 {
	return int64(math.Round(total * 100))
}

// CreatePaymentIntent returns the Stripe client secret. This is a documented
// raw response: the Stripe frontend SDK consumes it directly.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		OrderID string `json:"orderId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request"))
		return
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid order ID"))
		return
	}

	order, err := h.OrderRepo.GetOrderById(c.Request.Context(), orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, utils.ErrorResponse("You do not have permission to pay for this order"))
		return
	}

	amount := amountInCents(order.Total)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"orderId": req.OrderID,
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(fmt.Sprintf("Stripe error: %v", err)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": pi.ClientSecret,
	})
}

// HandleWebhook processes asynchronous events from Stripe
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("Error reading request body"))
		return
	}

	signature := c.GetHeader("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(payload, signature, h.Cfg.StripeWebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid signature"))
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Error parsing webhook JSON"))
			return
		}

		orderID, err := primitive.ObjectIDFromHex(pi.Metadata["orderId"])
		if err != nil {
			// Ack 200 so Stripe doesn't retry invalid data
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}

		collection := h.DB.Collection("orders")
		_, err = collection.UpdateOne(c.Request.Context(),
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{
				"status":        models.StatusPaid,
				"paymentStatus": "paid",
				"paymentId":     pi.ID,
				"updatedAt":     time.Now(),
			}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update order in DB"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
