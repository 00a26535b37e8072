package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/adapters/repository"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"github.com/devsmahesh/e-commerce-backend-sub001/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderHandler struct {
	Repo     repository.OrderRepository
	CartRepo repository.CartRepository
}

func NewOrderHandler(db *mongo.Database) *OrderHandler {
	return &OrderHandler{
		Repo:     repository.NewOrderRepository(db),
		CartRepo: repository.NewCartRepository(db),
	}
}

// PlaceOrder handles checkout. The order-confirmation payload is one of the
// documented raw responses: the frontend consumes it directly, so it is not
// wrapped in the standard envelope.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))

	var input models.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	cart, err := h.CartRepo.GetCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch cart"))
		return
	}

	if len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Your cart is empty"))
		return
	}

	order, err := h.Repo.PlaceOrder(ctx, userID, input, cart)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetUserOrders returns the order history for a buyer
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.Repo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch orders"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Orders fetched successfully", gin.H{"orders": orders}))
}

func (h *OrderHandler) GetOrderById(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid order ID"))
		return
	}

	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))
	role, _ := c.Get("role")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Repo.GetOrderById(ctx, orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	isBuyer := order.UserID == userID
	isAdmin := role == models.RoleAdmin

	if !isBuyer && !isAdmin {
		c.JSON(http.StatusForbidden, utils.ErrorResponse("You do not have permission to view this order"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Order fetched successfully", gin.H{"order": order}))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	skip := (page - 1) * limit

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = models.OrderStatus(status)
	}

	orders, total, err := h.Repo.ListOrders(ctx, filter, limit, skip)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Orders fetched successfully", gin.H{
		"orders": orders,
		"total":  total,
	}))
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid order ID"))
		return
	}

	var input models.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid status provided"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.UpdateOrderStatus(ctx, orderID, input.Status, input.TrackingNumber); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Order status updated", nil))
}

func (h *OrderHandler) ConfirmReceipt(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid order ID"))
		return
	}

	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Repo.GetOrderById(ctx, orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if order.UserID != userID {
		c.JSON(http.StatusForbidden, utils.ErrorResponse("You do not have permission to modify this order"))
		return
	}

	if order.Status != models.StatusShipped {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Only shipped orders can be confirmed"))
		return
	}

	if err := h.Repo.UpdateOrderStatus(ctx, orderID, models.StatusDelivered, ""); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Receipt confirmed", nil))
}
