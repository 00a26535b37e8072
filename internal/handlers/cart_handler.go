package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/adapters/repository"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"github.com/devsmahesh/e-commerce-backend-sub001/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CartHandler struct {
	Repo        repository.CartRepository
	ProductRepo repository.ProductRepository
}

func NewCartHandler(db *mongo.Database) *CartHandler {
	return &CartHandler{
		Repo:        repository.NewCartRepository(db),
		ProductRepo: repository.NewProductRepository(db),
	}
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))

	var req models.AddToCartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid product ID"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// The item snapshot comes from the stored product, not the request.
	product, err := h.ProductRepo.GetProduct(ctx, bson.M{"_id": productID})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	price := product.Price
	if product.SalePrice > 0 && product.SalePrice < product.Price {
		price = product.SalePrice
	}

	item := models.CartItem{
		ProductID: productID,
		Name:      product.Name,
		Price:     price,
		Quantity:  req.Quantity,
		Image:     image,
	}

	// The repository enforces the stock bound across existing cart lines.
	if err := h.Repo.AddItem(ctx, userID, item, product.Stock); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Item added to cart", nil))
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid product ID"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.RemoveItem(ctx, userID, productID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Item removed from cart", nil))
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cart, err := h.Repo.GetCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch cart"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Cart fetched successfully", gin.H{"cart": cart}))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid product ID"))
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := h.ProductRepo.GetProduct(ctx, bson.M{"_id": productID})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.Repo.SetQuantity(ctx, userID, productID, req.Quantity, product.Stock); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Cart updated", nil))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.ClearCart(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to clear cart"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Cart cleared", nil))
}
