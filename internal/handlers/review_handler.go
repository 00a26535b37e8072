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

type ReviewHandler struct {
	DB   *mongo.Database
	Repo repository.ReviewRepository
}

func NewReviewHandler(db *mongo.Database) *ReviewHandler {
	return &ReviewHandler{DB: db, Repo: repository.NewReviewRepository(db)}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))

	// Reviewer name and picture are denormalized onto the review document.
	var user models.User
	if err := h.DB.Collection("users").FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch user details"))
		return
	}

	var input models.CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	review, err := h.Repo.CreateReview(ctx, userID, user.Name, user.ProfilePicture, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Review submitted successfully", gin.H{"review": review}))
}

func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid product ID"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	reviews, err := h.Repo.GetProductReviews(ctx, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch reviews"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Reviews fetched successfully", gin.H{"reviews": reviews}))
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
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

	reviews, total, err := h.Repo.ListReviews(ctx, limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch reviews"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Reviews fetched successfully", gin.H{
		"reviews": reviews,
		"total":   total,
	}))
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid review ID"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.DeleteReview(ctx, reviewID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Review removed", nil))
}
