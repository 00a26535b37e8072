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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FlashDealHandler struct {
	Repo repository.FlashDealRepository
}

func NewFlashDealHandler(db *mongo.Database) *FlashDealHandler {
	return &FlashDealHandler{Repo: repository.NewFlashDealRepository(db)}
}

// GetActiveDeals is the public storefront query: only deals whose window
// contains the current time.
func (h *FlashDealHandler) GetActiveDeals(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	dealType := models.FlashDealType(c.Query("type"))

	deals, err := h.Repo.FindActive(ctx, dealType, limit, time.Now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Flash deals fetched successfully", gin.H{"deals": deals}))
}

func (h *FlashDealHandler) ListDeals(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	deals, err := h.Repo.List(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Flash deals fetched successfully", gin.H{"deals": deals}))
}

func (h *FlashDealHandler) GetDealById(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid flash deal ID"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	deal, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Flash deal fetched successfully", gin.H{"deal": deal}))
}

func (h *FlashDealHandler) CreateDeal(c *gin.Context) {
	var input models.CreateFlashDealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	deal, err := h.Repo.Create(ctx, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Flash deal created successfully", gin.H{"deal": deal}))
}

func (h *FlashDealHandler) UpdateDeal(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid flash deal ID"))
		return
	}

	var input models.UpdateFlashDealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	deal, err := h.Repo.Update(ctx, id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Flash deal updated successfully", gin.H{"deal": deal}))
}

func (h *FlashDealHandler) DeleteDeal(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid flash deal ID"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Flash deal deleted", nil))
}
