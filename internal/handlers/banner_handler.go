package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/adapters/repository"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"github.com/devsmahesh/e-commerce-backend-sub001/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BannerHandler struct {
	Repo repository.BannerRepository
}

func NewBannerHandler(db *mongo.Database) *BannerHandler {
	return &BannerHandler{Repo: repository.NewBannerRepository(db)}
}

func (h *BannerHandler) GetActiveBanners(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	banners, err := h.Repo.ListActive(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Banners fetched successfully", gin.H{"banners": banners}))
}

func (h *BannerHandler) ListBanners(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	banners, err := h.Repo.List(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Banners fetched successfully", gin.H{"banners": banners}))
}

func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var input models.CreateBannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	banner, err := h.Repo.Create(ctx, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Banner created successfully", gin.H{"banner": banner}))
}

func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid banner ID"))
		return
	}

	var input models.UpdateBannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	banner, err := h.Repo.Update(ctx, id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Banner updated successfully", gin.H{"banner": banner}))
}

func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid banner ID"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Banner deleted", nil))
}
