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

type CouponHandler struct {
	Repo repository.CouponRepository
}

func NewCouponHandler(db *mongo.Database) *CouponHandler {
	return &CouponHandler{Repo: repository.NewCouponRepository(db)}
}

func (h *CouponHandler) ListCoupons(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	coupons, err := h.Repo.List(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Coupons fetched successfully", gin.H{"coupons": coupons}))
}

func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var input models.CreateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	coupon, err := h.Repo.Create(ctx, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Coupon created successfully", gin.H{"coupon": coupon}))
}

func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid coupon ID"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Coupon deleted", nil))
}

func (h *CouponHandler) SetCouponActive(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid coupon ID"))
		return
	}

	var req struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.SetActive(ctx, id, *req.IsActive); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Coupon updated", nil))
}

// ValidateCoupon lets the frontend preview the discount before checkout.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var input models.ValidateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	coupon, err := h.Repo.GetByCode(ctx, input.Code)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := coupon.Validate(input.Subtotal, time.Now()); err != nil {
		utils.RespondError(c, err)
		return
	}

	discount := coupon.Discount(input.Subtotal)
	c.JSON(http.StatusOK, utils.SuccessResponse("Coupon is valid", gin.H{
		"code":     coupon.Code,
		"discount": discount,
		"total":    input.Subtotal - discount,
	}))
}
