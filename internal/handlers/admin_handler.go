package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/adapters/repository"
	"github.com/devsmahesh/e-commerce-backend-sub001/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminHandler struct {
	Repo repository.AdminRepository
}

func NewAdminHandler(db *mongo.Database) *AdminHandler {
	return &AdminHandler{Repo: repository.NewAdminRepository(db)}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.Repo.GetDashboardStats(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Dashboard fetched successfully", gin.H{"stats": stats}))
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
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

	users, total, err := h.Repo.ListUsers(ctx, limit, (page-1)*limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Users fetched successfully", gin.H{
		"users": users,
		"total": total,
	}))
}
