package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/adapters/repository"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/config"
	"github.com/devsmahesh/e-commerce-backend-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/api/option"
)

type AnalyticsHandler struct {
	Repo repository.AnalyticsRepository
	Cfg  *config.Config
}

func NewAnalyticsHandler(db *mongo.Database, cfg *config.Config) *AnalyticsHandler {
	return &AnalyticsHandler{Repo: repository.NewAnalyticsRepository(db), Cfg: cfg}
}

func (h *AnalyticsHandler) GetRevenue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	period := c.DefaultQuery("period", "daily")
	if period != "daily" && period != "monthly" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("period must be daily or monthly"))
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	sales, err := h.Repo.RevenueByPeriod(ctx, period, days)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Revenue report fetched successfully", gin.H{
		"period": period,
		"sales":  sales,
	}))
}

func (h *AnalyticsHandler) GetSalesByCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	sales, err := h.Repo.SalesByCategory(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Category sales fetched successfully", gin.H{"sales": sales}))
}

func (h *AnalyticsHandler) GetGrowth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	report, err := h.Repo.Growth(ctx, days)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Growth report fetched successfully", gin.H{"growth": report}))
}

// GetInsights summarizes the recent revenue report with Gemini. Only enabled
// when a Gemini API key is configured.
func (h *AnalyticsHandler) GetInsights(c *gin.Context) {
	if h.Cfg.GeminiAPIKey == "" {
		c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("Insights are not enabled on this deployment"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	sales, err := h.Repo.RevenueByPeriod(ctx, "daily", 30)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var sb strings.Builder
	sb.WriteString("You are an analyst for an e-commerce store. Summarize the following " +
		"daily revenue data in three short sentences: overall trend, best day, and one recommendation.\n")
	for _, day := range sales {
		fmt.Fprintf(&sb, "%s: revenue %.2f across %d orders\n", day.Date, day.Revenue, day.Orders)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(h.Cfg.GeminiAPIKey))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	insight := ""
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				insight += string(text)
			}
		}
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Insights generated successfully", gin.H{
		"insight": insight,
	}))
}
