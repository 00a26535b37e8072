package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/adapters/repository"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/config"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"github.com/devsmahesh/e-commerce-backend-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryHandler struct {
	Repo repository.CategoryRepository
	Cfg  *config.Config
}

func NewCategoryHandler(db *mongo.Database, cfg *config.Config) *CategoryHandler {
	return &CategoryHandler{Repo: repository.NewCategoryRepository(db), Cfg: cfg}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	includeInactive := c.Query("includeInactive") == "true"

	categories, err := h.Repo.List(ctx, includeInactive)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("categories fetched successfully", gin.H{
		"categories": categories,
	}))
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	category, err := h.Repo.Create(ctx, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("category created successfully", gin.H{
		"category": category,
	}))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid category ID"))
		return
	}

	var input models.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	category, err := h.Repo.Update(ctx, id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("category updated successfully", gin.H{
		"category": category,
	}))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid category ID"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("category deleted successfully", nil))
}

// UploadCategoryImage validates the file size and content type before
// streaming to Cloudinary. Role enforcement happens in RoleMiddleware.
func (h *CategoryHandler) UploadCategoryImage(c *gin.Context) {
	// Size limit: 5MB. http.MaxBytesReader stops reading past the limit.
	const MaxUploadSize = 5 << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("No file provided or file too large (Max 5MB)"))
		return
	}
	defer file.Close()

	// Magic-number validation: sniff the first 512 bytes for the real type.
	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to read file for validation"))
		return
	}
	file.Seek(0, 0)

	contentType := http.DetectContentType(buffer)
	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}

	if !allowedTypes[contentType] {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unsupported file type. Please upload JPG, PNG, WEBP, or GIF"))
		return
	}

	// UUID filename prevents path traversal and collisions.
	uniqueID := uuid.New().String()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		switch contentType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/webp":
			ext = ".webp"
		case "image/gif":
			ext = ".gif"
		}
	}
	safeFilename := fmt.Sprintf("%s%s", uniqueID, ext)

	imageUrl, err := utils.UploadToCloudinary(h.Cfg, file, safeFilename, "shop/categories")
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Cloudinary upload failed: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Image uploaded successfully", gin.H{
		"url":  imageUrl,
		"size": header.Size,
		"type": contentType,
	}))
}
