package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/config"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"github.com/devsmahesh/e-commerce-backend-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Shared struct validator for the handlers package.
var validate = validator.New()

type AuthHandler struct {
	DB  *mongo.Database
	Cfg *config.Config
}

func NewAuthHandler(db *mongo.Database, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	collection := h.DB.Collection("users")
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	if err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		c.JSON(http.StatusConflict, utils.ErrorResponse("email is already registered"))
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to create account"))
		return
	}

	user := models.User{
		Name:      input.Name,
		Email:     email,
		Password:  hash,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	res, err := collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, utils.ErrorResponse("email is already registered"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to create account"))
		return
	}
	user.ID = res.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, utils.SuccessResponse("Account created successfully", gin.H{
		"user": user,
	}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := h.DB.Collection("users").FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
	if err != nil || !utils.CheckPassword(user.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid email or password"))
		return
	}

	accessToken, refreshToken, err := h.issueTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to issue tokens"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Login successful", gin.H{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}))
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input models.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	claims, err := utils.VerifyToken(h.Cfg.JWTRefreshSecret, input.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(err.Error()))
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("invalid token subject"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// Re-read the user so role changes and deletions take effect on rotation.
	var user models.User
	if err := h.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("account no longer exists"))
		return
	}

	accessToken, refreshToken, err := h.issueTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to issue tokens"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Token refreshed", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}))
}

func (h *AuthHandler) Me(c *gin.Context) {
	userIdStr, _ := c.Get("userId")
	userID, _ := primitive.ObjectIDFromHex(userIdStr.(string))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := h.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse("User not found"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Profile fetched successfully", gin.H{"user": user}))
}

func (h *AuthHandler) issueTokens(user models.User) (string, string, error) {
	accessToken, err := utils.GenerateToken(h.Cfg.JWTSecret, user.ID.Hex(), user.Role, utils.AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := utils.GenerateToken(h.Cfg.JWTRefreshSecret, user.ID.Hex(), user.Role, utils.RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
