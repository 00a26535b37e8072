package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FlashDealType string

const (
	FlashDealTypeDiscount FlashDealType = "discount"
	FlashDealTypeBogo     FlashDealType = "bogo"
	FlashDealTypeBundle   FlashDealType = "bundle"
)

type FlashDeal struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title              string               `json:"title" bson:"title" validate:"required"`
	Type               FlashDealType        `json:"type" bson:"type" validate:"required,oneof=discount bogo bundle"`
	DiscountPercentage float64              `json:"discountPercentage,omitempty" bson:"discountPercentage,omitempty"`
	ProductIDs         []primitive.ObjectID `json:"productIds" bson:"productIds"`
	StartDate          time.Time            `json:"startDate" bson:"startDate" validate:"required"`
	EndDate            time.Time            `json:"endDate" bson:"endDate" validate:"required"`
	Priority           int                  `json:"priority" bson:"priority"`
	IsActive           bool                 `json:"isActive" bson:"isActive"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateFlashDealInput struct {
	Title              string        `json:"title" binding:"required"`
	Type               FlashDealType `json:"type" binding:"required,oneof=discount bogo bundle"`
	DiscountPercentage float64       `json:"discountPercentage"`
	ProductIDs         []string      `json:"productIds"`
	StartDate          time.Time     `json:"startDate" binding:"required"`
	EndDate            time.Time     `json:"endDate" binding:"required"`
	Priority           int           `json:"priority"`
}

type UpdateFlashDealInput struct {
	Title              *string        `json:"title"`
	Type               *FlashDealType `json:"type"`
	DiscountPercentage *float64       `json:"discountPercentage"`
	ProductIDs         []string       `json:"productIds"`
	StartDate          *time.Time     `json:"startDate"`
	EndDate            *time.Time     `json:"endDate"`
	Priority           *int           `json:"priority"`
	IsActive           *bool          `json:"isActive"`
}
