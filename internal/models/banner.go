package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Banner struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `json:"title" bson:"title" validate:"required"`
	Image    string             `json:"image" bson:"image" validate:"required"`
	Link     string             `json:"link,omitempty" bson:"link,omitempty"`
	Position int                `json:"position" bson:"position"`
	IsActive bool               `json:"isActive" bson:"isActive"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateBannerInput struct {
	Title    string `json:"title" binding:"required"`
	Image    string `json:"image" binding:"required"`
	Link     string `json:"link"`
	Position int    `json:"position"`
}

type UpdateBannerInput struct {
	Title    *string `json:"title"`
	Image    *string `json:"image"`
	Link     *string `json:"link"`
	Position *int    `json:"position"`
	IsActive *bool   `json:"isActive"`
}
