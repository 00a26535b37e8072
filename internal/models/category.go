package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name     string              `json:"name" bson:"name" validate:"required"`
	Slug     string              `json:"slug" bson:"slug" validate:"required"`
	ParentID *primitive.ObjectID `json:"parentId,omitempty" bson:"parentId,omitempty"`
	Image    string              `json:"image,omitempty" bson:"image,omitempty"`
	IsActive bool                `json:"isActive" bson:"isActive"`
	Order    int                 `json:"order" bson:"order"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateCategoryInput struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	ParentID string `json:"parentId"`
	Image    string `json:"image"`
	Order    int    `json:"order"`
}

// UpdateCategoryInput uses pointers so partial updates can tell "unset" from
// zero values; only non-nil fields are written.
type UpdateCategoryInput struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	ParentID *string `json:"parentId"`
	Image    *string `json:"image"`
	IsActive *bool   `json:"isActive"`
	Order    *int    `json:"order"`
}
