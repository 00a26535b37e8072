package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
)

type SEO struct {
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Keywords    []string `json:"keywords" bson:"keywords"`
	Slug        string   `json:"slug" bson:"slug"`
}

type Product struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Basic Info
	Name        string `json:"name" bson:"name" validate:"required"`
	Description string `json:"description" bson:"description"`
	Brand       string `json:"brand" bson:"brand"`

	// Categorization
	CategoryID primitive.ObjectID `json:"categoryId" bson:"categoryId"`
	Tags       []string           `json:"tags" bson:"tags"`

	// Media
	Images []string `json:"images" bson:"images"` // First image is primary

	// Pricing
	Price     float64 `json:"price" bson:"price" validate:"required,gt=0"`
	SalePrice float64 `json:"salePrice" bson:"salePrice"`
	CostPrice float64 `json:"costPrice" bson:"costPrice"` // For analytics; never serialized publicly

	// Inventory
	SKU               string `json:"sku" bson:"sku"`
	Stock             int    `json:"stock" bson:"stock" validate:"gte=0"`
	LowStockThreshold int    `json:"lowStockThreshold" bson:"lowStockThreshold"`

	SEO    SEO           `json:"seo" bson:"seo"`
	Status ProductStatus `json:"status" bson:"status"`

	// Aggregates (refreshed by the review repository)
	Rating      float64 `json:"rating" bson:"rating"`
	ReviewCount int     `json:"reviewCount" bson:"reviewCount"`
	TotalSales  int     `json:"totalSales" bson:"totalSales"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type UpdateProductInput struct {
	Name              *string        `json:"name" bson:"name,omitempty"`
	Description       *string        `json:"description" bson:"description,omitempty"`
	Brand             *string        `json:"brand" bson:"brand,omitempty"`
	CategoryID        *string        `json:"categoryId" bson:"-"`
	Tags              []string       `json:"tags" bson:"tags,omitempty"`
	Images            []string       `json:"images" bson:"images,omitempty"`
	Price             *float64       `json:"price" bson:"price,omitempty"`
	SalePrice         *float64       `json:"salePrice" bson:"salePrice,omitempty"`
	CostPrice         *float64       `json:"costPrice" bson:"costPrice,omitempty"`
	SKU               *string        `json:"sku" bson:"sku,omitempty"`
	Stock             *int           `json:"stock" bson:"stock,omitempty"`
	LowStockThreshold *int           `json:"lowStockThreshold" bson:"lowStockThreshold,omitempty"`
	SEO               *SEO           `json:"seo" bson:"seo,omitempty"`
	Status            *ProductStatus `json:"status" bson:"status,omitempty"`
}
