package models

import (
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Image     string             `json:"image" bson:"image"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Items     []CartItem         `json:"items" bson:"items"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type AddToCartInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// Merge folds item into the cart. An existing line for the same product has
// its quantity incremented and its snapshot fields (name, image, price)
// refreshed; otherwise a new line is appended. stock bounds the resulting
// line quantity, so the cumulative amount across repeated adds can never
// exceed what is available.
func (c *Cart) Merge(item CartItem, stock int) error {
	for i := range c.Items {
		if c.Items[i].ProductID != item.ProductID {
			continue
		}
		if c.Items[i].Quantity+item.Quantity > stock {
			return apperrors.BadRequest("total quantity in cart exceeds available stock")
		}
		c.Items[i].Quantity += item.Quantity
		c.Items[i].Name = item.Name
		c.Items[i].Image = item.Image
		c.Items[i].Price = item.Price
		return nil
	}

	if item.Quantity > stock {
		return apperrors.BadRequest("requested quantity exceeds available stock")
	}
	c.Items = append(c.Items, item)
	return nil
}
