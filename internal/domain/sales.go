package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SalesRecord is one historical sales observation for a product.
// The collection is append-only; records are never mutated after the fact.
type SalesRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	SaleDate     time.Time          `bson:"saleDate" json:"saleDate"`
	QuantitySold int                `bson:"quantitySold" json:"quantitySold"`
	Revenue      float64            `bson:"revenue" json:"revenue"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
