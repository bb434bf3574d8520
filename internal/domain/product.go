package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain errors
var (
	ErrNoExpiryDate     = errors.New("product has no expiry date")
	ErrInvalidName      = errors.New("product name is required")
	ErrInvalidPrice     = errors.New("price must be positive")
	ErrInvalidStock     = errors.New("stock must not be negative")
	ErrInvalidDaysAhead = errors.New("days ahead must be positive")
)

// Default replenishment parameters applied to new products
const (
	DefaultReorderPoint    = 20
	DefaultReorderQuantity = 50
	DefaultLeadTimeDays    = 7
)

// Product is the catalog aggregate the forecasting engine reads. Stock and
// purchase counters are maintained by upstream order flows; this service only
// consumes them.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Price         float64            `bson:"price" json:"price"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CurrentStock  int                `bson:"currentStock" json:"currentStock"`
	PurchaseCount int                `bson:"purchaseCount" json:"purchaseCount"`
	ExpiryDate    *time.Time         `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`

	ReorderPoint    int `bson:"reorderPoint" json:"reorderPoint"`
	ReorderQuantity int `bson:"reorderQuantity" json:"reorderQuantity"`
	LeadTimeDays    int `bson:"leadTimeDays" json:"leadTimeDays"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewProduct creates a new Product with default replenishment parameters
func NewProduct(name string, price float64, imageURL string, currentStock int) (*Product, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if currentStock < 0 {
		return nil, ErrInvalidStock
	}

	now := time.Now()
	return &Product{
		Name:            name,
		Price:           price,
		ImageURL:        imageURL,
		CurrentStock:    currentStock,
		PurchaseCount:   0,
		ReorderPoint:    DefaultReorderPoint,
		ReorderQuantity: DefaultReorderQuantity,
		LeadTimeDays:    DefaultLeadTimeDays,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsLowStock reports whether current stock is at or below the reorder point
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.ReorderPoint
}

// HasExpiryDate reports whether the product carries an expiry date
func (p *Product) HasExpiryDate() bool {
	return p.ExpiryDate != nil
}

// DaysUntilExpiry returns whole days from now until the expiry date.
// Returns ErrNoExpiryDate when the product has none.
func (p *Product) DaysUntilExpiry(now time.Time) (int, error) {
	if p.ExpiryDate == nil {
		return 0, ErrNoExpiryDate
	}
	days := int(p.ExpiryDate.Sub(truncateToDay(now)).Hours() / 24)
	return days, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
