package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlertType classifies what condition raised an alert
type AlertType string

const (
	AlertLowStock      AlertType = "LOW_STOCK"
	AlertExpiryWarning AlertType = "EXPIRY_WARNING"
	AlertStockoutRisk  AlertType = "STOCKOUT_RISK"
)

// IsValid checks if the alert type is valid
func (t AlertType) IsValid() bool {
	switch t {
	case AlertLowStock, AlertExpiryWarning, AlertStockoutRisk:
		return true
	}
	return false
}

// Severity is the tier of an alert or restock urgency
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// IsValid checks if the severity is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Rank orders severities for sorting, CRITICAL first. Unknown values sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// Alert is a persisted inventory warning. Alerts are never deduplicated:
// repeated sweeps over an unchanged catalog produce new alerts each time,
// leaving suppression to the consumer.
type Alert struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AlertType   AlertType          `bson:"alertType" json:"alertType"`
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName string             `bson:"productName" json:"productName"`
	Severity    Severity           `bson:"severity" json:"severity"`
	Message     string             `bson:"message" json:"message"`
	IsRead      bool               `bson:"isRead" json:"isRead"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	ReadAt      *time.Time         `bson:"readAt,omitempty" json:"readAt,omitempty"`
}

func newAlert(alertType AlertType, product *Product, severity Severity, message string) *Alert {
	return &Alert{
		AlertType:   alertType,
		ProductID:   product.ID,
		ProductName: product.Name,
		Severity:    severity,
		Message:     message,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}
}

// NewLowStockAlert builds a low-stock alert for the product
func NewLowStockAlert(product *Product) *Alert {
	severity := LowStockSeverity(product.CurrentStock, product.ReorderPoint)
	message := fmt.Sprintf("Low stock alert: %s has only %d units remaining (Reorder point: %d)",
		product.Name, product.CurrentStock, product.ReorderPoint)
	return newAlert(AlertLowStock, product, severity, message)
}

// NewExpiryAlert builds an expiry warning for the product.
// Returns ErrNoExpiryDate when the product has no expiry date.
func NewExpiryAlert(product *Product, now time.Time) (*Alert, error) {
	days, err := product.DaysUntilExpiry(now)
	if err != nil {
		return nil, err
	}

	severity := ExpirySeverity(days)
	message := fmt.Sprintf("Expiry warning: %s will expire in %d days (Expiry date: %s)",
		product.Name, days, product.ExpiryDate.Format("2006-01-02"))
	return newAlert(AlertExpiryWarning, product, severity, message), nil
}

// NewStockoutRiskAlert builds a stockout-risk alert comparing predicted demand
// against current stock
func NewStockoutRiskAlert(product *Product, predictedDemand int) *Alert {
	shortfall := predictedDemand - product.CurrentStock
	severity := StockoutRiskSeverity(shortfall, product.CurrentStock)
	message := fmt.Sprintf("Stockout risk: %s - Predicted demand (%d) exceeds current stock (%d). Shortfall: %d units",
		product.Name, predictedDemand, product.CurrentStock, shortfall)
	return newAlert(AlertStockoutRisk, product, severity, message)
}

// MarkRead flips the read flag. The read timestamp is recorded only on the
// first transition; marking an already-read alert is a no-op.
func (a *Alert) MarkRead() {
	a.IsRead = true
	if a.ReadAt == nil {
		now := time.Now()
		a.ReadAt = &now
	}
}

// LowStockSeverity tiers a low-stock condition by how far stock has fallen
// below the reorder point. Thresholds use integer division.
func LowStockSeverity(stock, reorderPoint int) Severity {
	switch {
	case stock == 0:
		return SeverityCritical
	case stock <= reorderPoint/3:
		return SeverityHigh
	case stock <= reorderPoint*2/3:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ExpirySeverity tiers an expiry condition by days remaining
func ExpirySeverity(daysUntilExpiry int) Severity {
	switch {
	case daysUntilExpiry <= 3:
		return SeverityCritical
	case daysUntilExpiry <= 7:
		return SeverityHigh
	case daysUntilExpiry <= 14:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// StockoutRiskSeverity tiers a stockout risk by the shortfall relative to
// current stock. Zero stock is treated as 1 to keep the ratio finite.
func StockoutRiskSeverity(shortfall, currentStock int) Severity {
	base := currentStock
	if base < 1 {
		base = 1
	}
	ratio := float64(shortfall) / float64(base)

	switch {
	case ratio >= 2.0:
		return SeverityCritical
	case ratio >= 1.0:
		return SeverityHigh
	case ratio >= 0.5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
