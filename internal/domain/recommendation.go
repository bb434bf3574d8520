package domain

import (
	"math"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockoutSentinelDays is reported when daily demand rounds to zero and the
// product will effectively never stock out.
const StockoutSentinelDays = 999

// MinimumReorderUnits is the floor applied to every recommended order.
const MinimumReorderUnits = 10

// RestockRecommendation is a computed (never persisted) purchase suggestion
// for a product at or below its reorder point. It carries every field a
// downstream purchase-order generator needs.
type RestockRecommendation struct {
	ProductID           primitive.ObjectID `json:"productId"`
	ProductName         string             `json:"productName"`
	CurrentStock        int                `json:"currentStock"`
	ReorderPoint        int                `json:"reorderPoint"`
	RecommendedQty      int                `json:"recommendedQty"`
	PredictedDemand     int                `json:"predictedDemand"`
	DaysUntilStockout   int                `json:"daysUntilStockout"`
	Urgency             Severity           `json:"urgency"`
	EstimatedCost       float64            `json:"estimatedCost"`
	LeadTimeDays        int                `json:"leadTimeDays"`
}

// NewRestockRecommendation derives a recommendation from the product's
// replenishment parameters and its predicted 30-day demand.
func NewRestockRecommendation(product *Product, predictedDemand int) *RestockRecommendation {
	qty := RecommendedOrderQuantity(product, predictedDemand)
	days := DaysUntilStockout(product.CurrentStock, predictedDemand)

	return &RestockRecommendation{
		ProductID:         product.ID,
		ProductName:       product.Name,
		CurrentStock:      product.CurrentStock,
		ReorderPoint:      product.ReorderPoint,
		RecommendedQty:    qty,
		PredictedDemand:   predictedDemand,
		DaysUntilStockout: days,
		Urgency:           RestockUrgency(days),
		EstimatedCost:     float64(qty) * product.Price,
		LeadTimeDays:      product.LeadTimeDays,
	}
}

// RecommendedOrderQuantity computes lead-time demand plus a 7-day safety
// stock, net of what is on hand, floored by the configured reorder quantity
// and the global minimum.
func RecommendedOrderQuantity(product *Product, predictedDemand int) int {
	dailyDemand := float64(predictedDemand) / 30.0
	leadTimeDemand := int(math.Ceil(dailyDemand * float64(product.LeadTimeDays)))
	safetyStock := int(math.Ceil(dailyDemand * 7))

	qty := leadTimeDemand + safetyStock - product.CurrentStock
	if product.ReorderQuantity > 0 && product.ReorderQuantity > qty {
		qty = product.ReorderQuantity
	}
	if qty < MinimumReorderUnits {
		qty = MinimumReorderUnits
	}
	return qty
}

// DaysUntilStockout projects how many whole days current stock lasts at the
// predicted daily consumption rate.
func DaysUntilStockout(currentStock, predictedDemand int) int {
	dailyDemand := float64(predictedDemand) / 30.0
	if dailyDemand == 0 {
		return StockoutSentinelDays
	}
	return int(math.Floor(float64(currentStock) / dailyDemand))
}

// RestockUrgency tiers the recommendation by projected days until stockout
func RestockUrgency(daysUntilStockout int) Severity {
	switch {
	case daysUntilStockout <= 3:
		return SeverityCritical
	case daysUntilStockout <= 7:
		return SeverityHigh
	case daysUntilStockout <= 14:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// SortByUrgency orders recommendations most urgent first. The sort is stable
// so products within a tier keep their catalog order.
func SortByUrgency(recommendations []*RestockRecommendation) {
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Urgency.Rank() < recommendations[j].Urgency.Rank()
	})
}
