package domain

import (
	"testing"
)

func TestRecommendedOrderQuantity(t *testing.T) {
	tests := []struct {
		name            string
		stock           int
		reorderQuantity int
		leadTimeDays    int
		predicted       int
		want            int
	}{
		// daily 2, lead-time demand 14, safety 14, net 28 - 10 = 18,
		// below the configured reorder quantity of 50
		{"reorder quantity floors the order", 10, 50, 7, 60, 50},
		// daily 10, lead-time demand 70, safety 70, net 140 - 5 = 135
		{"demand-driven order above the floor", 5, 50, 7, 300, 135},
		// zero reorder quantity drops that floor, global minimum holds
		{"global minimum applies", 30, 0, 7, 30, 10},
		{"longer lead time raises the order", 5, 0, 14, 300, 205},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := &Product{
				CurrentStock:    tt.stock,
				ReorderQuantity: tt.reorderQuantity,
				LeadTimeDays:    tt.leadTimeDays,
			}
			if got := RecommendedOrderQuantity(product, tt.predicted); got != tt.want {
				t.Errorf("RecommendedOrderQuantity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysUntilStockout(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		predicted int
		want      int
	}{
		{"steady burn", 30, 30, 30},
		{"partial day rounds down", 10, 90, 3},
		{"zero demand never stocks out", 50, 0, StockoutSentinelDays},
		{"zero stock is zero days", 0, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilStockout(tt.stock, tt.predicted); got != tt.want {
				t.Errorf("DaysUntilStockout(%d, %d) = %d, want %d", tt.stock, tt.predicted, got, tt.want)
			}
		})
	}
}

func TestRestockUrgency(t *testing.T) {
	tests := []struct {
		name string
		days int
		want Severity
	}{
		{"3 days is critical", 3, SeverityCritical},
		{"7 days is high", 7, SeverityHigh},
		{"14 days is medium", 14, SeverityMedium},
		{"15 days is low", 15, SeverityLow},
		{"sentinel is low", StockoutSentinelDays, SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RestockUrgency(tt.days); got != tt.want {
				t.Errorf("RestockUrgency(%d) = %v, want %v", tt.days, got, tt.want)
			}
		})
	}
}

func TestSortByUrgency(t *testing.T) {
	recs := []*RestockRecommendation{
		{ProductName: "low-1", Urgency: SeverityLow},
		{ProductName: "critical", Urgency: SeverityCritical},
		{ProductName: "medium", Urgency: SeverityMedium},
		{ProductName: "low-2", Urgency: SeverityLow},
		{ProductName: "high", Urgency: SeverityHigh},
	}

	SortByUrgency(recs)

	wantOrder := []string{"critical", "high", "medium", "low-1", "low-2"}
	for i, want := range wantOrder {
		if recs[i].ProductName != want {
			t.Errorf("position %d = %s, want %s", i, recs[i].ProductName, want)
		}
	}
}

func TestNewRestockRecommendation(t *testing.T) {
	product := &Product{
		Name:            "Widget",
		Price:           2.50,
		CurrentStock:    10,
		ReorderPoint:    20,
		ReorderQuantity: 50,
		LeadTimeDays:    7,
	}

	rec := NewRestockRecommendation(product, 60)

	if rec.RecommendedQty != 50 {
		t.Errorf("recommended qty = %d, want 50", rec.RecommendedQty)
	}
	// daily demand 2, 10 units on hand
	if rec.DaysUntilStockout != 5 {
		t.Errorf("days until stockout = %d, want 5", rec.DaysUntilStockout)
	}
	if rec.Urgency != SeverityHigh {
		t.Errorf("urgency = %v, want %v", rec.Urgency, SeverityHigh)
	}
	if rec.EstimatedCost != 125.0 {
		t.Errorf("estimated cost = %f, want 125.0", rec.EstimatedCost)
	}
}
