package application

import (
	"testing"
	"time"

	"github.com/inventory-platform/forecast-service/internal/domain"
)

func salesWithQuantities(quantities ...int) []*domain.SalesRecord {
	records := make([]*domain.SalesRecord, len(quantities))
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, q := range quantities {
		records[i] = &domain.SalesRecord{
			QuantitySold: q,
			SaleDate:     day.AddDate(0, 0, i),
		}
	}
	return records
}

func TestPredictDemand(t *testing.T) {
	t.Run("extrapolates from lifetime purchases without history", func(t *testing.T) {
		product := &domain.Product{PurchaseCount: 45}
		// 45 purchases over the window is 1.5 a day
		if got := PredictDemand(nil, product, 2); got != 3 {
			t.Errorf("prediction = %d, want 3", got)
		}
	})

	t.Run("cold start without history or purchases", func(t *testing.T) {
		product := &domain.Product{}
		if got := PredictDemand(nil, product, 1); got != 5 {
			t.Errorf("prediction = %d, want 5", got)
		}
	})

	t.Run("flat history predicts the flat rate", func(t *testing.T) {
		records := salesWithQuantities(10, 10, 10)
		product := &domain.Product{}
		if got := PredictDemand(records, product, 1); got != 10 {
			t.Errorf("prediction = %d, want 10", got)
		}
	})

	t.Run("horizon scales the prediction", func(t *testing.T) {
		records := salesWithQuantities(10, 10, 10)
		product := &domain.Product{}
		if got := PredictDemand(records, product, 7); got != 70 {
			t.Errorf("prediction = %d, want 70", got)
		}
	})

	t.Run("rising history applies the trend", func(t *testing.T) {
		records := salesWithQuantities(4, 8)
		product := &domain.Product{}
		// sma 6, smoothed 5.2, trend +100%: (5.2*0.7 + 6*0.3) * 2 = 10.88
		if got := PredictDemand(records, product, 1); got != 11 {
			t.Errorf("prediction = %d, want 11", got)
		}
	})

	t.Run("falling history never predicts below one", func(t *testing.T) {
		records := salesWithQuantities(1, 0, 0, 0)
		product := &domain.Product{}
		if got := PredictDemand(records, product, 1); got < 1 {
			t.Errorf("prediction = %d, want at least 1", got)
		}
	})

	t.Run("all-zero history predicts the floor", func(t *testing.T) {
		records := salesWithQuantities(0, 0, 0, 0)
		product := &domain.Product{}
		if got := PredictDemand(records, product, 7); got != 1 {
			t.Errorf("prediction = %d, want 1", got)
		}
	})

	t.Run("single observation has no trend", func(t *testing.T) {
		records := salesWithQuantities(6)
		product := &domain.Product{}
		// sma 6, smoothed 6, no trend
		if got := PredictDemand(records, product, 1); got != 6 {
			t.Errorf("prediction = %d, want 6", got)
		}
	})
}

func TestConfidence(t *testing.T) {
	t.Run("no history", func(t *testing.T) {
		if got := Confidence(nil); got != 50.0 {
			t.Errorf("confidence = %f, want 50.0", got)
		}
	})

	t.Run("under a week of history", func(t *testing.T) {
		if got := Confidence(salesWithQuantities(5, 5, 5)); got != 60.0 {
			t.Errorf("confidence = %f, want 60.0", got)
		}
	})

	t.Run("one to two weeks of history", func(t *testing.T) {
		records := salesWithQuantities(5, 5, 5, 5, 5, 5, 5, 5, 5, 5)
		if got := Confidence(records); got != 75.0 {
			t.Errorf("confidence = %f, want 75.0", got)
		}
	})

	t.Run("steady demand scores the ceiling", func(t *testing.T) {
		quantities := make([]int, 20)
		for i := range quantities {
			quantities[i] = 5
		}
		if got := Confidence(salesWithQuantities(quantities...)); got != 95.0 {
			t.Errorf("confidence = %f, want 95.0", got)
		}
	})

	t.Run("volatile demand clamps to the floor", func(t *testing.T) {
		quantities := make([]int, 14)
		for i := range quantities {
			if i%2 == 0 {
				quantities[i] = 10
			}
		}
		// cv of 1.0 pushes the raw score below the floor
		if got := Confidence(salesWithQuantities(quantities...)); got != 50.0 {
			t.Errorf("confidence = %f, want 50.0", got)
		}
	})

	t.Run("steadier demand never scores lower at the same mean", func(t *testing.T) {
		// Three two-week histories, all with mean 10, spread shrinking.
		histories := [][]int{
			{6, 14, 6, 14, 6, 14, 6, 14, 6, 14, 6, 14, 6, 14},
			{8, 12, 8, 12, 8, 12, 8, 12, 8, 12, 8, 12, 8, 12},
			{9, 11, 9, 11, 9, 11, 9, 11, 9, 11, 9, 11, 9, 11},
		}
		prev := -1.0
		for _, quantities := range histories {
			got := Confidence(salesWithQuantities(quantities...))
			if got <= prev {
				t.Errorf("confidence = %f for spread ±%d, want above %f", got, quantities[1]-10, prev)
			}
			prev = got
		}
	})

	t.Run("moderate variation lands between the bounds", func(t *testing.T) {
		quantities := make([]int, 14)
		for i := range quantities {
			quantities[i] = 10
			if i%7 == 0 {
				quantities[i] = 8
			}
		}
		got := Confidence(salesWithQuantities(quantities...))
		if got <= 50.0 || got >= 95.0 {
			t.Errorf("confidence = %f, want strictly between 50 and 95", got)
		}
	})
}
