package application

import (
	"math"

	"github.com/inventory-platform/forecast-service/internal/domain"
)

// Prediction model parameters
const (
	// HistoryWindowDays is how far back the sales history feeding a
	// prediction reaches.
	HistoryWindowDays = 30

	// smoothingAlpha weights recent observations in exponential smoothing.
	smoothingAlpha = 0.3

	// smoothedWeight and movingAverageWeight blend the two estimators.
	smoothedWeight      = 0.7
	movingAverageWeight = 0.3

	// coldStartPrediction is returned when a product has no sales history
	// and no lifetime purchases to extrapolate from.
	coldStartPrediction = 5
)

// PredictDemand estimates units demanded over the next daysAhead days from
// the product's recent sales observations. With no observations it falls back
// to the product's lifetime purchase rate, or a fixed cold-start guess when
// that is zero too. The result is never below 1.
func PredictDemand(records []*domain.SalesRecord, product *domain.Product, daysAhead int) int {
	if len(records) == 0 {
		if product.PurchaseCount > 0 {
			daily := float64(product.PurchaseCount) / float64(HistoryWindowDays)
			return int(math.Ceil(daily * float64(daysAhead)))
		}
		return coldStartPrediction
	}

	quantities := make([]int, len(records))
	for i, r := range records {
		quantities[i] = r.QuantitySold
	}

	sma := movingAverage(quantities)
	smoothed := exponentialSmoothing(quantities)
	trend := trendFactor(quantities)

	prediction := (smoothed*smoothedWeight + sma*movingAverageWeight) * (1 + trend) * float64(daysAhead)

	predicted := int(math.Ceil(prediction))
	if predicted < 1 {
		predicted = 1
	}
	return predicted
}

// Confidence scores a prediction from the size and stability of its sales
// history. Sparse histories get fixed tiers; with two weeks or more of data
// the score falls with the coefficient of variation, clamped to [50, 95] and
// rounded to two decimals.
func Confidence(records []*domain.SalesRecord) float64 {
	n := len(records)
	switch {
	case n == 0:
		return 50.0
	case n < 7:
		return 60.0
	case n < 14:
		return 75.0
	}

	var sum float64
	for _, r := range records {
		sum += float64(r.QuantitySold)
	}
	mean := sum / float64(n)
	if mean == 0 {
		return 50.0
	}

	var variance float64
	for _, r := range records {
		d := float64(r.QuantitySold) - mean
		variance += d * d
	}
	variance /= float64(n)

	cv := math.Sqrt(variance) / mean
	confidence := 95 - cv*100
	if confidence < 50 {
		confidence = 50
	}
	if confidence > 95 {
		confidence = 95
	}
	return math.Round(confidence*100) / 100
}

func movingAverage(quantities []int) float64 {
	total := 0
	for _, q := range quantities {
		total += q
	}
	return float64(total) / float64(len(quantities))
}

func exponentialSmoothing(quantities []int) float64 {
	smoothed := float64(quantities[0])
	for _, q := range quantities[1:] {
		smoothed = smoothingAlpha*float64(q) + (1-smoothingAlpha)*smoothed
	}
	return smoothed
}

// trendFactor compares the mean of the second half of the series against the
// first half. A zero first-half mean is treated as 1 to keep the ratio
// finite. Fewer than two observations yields no trend.
func trendFactor(quantities []int) float64 {
	if len(quantities) < 2 {
		return 0.0
	}

	mid := len(quantities) / 2
	previous := halfMean(quantities[:mid])
	recent := halfMean(quantities[mid:])
	if previous == 0 {
		previous = 1
	}
	return (recent - previous) / previous
}

func halfMean(quantities []int) float64 {
	if len(quantities) == 0 {
		return 0
	}
	total := 0
	for _, q := range quantities {
		total += q
	}
	return float64(total) / float64(len(quantities))
}
