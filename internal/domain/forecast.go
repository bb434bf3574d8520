package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Forecast errors
var (
	ErrInvalidForecastType = errors.New("invalid forecast type")
	ErrInvalidDemand       = errors.New("predicted demand must be at least 1")
)

// ForecastType is the horizon class of a demand forecast
type ForecastType string

const (
	ForecastDaily  ForecastType = "DAILY"
	ForecastWeekly ForecastType = "WEEKLY"
)

// IsValid checks if the forecast type is valid
func (t ForecastType) IsValid() bool {
	switch t {
	case ForecastDaily, ForecastWeekly:
		return true
	}
	return false
}

// Horizon returns the number of days the forecast covers
func (t ForecastType) Horizon() int {
	if t == ForecastDaily {
		return 1
	}
	return 7
}

// DemandForecast is a persisted demand prediction for one product on one
// forecast date. The (product, date, type) triple is the identity key:
// regenerating an existing forecast returns the stored one unchanged.
type DemandForecast struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID       primitive.ObjectID `bson:"productId" json:"productId"`
	ForecastDate    time.Time          `bson:"forecastDate" json:"forecastDate"`
	PredictedDemand int                `bson:"predictedDemand" json:"predictedDemand"`
	ConfidenceScore float64            `bson:"confidenceScore" json:"confidenceScore"`
	ForecastType    ForecastType       `bson:"forecastType" json:"forecastType"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewDemandForecast creates a demand forecast
func NewDemandForecast(productID primitive.ObjectID, forecastDate time.Time, predictedDemand int, confidenceScore float64, forecastType ForecastType) (*DemandForecast, error) {
	if !forecastType.IsValid() {
		return nil, ErrInvalidForecastType
	}
	if predictedDemand < 1 {
		return nil, ErrInvalidDemand
	}

	return &DemandForecast{
		ProductID:       productID,
		ForecastDate:    truncateToDay(forecastDate),
		PredictedDemand: predictedDemand,
		ConfidenceScore: confidenceScore,
		ForecastType:    forecastType,
		CreatedAt:       time.Now(),
	}, nil
}
