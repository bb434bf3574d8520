package application

import (
	"time"

	"github.com/inventory-platform/forecast-service/internal/domain"
)

// GenerateForecastCommand requests a forecast for one product
type GenerateForecastCommand struct {
	ProductID    string `json:"productId" binding:"required,product_id"`
	ForecastType string `json:"forecastType" binding:"omitempty,forecast_type"`
	ForecastDate string `json:"forecastDate" binding:"omitempty,datetime=2006-01-02"`
}

// GenerateAllForecastsCommand requests forecasts for the whole catalog
type GenerateAllForecastsCommand struct {
	ForecastType string `json:"forecastType" binding:"omitempty,forecast_type"`
}

// PredictDemandQuery asks for a raw demand prediction without persisting it
type PredictDemandQuery struct {
	ProductID string
	DaysAhead int
}

// MarkAlertReadCommand marks one alert as read
type MarkAlertReadCommand struct {
	AlertID string
}

// ForecastDTO is the outward representation of a stored forecast
type ForecastDTO struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"productId"`
	ForecastDate    string    `json:"forecastDate"`
	PredictedDemand int       `json:"predictedDemand"`
	ConfidenceScore float64   `json:"confidenceScore"`
	ForecastType    string    `json:"forecastType"`
	CreatedAt       time.Time `json:"createdAt"`
}

// StockoutRiskDTO pairs an upcoming forecast with the product it threatens
type StockoutRiskDTO struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	CurrentStock    int     `json:"currentStock"`
	PredictedDemand int     `json:"predictedDemand"`
	Shortfall       int     `json:"shortfall"`
	ForecastDate    string  `json:"forecastDate"`
	Confidence      float64 `json:"confidence"`
}

// PredictionDTO is the response to an ad-hoc prediction query
type PredictionDTO struct {
	ProductID       string `json:"productId"`
	DaysAhead       int    `json:"daysAhead"`
	PredictedDemand int    `json:"predictedDemand"`
}

// AlertDTO is the outward representation of an alert
type AlertDTO struct {
	ID          string     `json:"id"`
	AlertType   string     `json:"alertType"`
	ProductID   string     `json:"productId"`
	ProductName string     `json:"productName"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	IsRead      bool       `json:"isRead"`
	CreatedAt   time.Time  `json:"createdAt"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}

// ToForecastDTO converts a domain forecast to its DTO
func ToForecastDTO(f *domain.DemandForecast) *ForecastDTO {
	return &ForecastDTO{
		ID:              f.ID.Hex(),
		ProductID:       f.ProductID.Hex(),
		ForecastDate:    f.ForecastDate.Format("2006-01-02"),
		PredictedDemand: f.PredictedDemand,
		ConfidenceScore: f.ConfidenceScore,
		ForecastType:    string(f.ForecastType),
		CreatedAt:       f.CreatedAt,
	}
}

// ToForecastDTOs converts a slice of domain forecasts
func ToForecastDTOs(forecasts []*domain.DemandForecast) []*ForecastDTO {
	dtos := make([]*ForecastDTO, len(forecasts))
	for i, f := range forecasts {
		dtos[i] = ToForecastDTO(f)
	}
	return dtos
}

// ToAlertDTO converts a domain alert to its DTO
func ToAlertDTO(a *domain.Alert) *AlertDTO {
	return &AlertDTO{
		ID:          a.ID.Hex(),
		AlertType:   string(a.AlertType),
		ProductID:   a.ProductID.Hex(),
		ProductName: a.ProductName,
		Severity:    string(a.Severity),
		Message:     a.Message,
		IsRead:      a.IsRead,
		CreatedAt:   a.CreatedAt,
		ReadAt:      a.ReadAt,
	}
}

// ToAlertDTOs converts a slice of domain alerts
func ToAlertDTOs(alerts []*domain.Alert) []*AlertDTO {
	dtos := make([]*AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = ToAlertDTO(a)
	}
	return dtos
}
