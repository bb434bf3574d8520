package events

import (
	"time"
)

// EventType constants for inventory domain events
const (
	// Forecast events
	ForecastGenerated = "inventory.forecast.generated"

	// Alert events
	AlertCreated = "inventory.alert.created"

	// Notification events
	NotificationRequested = "inventory.notification.requested"
)

// Source constants for event sources
const (
	SourceForecastService = "/inventory/forecast-service"
)

// CloudEvent represents a CloudEvents v1.0 compliant event
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Inventory-specific extensions
	CorrelationID string `json:"invcorrelationid,omitempty"`
	ProductID     string `json:"invproductid,omitempty"`
}

// ForecastGeneratedData is the payload for ForecastGenerated events
type ForecastGeneratedData struct {
	ForecastID      string  `json:"forecastId"`
	ProductID       string  `json:"productId"`
	ForecastDate    string  `json:"forecastDate"`
	ForecastType    string  `json:"forecastType"`
	PredictedDemand int     `json:"predictedDemand"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

// AlertCreatedData is the payload for AlertCreated events
type AlertCreatedData struct {
	AlertID   string `json:"alertId"`
	ProductID string `json:"productId"`
	AlertType string `json:"alertType"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
}

// NotificationRequestedData is the payload for NotificationRequested events
type NotificationRequestedData struct {
	AlertID   string `json:"alertId"`
	ProductID string `json:"productId"`
	Channel   string `json:"channel"`
	Severity  string `json:"severity"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}
