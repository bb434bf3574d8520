package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventFactory creates CloudEvents for inventory domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new CloudEvent with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *CloudEvent {
	return &CloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}
}

// CreateForecastGeneratedEvent creates a ForecastGenerated event
func (f *EventFactory) CreateForecastGeneratedEvent(
	ctx context.Context,
	forecastID string,
	productID string,
	forecastDate string,
	forecastType string,
	predictedDemand int,
	confidenceScore float64,
) *CloudEvent {
	data := ForecastGeneratedData{
		ForecastID:      forecastID,
		ProductID:       productID,
		ForecastDate:    forecastDate,
		ForecastType:    forecastType,
		PredictedDemand: predictedDemand,
		ConfidenceScore: confidenceScore,
	}
	event := f.CreateEvent(ctx, ForecastGenerated, "forecast/"+forecastID, data)
	event.ProductID = productID
	return event
}

// CreateAlertCreatedEvent creates an AlertCreated event
func (f *EventFactory) CreateAlertCreatedEvent(
	ctx context.Context,
	alertID string,
	productID string,
	alertType string,
	severity string,
	message string,
) *CloudEvent {
	data := AlertCreatedData{
		AlertID:   alertID,
		ProductID: productID,
		AlertType: alertType,
		Severity:  severity,
		Message:   message,
	}
	event := f.CreateEvent(ctx, AlertCreated, "alert/"+alertID, data)
	event.ProductID = productID
	return event
}

// CreateNotificationRequestedEvent creates a NotificationRequested event
func (f *EventFactory) CreateNotificationRequestedEvent(
	ctx context.Context,
	alertID string,
	productID string,
	channel string,
	severity string,
	subject string,
	body string,
) *CloudEvent {
	data := NotificationRequestedData{
		AlertID:   alertID,
		ProductID: productID,
		Channel:   channel,
		Severity:  severity,
		Subject:   subject,
		Body:      body,
	}
	event := f.CreateEvent(ctx, NotificationRequested, "alert/"+alertID, data)
	event.ProductID = productID
	return event
}
