package application

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inventory-platform/forecast-service/internal/domain"
	"github.com/inventory-platform/forecast-service/pkg/errors"
	"github.com/inventory-platform/forecast-service/pkg/events"
	"github.com/inventory-platform/forecast-service/pkg/kafka"
	"github.com/inventory-platform/forecast-service/pkg/logging"
	"github.com/inventory-platform/forecast-service/pkg/metrics"
)

// ExpirySweepHorizonDays bounds how far ahead the alert sweep looks for
// expiring products.
const ExpirySweepHorizonDays = 30

// NotificationChannel is the outbound channel critical alerts are pushed to
const NotificationChannel = "email"

// AlertService creates and serves inventory alerts
type AlertService struct {
	products     domain.ProductRepository
	alerts       domain.AlertRepository
	sender       domain.NotificationSender
	producer     *kafka.InstrumentedProducer
	eventFactory *events.EventFactory
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// NewAlertService creates a new AlertService
func NewAlertService(
	products domain.ProductRepository,
	alerts domain.AlertRepository,
	sender domain.NotificationSender,
	producer *kafka.InstrumentedProducer,
	eventFactory *events.EventFactory,
	m *metrics.Metrics,
	logger *logging.Logger,
) *AlertService {
	return &AlertService{
		products:     products,
		alerts:       alerts,
		sender:       sender,
		producer:     producer,
		eventFactory: eventFactory,
		metrics:      m,
		logger:       logger,
	}
}

// CreateLowStockAlert raises a low-stock alert for the product
func (s *AlertService) CreateLowStockAlert(ctx context.Context, product *domain.Product) (*domain.Alert, error) {
	return s.saveAlert(ctx, domain.NewLowStockAlert(product))
}

// CreateExpiryAlert raises an expiry warning for the product.
// Fails when the product carries no expiry date.
func (s *AlertService) CreateExpiryAlert(ctx context.Context, product *domain.Product) (*domain.Alert, error) {
	alert, err := domain.NewExpiryAlert(product, time.Now())
	if err != nil {
		return nil, errors.ErrInvalidState(err.Error())
	}
	return s.saveAlert(ctx, alert)
}

// CreateStockoutRiskAlert raises a stockout-risk alert comparing predicted
// demand against current stock
func (s *AlertService) CreateStockoutRiskAlert(ctx context.Context, product *domain.Product, predictedDemand int) (*domain.Alert, error) {
	return s.saveAlert(ctx, domain.NewStockoutRiskAlert(product, predictedDemand))
}

// CheckAndCreateAlerts sweeps the whole catalog for low-stock and
// approaching-expiry conditions. Conditions are re-evaluated from scratch on
// every sweep; nothing is deduplicated against earlier alerts. A failure on
// one product is logged and skipped.
func (s *AlertService) CheckAndCreateAlerts(ctx context.Context) ([]*AlertDTO, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list products for alert sweep")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	created := make([]*AlertDTO, 0)
	for _, product := range products {
		if product.IsLowStock() {
			alert, err := s.CreateLowStockAlert(ctx, product)
			if err != nil {
				s.logger.WithError(err).Error("Failed to create low stock alert",
					"productId", product.ID.Hex())
			} else {
				created = append(created, ToAlertDTO(alert))
			}
		}

		if !product.HasExpiryDate() {
			continue
		}
		days, err := product.DaysUntilExpiry(time.Now())
		if err != nil || days <= 0 || days > ExpirySweepHorizonDays {
			continue
		}
		alert, err := s.CreateExpiryAlert(ctx, product)
		if err != nil {
			s.logger.WithError(err).Error("Failed to create expiry alert",
				"productId", product.ID.Hex())
			continue
		}
		created = append(created, ToAlertDTO(alert))
	}

	s.logger.Info("Alert sweep complete", "products", len(products), "alertsCreated", len(created))
	return created, nil
}

// GetAllAlerts returns every alert
func (s *AlertService) GetAllAlerts(ctx context.Context) ([]*AlertDTO, error) {
	alerts, err := s.alerts.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list alerts")
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return ToAlertDTOs(alerts), nil
}

// GetUnreadAlerts returns alerts not yet marked read
func (s *AlertService) GetUnreadAlerts(ctx context.Context) ([]*AlertDTO, error) {
	alerts, err := s.alerts.FindUnread(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list unread alerts")
		return nil, fmt.Errorf("failed to list unread alerts: %w", err)
	}
	return ToAlertDTOs(alerts), nil
}

// GetUnreadAlertsByType returns unread alerts of one type
func (s *AlertService) GetUnreadAlertsByType(ctx context.Context, alertType string) ([]*AlertDTO, error) {
	t := domain.AlertType(alertType)
	if !t.IsValid() {
		return nil, errors.ErrValidation(fmt.Sprintf("invalid alert type: %s", alertType))
	}

	alerts, err := s.alerts.FindUnreadByType(ctx, t)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list alerts by type", "alertType", alertType)
		return nil, fmt.Errorf("failed to list alerts by type: %w", err)
	}
	return ToAlertDTOs(alerts), nil
}

// GetUnreadAlertsBySeverity returns unread alerts of one severity
func (s *AlertService) GetUnreadAlertsBySeverity(ctx context.Context, severity string) ([]*AlertDTO, error) {
	sev := domain.Severity(severity)
	if !sev.IsValid() {
		return nil, errors.ErrValidation(fmt.Sprintf("invalid severity: %s", severity))
	}

	alerts, err := s.alerts.FindUnreadBySeverity(ctx, sev)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list alerts by severity", "severity", severity)
		return nil, fmt.Errorf("failed to list alerts by severity: %w", err)
	}
	return ToAlertDTOs(alerts), nil
}

// CountUnreadAlerts returns how many alerts are unread
func (s *AlertService) CountUnreadAlerts(ctx context.Context) (int64, error) {
	count, err := s.alerts.CountUnread(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count unread alerts")
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}

// MarkAlertAsRead marks one alert as read. Marking an already-read alert is
// a no-op that keeps its original read timestamp.
func (s *AlertService) MarkAlertAsRead(ctx context.Context, cmd MarkAlertReadCommand) (*AlertDTO, error) {
	alertID, err := primitive.ObjectIDFromHex(cmd.AlertID)
	if err != nil {
		return nil, errors.ErrValidation("invalid alert id")
	}

	alert, err := s.alerts.FindByID(ctx, alertID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get alert", "alertId", cmd.AlertID)
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	if alert == nil {
		return nil, errors.ErrNotFoundWithID("alert", cmd.AlertID)
	}

	alert.MarkRead()
	if err := s.alerts.Save(ctx, alert); err != nil {
		s.logger.WithError(err).Error("Failed to save alert", "alertId", cmd.AlertID)
		return nil, fmt.Errorf("failed to save alert: %w", err)
	}

	return ToAlertDTO(alert), nil
}

func (s *AlertService) saveAlert(ctx context.Context, alert *domain.Alert) (*domain.Alert, error) {
	if err := s.alerts.Save(ctx, alert); err != nil {
		s.logger.WithError(err).Error("Failed to save alert",
			"alertType", string(alert.AlertType),
			"productId", alert.ProductID.Hex())
		return nil, fmt.Errorf("failed to save alert: %w", err)
	}

	s.metrics.RecordAlertCreated(string(alert.AlertType), string(alert.Severity))
	s.logger.Info("Alert created",
		"alertId", alert.ID.Hex(),
		"alertType", string(alert.AlertType),
		"severity", string(alert.Severity),
		"productId", alert.ProductID.Hex())

	s.publishAlertCreated(ctx, alert)

	if alert.Severity == domain.SeverityCritical {
		s.notifyCritical(ctx, alert)
	}

	return alert, nil
}

// notifyCritical pushes a critical alert out through the notification
// channel. Delivery failures are logged; the alert itself is already saved.
func (s *AlertService) notifyCritical(ctx context.Context, alert *domain.Alert) {
	if s.sender == nil {
		return
	}

	payload := domain.NotificationPayload{
		AlertID:   alert.ID.Hex(),
		ProductID: alert.ProductID.Hex(),
		Channel:   NotificationChannel,
		Severity:  alert.Severity,
		Subject:   fmt.Sprintf("Alert - %s", alert.AlertType),
		Body:      alert.Message,
	}

	accepted, err := s.sender.Send(ctx, payload)
	if err != nil {
		s.metrics.RecordNotificationSent(NotificationChannel, false)
		s.logger.WithError(err).Error("Failed to send critical alert notification",
			"alertId", alert.ID.Hex())
		return
	}
	if !accepted {
		s.metrics.RecordNotificationSent(NotificationChannel, false)
		s.logger.Warn("Critical alert notification declined", "alertId", alert.ID.Hex())
		return
	}

	s.metrics.RecordNotificationSent(NotificationChannel, true)
}

func (s *AlertService) publishAlertCreated(ctx context.Context, alert *domain.Alert) {
	if s.producer == nil {
		return
	}

	event := s.eventFactory.CreateAlertCreatedEvent(
		ctx,
		alert.ID.Hex(),
		alert.ProductID.Hex(),
		string(alert.AlertType),
		string(alert.Severity),
		alert.Message,
	)
	if err := s.producer.PublishEvent(ctx, kafka.Topics.AlertEvents, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish alert event", "alertId", alert.ID.Hex())
	}
}
