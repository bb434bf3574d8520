package notify

import (
	"context"

	"github.com/sony/gobreaker"

	"github.com/inventory-platform/forecast-service/internal/domain"
	"github.com/inventory-platform/forecast-service/pkg/events"
	"github.com/inventory-platform/forecast-service/pkg/kafka"
	"github.com/inventory-platform/forecast-service/pkg/logging"
	"github.com/inventory-platform/forecast-service/pkg/metrics"
	"github.com/inventory-platform/forecast-service/pkg/resilience"
)

// KafkaNotificationSender hands critical-alert notifications to the outbound
// notifications topic, where a downstream delivery service picks them up.
// Publishes run behind a circuit breaker so a broker outage cannot stall
// alert creation.
type KafkaNotificationSender struct {
	producer     *kafka.InstrumentedProducer
	eventFactory *events.EventFactory
	breaker      *resilience.CircuitBreaker
	logger       *logging.Logger
}

// NewKafkaNotificationSender creates a KafkaNotificationSender
func NewKafkaNotificationSender(
	producer *kafka.InstrumentedProducer,
	eventFactory *events.EventFactory,
	m *metrics.Metrics,
	logger *logging.Logger,
) *KafkaNotificationSender {
	config := resilience.DefaultCircuitBreakerConfig("notification-publisher")
	if m != nil {
		config.OnStateChange = func(name string, from, to gobreaker.State) {
			m.SetCircuitBreakerState(name, int(to))
			if to == gobreaker.StateOpen {
				m.RecordCircuitBreakerTrip(name)
			}
		}
	}
	breaker := resilience.NewCircuitBreaker(config, logger.Logger)
	return &KafkaNotificationSender{
		producer:     producer,
		eventFactory: eventFactory,
		breaker:      breaker,
		logger:       logger,
	}
}

// Send publishes a notification request. Returns false without an error when
// the circuit is open and the request was shed.
func (s *KafkaNotificationSender) Send(ctx context.Context, payload domain.NotificationPayload) (bool, error) {
	event := s.eventFactory.CreateNotificationRequestedEvent(
		ctx,
		payload.AlertID,
		payload.ProductID,
		payload.Channel,
		string(payload.Severity),
		payload.Subject,
		payload.Body,
	)

	_, err := s.breaker.Execute(ctx, func() (interface{}, error) {
		return nil, s.producer.PublishEvent(ctx, kafka.Topics.NotificationsOutbound, event)
	})
	if err != nil {
		if resilience.IsCircuitOpen(err) {
			s.logger.Warn("Notification shed, circuit open", "alertId", payload.AlertID)
			return false, nil
		}
		return false, err
	}

	return true, nil
}
