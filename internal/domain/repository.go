package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository reads the product catalog. All finders return nil (not an
// error) when nothing matches.
type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
}

// SalesRepository reads historical sales observations
type SalesRepository interface {
	// FindByProductAndDateRange returns observations with from <= saleDate <= to,
	// ordered by sale date ascending.
	FindByProductAndDateRange(ctx context.Context, productID primitive.ObjectID, from, to time.Time) ([]*SalesRecord, error)
}

// ForecastRepository persists demand forecasts
type ForecastRepository interface {
	// FindByKey looks up a forecast by its (product, date, type) identity key.
	FindByKey(ctx context.Context, productID primitive.ObjectID, forecastDate time.Time, forecastType ForecastType) (*DemandForecast, error)
	Save(ctx context.Context, forecast *DemandForecast) error
	// FindUpcoming returns forecasts dated from the given day onward, newest first.
	FindUpcoming(ctx context.Context, from time.Time) ([]*DemandForecast, error)
	FindAll(ctx context.Context) ([]*DemandForecast, error)
}

// AlertRepository persists inventory alerts
type AlertRepository interface {
	Save(ctx context.Context, alert *Alert) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Alert, error)
	FindAll(ctx context.Context) ([]*Alert, error)
	FindUnread(ctx context.Context) ([]*Alert, error)
	FindUnreadByType(ctx context.Context, alertType AlertType) ([]*Alert, error)
	FindUnreadBySeverity(ctx context.Context, severity Severity) ([]*Alert, error)
	CountUnread(ctx context.Context) (int64, error)
}

// NotificationPayload is the outbound message handed to the notification
// sender when a critical alert fires.
type NotificationPayload struct {
	AlertID   string
	ProductID string
	Channel   string
	Severity  Severity
	Subject   string
	Body      string
}

// NotificationSender delivers alert notifications to an external channel.
// The boolean reports acceptance; a false result without an error means the
// channel declined the message.
type NotificationSender interface {
	Send(ctx context.Context, payload NotificationPayload) (bool, error)
}
