package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inventory-platform/forecast-service/internal/domain"
	appErrors "github.com/inventory-platform/forecast-service/pkg/errors"
)

type mockSender struct {
	sendFn func(context.Context, domain.NotificationPayload) (bool, error)

	sent []domain.NotificationPayload
}

func (m *mockSender) Send(ctx context.Context, payload domain.NotificationPayload) (bool, error) {
	m.sent = append(m.sent, payload)
	if m.sendFn != nil {
		return m.sendFn(ctx, payload)
	}
	return true, nil
}

func newAlertServiceForTest(products *mockProductRepo, alerts *mockAlertRepo, sender domain.NotificationSender) *AlertService {
	return NewAlertService(products, alerts, sender, nil, nil, newTestMetrics(), newTestLogger())
}

func TestAlertService_CheckAndCreateAlerts(t *testing.T) {
	soon := time.Now().AddDate(0, 0, 5)
	far := time.Now().AddDate(0, 0, 60)

	t.Run("raises low stock and expiry alerts in one sweep", func(t *testing.T) {
		products := &mockProductRepo{
			findAllFn: func(ctx context.Context) ([]*domain.Product, error) {
				return []*domain.Product{
					{ID: primitive.NewObjectID(), Name: "Low", CurrentStock: 5, ReorderPoint: 20},
					{ID: primitive.NewObjectID(), Name: "Expiring", CurrentStock: 100, ReorderPoint: 20, ExpiryDate: &soon},
					{ID: primitive.NewObjectID(), Name: "Fine", CurrentStock: 100, ReorderPoint: 20},
				}, nil
			},
		}
		alerts := &mockAlertRepo{}
		svc := newAlertServiceForTest(products, alerts, nil)

		created, err := svc.CheckAndCreateAlerts(context.Background())
		require.NoError(t, err)

		require.Len(t, created, 2)
		assert.Equal(t, "LOW_STOCK", created[0].AlertType)
		assert.Equal(t, "EXPIRY_WARNING", created[1].AlertType)
	})

	t.Run("ignores expiry beyond the horizon", func(t *testing.T) {
		products := &mockProductRepo{
			findAllFn: func(ctx context.Context) ([]*domain.Product, error) {
				return []*domain.Product{
					{ID: primitive.NewObjectID(), Name: "Distant", CurrentStock: 100, ReorderPoint: 20, ExpiryDate: &far},
				}, nil
			},
		}
		svc := newAlertServiceForTest(products, &mockAlertRepo{}, nil)

		created, err := svc.CheckAndCreateAlerts(context.Background())
		require.NoError(t, err)
		assert.Empty(t, created)
	})

	t.Run("repeated sweeps create new alerts each time", func(t *testing.T) {
		products := &mockProductRepo{
			findAllFn: func(ctx context.Context) ([]*domain.Product, error) {
				return []*domain.Product{
					{ID: primitive.NewObjectID(), Name: "Low", CurrentStock: 5, ReorderPoint: 20},
				}, nil
			},
		}
		alerts := &mockAlertRepo{}
		svc := newAlertServiceForTest(products, alerts, nil)

		_, err := svc.CheckAndCreateAlerts(context.Background())
		require.NoError(t, err)
		_, err = svc.CheckAndCreateAlerts(context.Background())
		require.NoError(t, err)

		assert.Len(t, alerts.saved, 2)
	})

	t.Run("a failing product does not stop the sweep", func(t *testing.T) {
		products := &mockProductRepo{
			findAllFn: func(ctx context.Context) ([]*domain.Product, error) {
				return []*domain.Product{
					{ID: primitive.NewObjectID(), Name: "First Low", CurrentStock: 5, ReorderPoint: 20},
					{ID: primitive.NewObjectID(), Name: "Second Low", CurrentStock: 5, ReorderPoint: 20},
				}, nil
			},
		}
		failures := 0
		alerts := &mockAlertRepo{
			saveFn: func(ctx context.Context, alert *domain.Alert) error {
				if alert.ProductName == "First Low" {
					failures++
					return errors.New("write failed")
				}
				return nil
			},
		}
		svc := newAlertServiceForTest(products, alerts, nil)

		created, err := svc.CheckAndCreateAlerts(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, failures)
		require.Len(t, created, 1)
		assert.Equal(t, "Second Low", created[0].ProductName)
	})
}

func TestAlertService_CriticalNotification(t *testing.T) {
	t.Run("critical alerts go out through the sender", func(t *testing.T) {
		sender := &mockSender{}
		svc := newAlertServiceForTest(&mockProductRepo{}, &mockAlertRepo{}, sender)

		product := &domain.Product{ID: primitive.NewObjectID(), Name: "Empty", CurrentStock: 0, ReorderPoint: 20}
		alert, err := svc.CreateLowStockAlert(context.Background(), product)
		require.NoError(t, err)
		require.Equal(t, domain.SeverityCritical, alert.Severity)

		require.Len(t, sender.sent, 1)
		assert.Equal(t, alert.ID.Hex(), sender.sent[0].AlertID)
		assert.Equal(t, "Alert - LOW_STOCK", sender.sent[0].Subject)
	})

	t.Run("non-critical alerts stay quiet", func(t *testing.T) {
		sender := &mockSender{}
		svc := newAlertServiceForTest(&mockProductRepo{}, &mockAlertRepo{}, sender)

		product := &domain.Product{ID: primitive.NewObjectID(), Name: "Lowish", CurrentStock: 15, ReorderPoint: 20}
		_, err := svc.CreateLowStockAlert(context.Background(), product)
		require.NoError(t, err)

		assert.Empty(t, sender.sent)
	})

	t.Run("sender failure does not fail the alert", func(t *testing.T) {
		sender := &mockSender{
			sendFn: func(ctx context.Context, payload domain.NotificationPayload) (bool, error) {
				return false, errors.New("broker down")
			},
		}
		alerts := &mockAlertRepo{}
		svc := newAlertServiceForTest(&mockProductRepo{}, alerts, sender)

		product := &domain.Product{ID: primitive.NewObjectID(), Name: "Empty", CurrentStock: 0, ReorderPoint: 20}
		_, err := svc.CreateLowStockAlert(context.Background(), product)
		require.NoError(t, err)
		assert.Len(t, alerts.saved, 1)
	})
}

func TestAlertService_CreateExpiryAlert(t *testing.T) {
	svc := newAlertServiceForTest(&mockProductRepo{}, &mockAlertRepo{}, nil)

	product := &domain.Product{ID: primitive.NewObjectID(), Name: "Bolt"}
	_, err := svc.CreateExpiryAlert(context.Background(), product)
	require.Error(t, err)

	appErr, ok := appErrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.CodeInvalidState, appErr.Code)
}

func TestAlertService_MarkAlertAsRead(t *testing.T) {
	t.Run("marks and is idempotent", func(t *testing.T) {
		alertID := primitive.NewObjectID()
		stored := &domain.Alert{ID: alertID, AlertType: domain.AlertLowStock, Severity: domain.SeverityLow}
		alerts := &mockAlertRepo{
			findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*domain.Alert, error) {
				return stored, nil
			},
		}
		svc := newAlertServiceForTest(&mockProductRepo{}, alerts, nil)

		dto, err := svc.MarkAlertAsRead(context.Background(), MarkAlertReadCommand{AlertID: alertID.Hex()})
		require.NoError(t, err)
		require.True(t, dto.IsRead)
		require.NotNil(t, dto.ReadAt)
		firstReadAt := *dto.ReadAt

		dto, err = svc.MarkAlertAsRead(context.Background(), MarkAlertReadCommand{AlertID: alertID.Hex()})
		require.NoError(t, err)
		assert.True(t, dto.ReadAt.Equal(firstReadAt))
	})

	t.Run("unknown alert is not found", func(t *testing.T) {
		svc := newAlertServiceForTest(&mockProductRepo{}, &mockAlertRepo{}, nil)

		_, err := svc.MarkAlertAsRead(context.Background(), MarkAlertReadCommand{AlertID: primitive.NewObjectID().Hex()})
		require.Error(t, err)

		appErr, ok := appErrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.CodeNotFound, appErr.Code)
	})

	t.Run("malformed id is a validation error", func(t *testing.T) {
		svc := newAlertServiceForTest(&mockProductRepo{}, &mockAlertRepo{}, nil)

		_, err := svc.MarkAlertAsRead(context.Background(), MarkAlertReadCommand{AlertID: "not-an-id"})
		require.Error(t, err)

		appErr, ok := appErrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.CodeValidationError, appErr.Code)
	})
}

func TestAlertService_Queries(t *testing.T) {
	alerts := &mockAlertRepo{}
	svc := newAlertServiceForTest(&mockProductRepo{}, alerts, nil)

	read := domain.NewLowStockAlert(&domain.Product{ID: primitive.NewObjectID(), Name: "A", CurrentStock: 15, ReorderPoint: 20})
	read.MarkRead()
	require.NoError(t, alerts.Save(context.Background(), read))
	require.NoError(t, alerts.Save(context.Background(),
		domain.NewLowStockAlert(&domain.Product{ID: primitive.NewObjectID(), Name: "B", CurrentStock: 5, ReorderPoint: 30})))
	require.NoError(t, alerts.Save(context.Background(),
		domain.NewStockoutRiskAlert(&domain.Product{ID: primitive.NewObjectID(), Name: "C", CurrentStock: 10}, 25)))

	t.Run("unread", func(t *testing.T) {
		unread, err := svc.GetUnreadAlerts(context.Background())
		require.NoError(t, err)
		assert.Len(t, unread, 2)
	})

	t.Run("unread by type", func(t *testing.T) {
		byType, err := svc.GetUnreadAlertsByType(context.Background(), "STOCKOUT_RISK")
		require.NoError(t, err)
		require.Len(t, byType, 1)
		assert.Equal(t, "C", byType[0].ProductName)
	})

	t.Run("unread by severity", func(t *testing.T) {
		bySeverity, err := svc.GetUnreadAlertsBySeverity(context.Background(), "HIGH")
		require.NoError(t, err)
		require.Len(t, bySeverity, 2)
	})

	t.Run("count", func(t *testing.T) {
		count, err := svc.CountUnreadAlerts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("invalid type is rejected", func(t *testing.T) {
		_, err := svc.GetUnreadAlertsByType(context.Background(), "BOGUS")
		require.Error(t, err)
	})

	t.Run("invalid severity is rejected", func(t *testing.T) {
		_, err := svc.GetUnreadAlertsBySeverity(context.Background(), "EXTREME")
		require.Error(t, err)
	})
}
