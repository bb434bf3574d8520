package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/inventory-platform/forecast-service/internal/application"
	"github.com/inventory-platform/forecast-service/pkg/errors"
	"github.com/inventory-platform/forecast-service/pkg/logging"
)

type mockAlertService struct {
	getAllFn        func(ctx context.Context) ([]*application.AlertDTO, error)
	getUnreadFn     func(ctx context.Context) ([]*application.AlertDTO, error)
	byTypeFn        func(ctx context.Context, alertType string) ([]*application.AlertDTO, error)
	bySeverityFn    func(ctx context.Context, severity string) ([]*application.AlertDTO, error)
	countUnreadFn   func(ctx context.Context) (int64, error)
	markAsReadFn    func(ctx context.Context, cmd application.MarkAlertReadCommand) (*application.AlertDTO, error)
	checkAndCreateF func(ctx context.Context) ([]*application.AlertDTO, error)
}

func (m *mockAlertService) GetAllAlerts(ctx context.Context) ([]*application.AlertDTO, error) {
	if m.getAllFn == nil {
		panic("GetAllAlerts not implemented")
	}
	return m.getAllFn(ctx)
}

func (m *mockAlertService) GetUnreadAlerts(ctx context.Context) ([]*application.AlertDTO, error) {
	if m.getUnreadFn == nil {
		panic("GetUnreadAlerts not implemented")
	}
	return m.getUnreadFn(ctx)
}

func (m *mockAlertService) GetUnreadAlertsByType(ctx context.Context, alertType string) ([]*application.AlertDTO, error) {
	if m.byTypeFn == nil {
		panic("GetUnreadAlertsByType not implemented")
	}
	return m.byTypeFn(ctx, alertType)
}

func (m *mockAlertService) GetUnreadAlertsBySeverity(ctx context.Context, severity string) ([]*application.AlertDTO, error) {
	if m.bySeverityFn == nil {
		panic("GetUnreadAlertsBySeverity not implemented")
	}
	return m.bySeverityFn(ctx, severity)
}

func (m *mockAlertService) CountUnreadAlerts(ctx context.Context) (int64, error) {
	if m.countUnreadFn == nil {
		panic("CountUnreadAlerts not implemented")
	}
	return m.countUnreadFn(ctx)
}

func (m *mockAlertService) MarkAlertAsRead(ctx context.Context, cmd application.MarkAlertReadCommand) (*application.AlertDTO, error) {
	if m.markAsReadFn == nil {
		panic("MarkAlertAsRead not implemented")
	}
	return m.markAsReadFn(ctx, cmd)
}

func (m *mockAlertService) CheckAndCreateAlerts(ctx context.Context) ([]*application.AlertDTO, error) {
	if m.checkAndCreateF == nil {
		panic("CheckAndCreateAlerts not implemented")
	}
	return m.checkAndCreateF(ctx)
}

func newAlertTestRouter(service AlertService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logging.New(logging.DefaultConfig("test"))

	router := gin.New()
	apiV1 := router.Group("/api/v1")
	NewAlertHandlers(service, logger).RegisterRoutes(apiV1)
	return router
}

func TestAlertHandlers_CountUnreadAlerts(t *testing.T) {
	service := &mockAlertService{
		countUnreadFn: func(ctx context.Context) (int64, error) {
			return 7, nil
		},
	}
	router := newAlertTestRouter(service)
	rec := performRequest(router, http.MethodGet, "/api/v1/alerts/count/unread", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"unreadCount":7`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAlertHandlers_MarkAlertAsRead(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockAlertService{
			markAsReadFn: func(ctx context.Context, cmd application.MarkAlertReadCommand) (*application.AlertDTO, error) {
				if cmd.AlertID != "5f1a2b3c4d5e6f7a8b9c0d1e" {
					t.Fatalf("AlertID = %s", cmd.AlertID)
				}
				return &application.AlertDTO{ID: cmd.AlertID, IsRead: true}, nil
			},
		}
		router := newAlertTestRouter(service)
		rec := performRequest(router, http.MethodPut, "/api/v1/alerts/5f1a2b3c4d5e6f7a8b9c0d1e/read", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"isRead":true`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("not found", func(t *testing.T) {
		service := &mockAlertService{
			markAsReadFn: func(ctx context.Context, cmd application.MarkAlertReadCommand) (*application.AlertDTO, error) {
				return nil, errors.ErrNotFound("alert")
			},
		}
		router := newAlertTestRouter(service)
		rec := performRequest(router, http.MethodPut, "/api/v1/alerts/5f1a2b3c4d5e6f7a8b9c0d1e/read", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestAlertHandlers_ListUnreadAlertsByType(t *testing.T) {
	t.Run("passes the type through", func(t *testing.T) {
		service := &mockAlertService{
			byTypeFn: func(ctx context.Context, alertType string) ([]*application.AlertDTO, error) {
				if alertType != "LOW_STOCK" {
					t.Fatalf("alertType = %s", alertType)
				}
				return []*application.AlertDTO{{AlertType: alertType}}, nil
			},
		}
		router := newAlertTestRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/alerts/type/LOW_STOCK", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		service := &mockAlertService{
			byTypeFn: func(ctx context.Context, alertType string) ([]*application.AlertDTO, error) {
				return nil, errors.ErrValidation("invalid alert type: BOGUS")
			},
		}
		router := newAlertTestRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/alerts/type/BOGUS", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestAlertHandlers_CheckAndCreateAlerts(t *testing.T) {
	service := &mockAlertService{
		checkAndCreateF: func(ctx context.Context) ([]*application.AlertDTO, error) {
			return []*application.AlertDTO{{AlertType: "LOW_STOCK"}, {AlertType: "EXPIRY_WARNING"}}, nil
		},
	}
	router := newAlertTestRouter(service)
	rec := performRequest(router, http.MethodPost, "/api/v1/alerts/check-all", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"count":2`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
