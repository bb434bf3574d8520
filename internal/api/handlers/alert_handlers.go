package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inventory-platform/forecast-service/internal/application"
	"github.com/inventory-platform/forecast-service/pkg/logging"
	"github.com/inventory-platform/forecast-service/pkg/middleware"
)

// AlertService is the application surface the alert handlers call
type AlertService interface {
	GetAllAlerts(ctx context.Context) ([]*application.AlertDTO, error)
	GetUnreadAlerts(ctx context.Context) ([]*application.AlertDTO, error)
	GetUnreadAlertsByType(ctx context.Context, alertType string) ([]*application.AlertDTO, error)
	GetUnreadAlertsBySeverity(ctx context.Context, severity string) ([]*application.AlertDTO, error)
	CountUnreadAlerts(ctx context.Context) (int64, error)
	MarkAlertAsRead(ctx context.Context, cmd application.MarkAlertReadCommand) (*application.AlertDTO, error)
	CheckAndCreateAlerts(ctx context.Context) ([]*application.AlertDTO, error)
}

// AlertHandlers contains handlers for alert operations
type AlertHandlers struct {
	service AlertService
	logger  *logging.Logger
}

// NewAlertHandlers creates a new AlertHandlers
func NewAlertHandlers(service AlertService, logger *logging.Logger) *AlertHandlers {
	return &AlertHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers alert routes on the router
func (h *AlertHandlers) RegisterRoutes(router *gin.RouterGroup) {
	alerts := router.Group("/alerts")
	{
		alerts.GET("", h.ListAlerts)
		alerts.GET("/unread", h.ListUnreadAlerts)
		alerts.GET("/type/:type", h.ListUnreadAlertsByType)
		alerts.GET("/severity/:severity", h.ListUnreadAlertsBySeverity)
		alerts.GET("/count/unread", h.CountUnreadAlerts)
		alerts.PUT("/:alertId/read", h.MarkAlertAsRead)
		alerts.POST("/check-all", h.CheckAndCreateAlerts)
	}
}

// ListAlerts handles listing every alert
func (h *AlertHandlers) ListAlerts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	alerts, err := h.service.GetAllAlerts(c.Request.Context())
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// ListUnreadAlerts handles listing unread alerts
func (h *AlertHandlers) ListUnreadAlerts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	alerts, err := h.service.GetUnreadAlerts(c.Request.Context())
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// ListUnreadAlertsByType handles listing unread alerts of one type
func (h *AlertHandlers) ListUnreadAlertsByType(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	alerts, err := h.service.GetUnreadAlertsByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// ListUnreadAlertsBySeverity handles listing unread alerts of one severity
func (h *AlertHandlers) ListUnreadAlertsBySeverity(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	alerts, err := h.service.GetUnreadAlertsBySeverity(c.Request.Context(), c.Param("severity"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// CountUnreadAlerts handles the unread alert count
func (h *AlertHandlers) CountUnreadAlerts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	count, err := h.service.CountUnreadAlerts(c.Request.Context())
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// MarkAlertAsRead handles marking one alert as read
func (h *AlertHandlers) MarkAlertAsRead(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	cmd := application.MarkAlertReadCommand{AlertID: c.Param("alertId")}

	alert, err := h.service.MarkAlertAsRead(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, alert)
}

// CheckAndCreateAlerts handles the catalog-wide alert sweep
func (h *AlertHandlers) CheckAndCreateAlerts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	alerts, err := h.service.CheckAndCreateAlerts(c.Request.Context())
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(alerts),
		"alerts": alerts,
	})
}
