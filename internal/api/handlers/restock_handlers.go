package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inventory-platform/forecast-service/internal/domain"
	"github.com/inventory-platform/forecast-service/pkg/logging"
	"github.com/inventory-platform/forecast-service/pkg/middleware"
)

// RestockService is the application surface the restock handlers call
type RestockService interface {
	GetRecommendations(ctx context.Context) ([]*domain.RestockRecommendation, error)
}

// RestockHandlers contains handlers for restock recommendation operations
type RestockHandlers struct {
	service RestockService
	logger  *logging.Logger
}

// NewRestockHandlers creates a new RestockHandlers
func NewRestockHandlers(service RestockService, logger *logging.Logger) *RestockHandlers {
	return &RestockHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers restock routes on the router
func (h *RestockHandlers) RegisterRoutes(router *gin.RouterGroup) {
	restock := router.Group("/restock")
	{
		restock.GET("/recommendations", h.GetRecommendations)
	}
}

// GetRecommendations handles the restock recommendation report
func (h *RestockHandlers) GetRecommendations(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	recommendations, err := h.service.GetRecommendations(c.Request.Context())
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, recommendations)
}
