package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inventory-platform/forecast-service/internal/application"
	"github.com/inventory-platform/forecast-service/pkg/errors"
	"github.com/inventory-platform/forecast-service/pkg/logging"
	"github.com/inventory-platform/forecast-service/pkg/middleware"
)

// ForecastService is the application surface the forecast handlers call
type ForecastService interface {
	GenerateForecast(ctx context.Context, cmd application.GenerateForecastCommand) (*application.ForecastDTO, error)
	GenerateAllForecasts(ctx context.Context, cmd application.GenerateAllForecastsCommand) ([]*application.ForecastDTO, error)
	ListForecasts(ctx context.Context) ([]*application.ForecastDTO, error)
	GetStockoutRisks(ctx context.Context) ([]*application.StockoutRiskDTO, error)
	PredictDemand(ctx context.Context, query application.PredictDemandQuery) (*application.PredictionDTO, error)
}

// ForecastHandlers contains handlers for forecast operations
type ForecastHandlers struct {
	service ForecastService
	logger  *logging.Logger
}

// NewForecastHandlers creates a new ForecastHandlers
func NewForecastHandlers(service ForecastService, logger *logging.Logger) *ForecastHandlers {
	return &ForecastHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers forecast routes on the router
func (h *ForecastHandlers) RegisterRoutes(router *gin.RouterGroup) {
	forecasts := router.Group("/forecasts")
	{
		forecasts.POST("/generate", h.GenerateForecast)
		forecasts.POST("/generate-all", h.GenerateAllForecasts)
		forecasts.GET("", h.ListForecasts)
		forecasts.GET("/stockout-risks", h.GetStockoutRisks)
		forecasts.GET("/predict/:productId", h.PredictDemand)
	}
}

// GenerateForecast handles forecast generation for one product
func (h *ForecastHandlers) GenerateForecast(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.GenerateForecastCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	forecast, err := h.service.GenerateForecast(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, forecast)
}

// GenerateAllForecasts handles the catalog-wide forecast run
func (h *ForecastHandlers) GenerateAllForecasts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.GenerateAllForecastsCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	forecasts, err := h.service.GenerateAllForecasts(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(forecasts),
		"forecasts": forecasts,
	})
}

// ListForecasts handles listing every stored forecast
func (h *ForecastHandlers) ListForecasts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	forecasts, err := h.service.ListForecasts(c.Request.Context())
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, forecasts)
}

// GetStockoutRisks handles the stockout-risk report
func (h *ForecastHandlers) GetStockoutRisks(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	risks, err := h.service.GetStockoutRisks(c.Request.Context())
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, risks)
}

// PredictDemand handles ad-hoc demand predictions
func (h *ForecastHandlers) PredictDemand(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	daysAhead := 1
	if raw := c.Query("daysAhead"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			responder.RespondBadRequest("daysAhead must be an integer")
			return
		}
		daysAhead = parsed
	}

	query := application.PredictDemandQuery{
		ProductID: c.Param("productId"),
		DaysAhead: daysAhead,
	}

	prediction, err := h.service.PredictDemand(c.Request.Context(), query)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}

func respondServiceError(responder *middleware.ErrorResponder, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		responder.RespondWithAppError(appErr)
		return
	}
	responder.RespondInternalError(err)
}
