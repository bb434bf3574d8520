package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/inventory-platform/forecast-service/internal/application"
	"github.com/inventory-platform/forecast-service/pkg/errors"
	"github.com/inventory-platform/forecast-service/pkg/logging"
	"github.com/inventory-platform/forecast-service/pkg/middleware"
)

type mockForecastService struct {
	generateForecastFn     func(ctx context.Context, cmd application.GenerateForecastCommand) (*application.ForecastDTO, error)
	generateAllForecastsFn func(ctx context.Context, cmd application.GenerateAllForecastsCommand) ([]*application.ForecastDTO, error)
	listForecastsFn        func(ctx context.Context) ([]*application.ForecastDTO, error)
	getStockoutRisksFn     func(ctx context.Context) ([]*application.StockoutRiskDTO, error)
	predictDemandFn        func(ctx context.Context, query application.PredictDemandQuery) (*application.PredictionDTO, error)
}

func (m *mockForecastService) GenerateForecast(ctx context.Context, cmd application.GenerateForecastCommand) (*application.ForecastDTO, error) {
	if m.generateForecastFn == nil {
		panic("GenerateForecast not implemented")
	}
	return m.generateForecastFn(ctx, cmd)
}

func (m *mockForecastService) GenerateAllForecasts(ctx context.Context, cmd application.GenerateAllForecastsCommand) ([]*application.ForecastDTO, error) {
	if m.generateAllForecastsFn == nil {
		panic("GenerateAllForecasts not implemented")
	}
	return m.generateAllForecastsFn(ctx, cmd)
}

func (m *mockForecastService) ListForecasts(ctx context.Context) ([]*application.ForecastDTO, error) {
	if m.listForecastsFn == nil {
		panic("ListForecasts not implemented")
	}
	return m.listForecastsFn(ctx)
}

func (m *mockForecastService) GetStockoutRisks(ctx context.Context) ([]*application.StockoutRiskDTO, error) {
	if m.getStockoutRisksFn == nil {
		panic("GetStockoutRisks not implemented")
	}
	return m.getStockoutRisksFn(ctx)
}

func (m *mockForecastService) PredictDemand(ctx context.Context, query application.PredictDemandQuery) (*application.PredictionDTO, error) {
	if m.predictDemandFn == nil {
		panic("PredictDemand not implemented")
	}
	return m.predictDemandFn(ctx, query)
}

func newForecastTestRouter(service ForecastService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.InitValidator()
	logger := logging.New(logging.DefaultConfig("test"))

	router := gin.New()
	apiV1 := router.Group("/api/v1")
	NewForecastHandlers(service, logger).RegisterRoutes(apiV1)
	return router
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestForecastHandlers_GenerateForecast(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockForecastService{
			generateForecastFn: func(ctx context.Context, cmd application.GenerateForecastCommand) (*application.ForecastDTO, error) {
				if cmd.ProductID != "5f1a2b3c4d5e6f7a8b9c0d1e" {
					t.Fatalf("ProductID = %s", cmd.ProductID)
				}
				return &application.ForecastDTO{ProductID: cmd.ProductID, PredictedDemand: 12}, nil
			},
		}
		router := newForecastTestRouter(service)
		body := `{"productId":"5f1a2b3c4d5e6f7a8b9c0d1e","forecastType":"DAILY"}`
		rec := performRequest(router, http.MethodPost, "/api/v1/forecasts/generate", body)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"predictedDemand":12`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("missing product id", func(t *testing.T) {
		service := &mockForecastService{}
		router := newForecastTestRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/forecasts/generate", `{"forecastType":"DAILY"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		service := &mockForecastService{
			generateForecastFn: func(ctx context.Context, cmd application.GenerateForecastCommand) (*application.ForecastDTO, error) {
				return nil, errors.ErrNotFound("product")
			},
		}
		router := newForecastTestRouter(service)
		body := `{"productId":"5f1a2b3c4d5e6f7a8b9c0d1e"}`
		rec := performRequest(router, http.MethodPost, "/api/v1/forecasts/generate", body)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestForecastHandlers_GenerateAllForecasts(t *testing.T) {
	service := &mockForecastService{
		generateAllForecastsFn: func(ctx context.Context, cmd application.GenerateAllForecastsCommand) ([]*application.ForecastDTO, error) {
			return []*application.ForecastDTO{{PredictedDemand: 3}, {PredictedDemand: 8}}, nil
		},
	}
	router := newForecastTestRouter(service)
	rec := performRequest(router, http.MethodPost, "/api/v1/forecasts/generate-all", `{"forecastType":"DAILY"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"count":2`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestForecastHandlers_PredictDemand(t *testing.T) {
	t.Run("defaults to one day ahead", func(t *testing.T) {
		service := &mockForecastService{
			predictDemandFn: func(ctx context.Context, query application.PredictDemandQuery) (*application.PredictionDTO, error) {
				if query.DaysAhead != 1 {
					t.Fatalf("DaysAhead = %d", query.DaysAhead)
				}
				return &application.PredictionDTO{ProductID: query.ProductID, DaysAhead: 1, PredictedDemand: 4}, nil
			},
		}
		router := newForecastTestRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/forecasts/predict/5f1a2b3c4d5e6f7a8b9c0d1e", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("passes daysAhead through", func(t *testing.T) {
		service := &mockForecastService{
			predictDemandFn: func(ctx context.Context, query application.PredictDemandQuery) (*application.PredictionDTO, error) {
				if query.DaysAhead != 7 {
					t.Fatalf("DaysAhead = %d", query.DaysAhead)
				}
				return &application.PredictionDTO{DaysAhead: 7}, nil
			},
		}
		router := newForecastTestRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/forecasts/predict/5f1a2b3c4d5e6f7a8b9c0d1e?daysAhead=7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("rejects a non-numeric horizon", func(t *testing.T) {
		service := &mockForecastService{}
		router := newForecastTestRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/forecasts/predict/5f1a2b3c4d5e6f7a8b9c0d1e?daysAhead=soon", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestForecastHandlers_GetStockoutRisks(t *testing.T) {
	service := &mockForecastService{
		getStockoutRisksFn: func(ctx context.Context) ([]*application.StockoutRiskDTO, error) {
			return []*application.StockoutRiskDTO{
				{ProductName: "Widget", Shortfall: 15},
			}, nil
		},
	}
	router := newForecastTestRouter(service)
	rec := performRequest(router, http.MethodGet, "/api/v1/forecasts/stockout-risks", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"shortfall":15`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
