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

// ForecastService generates and serves demand forecasts
type ForecastService struct {
	products     domain.ProductRepository
	sales        domain.SalesRepository
	forecasts    domain.ForecastRepository
	alerts       *AlertService
	producer     *kafka.InstrumentedProducer
	eventFactory *events.EventFactory
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// NewForecastService creates a new ForecastService
func NewForecastService(
	products domain.ProductRepository,
	sales domain.SalesRepository,
	forecasts domain.ForecastRepository,
	alerts *AlertService,
	producer *kafka.InstrumentedProducer,
	eventFactory *events.EventFactory,
	m *metrics.Metrics,
	logger *logging.Logger,
) *ForecastService {
	return &ForecastService{
		products:     products,
		sales:        sales,
		forecasts:    forecasts,
		alerts:       alerts,
		producer:     producer,
		eventFactory: eventFactory,
		metrics:      m,
		logger:       logger,
	}
}

// GenerateForecast produces and stores a forecast for one product. When a
// forecast already exists for the same product, date and type, the stored one
// is returned unchanged. A stockout-risk alert is raised after the save when
// predicted demand exceeds current stock; alert failures do not fail the
// forecast.
func (s *ForecastService) GenerateForecast(ctx context.Context, cmd GenerateForecastCommand) (*ForecastDTO, error) {
	productID, err := primitive.ObjectIDFromHex(cmd.ProductID)
	if err != nil {
		return nil, errors.ErrValidation("invalid product id")
	}

	forecastType := domain.ForecastType(cmd.ForecastType)
	if cmd.ForecastType == "" {
		forecastType = domain.ForecastDaily
	}
	if !forecastType.IsValid() {
		return nil, errors.ErrValidation(fmt.Sprintf("invalid forecast type: %s", cmd.ForecastType))
	}

	forecastDate := time.Now().AddDate(0, 0, 1)
	if cmd.ForecastDate != "" {
		forecastDate, err = time.Parse("2006-01-02", cmd.ForecastDate)
		if err != nil {
			return nil, errors.ErrValidation("invalid forecast date, expected YYYY-MM-DD")
		}
	}

	forecast, err := s.generate(ctx, productID, forecastDate, forecastType)
	if err != nil {
		return nil, err
	}
	return ToForecastDTO(forecast), nil
}

// GenerateAllForecasts runs tomorrow's forecast for every product in the
// catalog. A failure on one product is logged and skipped; the batch carries
// on.
func (s *ForecastService) GenerateAllForecasts(ctx context.Context, cmd GenerateAllForecastsCommand) ([]*ForecastDTO, error) {
	forecastType := domain.ForecastType(cmd.ForecastType)
	if cmd.ForecastType == "" {
		forecastType = domain.ForecastDaily
	}
	if !forecastType.IsValid() {
		return nil, errors.ErrValidation(fmt.Sprintf("invalid forecast type: %s", cmd.ForecastType))
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list products for batch forecast")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	forecastDate := time.Now().AddDate(0, 0, 1)
	results := make([]*ForecastDTO, 0, len(products))

	for _, product := range products {
		forecast, err := s.generate(ctx, product.ID, forecastDate, forecastType)
		if err != nil {
			s.logger.WithError(err).Error("Failed to generate forecast",
				"productId", product.ID.Hex(),
				"productName", product.Name)
			continue
		}
		results = append(results, ToForecastDTO(forecast))
	}

	s.logger.Info("Batch forecast run complete",
		"forecastType", string(forecastType),
		"products", len(products),
		"forecasts", len(results))

	return results, nil
}

func (s *ForecastService) generate(ctx context.Context, productID primitive.ObjectID, forecastDate time.Time, forecastType domain.ForecastType) (*domain.DemandForecast, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get product", "productId", productID.Hex())
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.ErrNotFoundWithID("product", productID.Hex())
	}

	existing, err := s.forecasts.FindByKey(ctx, productID, forecastDate, forecastType)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up forecast", "productId", productID.Hex())
		return nil, fmt.Errorf("failed to look up forecast: %w", err)
	}
	if existing != nil {
		s.metrics.RecordPredictionServed("stored")
		return existing, nil
	}

	daysAhead := forecastType.Horizon()

	now := time.Now()
	records, err := s.sales.FindByProductAndDateRange(ctx, productID, now.AddDate(0, 0, -HistoryWindowDays), now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load sales history", "productId", productID.Hex())
		return nil, fmt.Errorf("failed to load sales history: %w", err)
	}

	predicted := PredictDemand(records, product, daysAhead)
	confidence := Confidence(records)

	forecast, err := domain.NewDemandForecast(productID, forecastDate, predicted, confidence, forecastType)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.forecasts.Save(ctx, forecast); err != nil {
		s.metrics.RecordForecastGenerated(string(forecastType), false)
		s.logger.WithError(err).Error("Failed to save forecast", "productId", productID.Hex())
		return nil, fmt.Errorf("failed to save forecast: %w", err)
	}

	s.metrics.RecordForecastGenerated(string(forecastType), true)
	s.metrics.RecordPredictionServed("computed")
	s.logger.Info("Forecast generated",
		"productId", productID.Hex(),
		"forecastDate", forecast.ForecastDate.Format("2006-01-02"),
		"forecastType", string(forecastType),
		"predictedDemand", predicted,
		"confidence", confidence,
		"observations", len(records))

	s.publishForecastGenerated(ctx, forecast)

	if predicted > product.CurrentStock {
		if _, err := s.alerts.CreateStockoutRiskAlert(ctx, product, predicted); err != nil {
			s.logger.WithError(err).Error("Failed to create stockout risk alert",
				"productId", productID.Hex())
		}
	}

	return forecast, nil
}

// PredictDemand computes an ad-hoc prediction without storing a forecast
func (s *ForecastService) PredictDemand(ctx context.Context, query PredictDemandQuery) (*PredictionDTO, error) {
	if query.DaysAhead <= 0 {
		return nil, errors.ErrValidation(domain.ErrInvalidDaysAhead.Error())
	}

	productID, err := primitive.ObjectIDFromHex(query.ProductID)
	if err != nil {
		return nil, errors.ErrValidation("invalid product id")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get product", "productId", query.ProductID)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.ErrNotFoundWithID("product", query.ProductID)
	}

	now := time.Now()
	records, err := s.sales.FindByProductAndDateRange(ctx, productID, now.AddDate(0, 0, -HistoryWindowDays), now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load sales history", "productId", query.ProductID)
		return nil, fmt.Errorf("failed to load sales history: %w", err)
	}

	predicted := PredictDemand(records, product, query.DaysAhead)
	s.metrics.RecordPredictionServed("adhoc")

	return &PredictionDTO{
		ProductID:       query.ProductID,
		DaysAhead:       query.DaysAhead,
		PredictedDemand: predicted,
	}, nil
}

// ListForecasts returns every stored forecast
func (s *ForecastService) ListForecasts(ctx context.Context) ([]*ForecastDTO, error) {
	forecasts, err := s.forecasts.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list forecasts")
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}
	return ToForecastDTOs(forecasts), nil
}

// GetStockoutRisks returns upcoming forecasts whose predicted demand exceeds
// the product's current stock. A product lookup failure skips that forecast
// rather than failing the report.
func (s *ForecastService) GetStockoutRisks(ctx context.Context) ([]*StockoutRiskDTO, error) {
	forecasts, err := s.forecasts.FindUpcoming(ctx, time.Now())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list upcoming forecasts")
		return nil, fmt.Errorf("failed to list upcoming forecasts: %w", err)
	}

	risks := make([]*StockoutRiskDTO, 0)
	for _, forecast := range forecasts {
		product, err := s.products.FindByID(ctx, forecast.ProductID)
		if err != nil {
			s.logger.WithError(err).Error("Failed to get product for stockout risk",
				"productId", forecast.ProductID.Hex())
			continue
		}
		if product == nil || forecast.PredictedDemand <= product.CurrentStock {
			continue
		}

		risks = append(risks, &StockoutRiskDTO{
			ProductID:       product.ID.Hex(),
			ProductName:     product.Name,
			CurrentStock:    product.CurrentStock,
			PredictedDemand: forecast.PredictedDemand,
			Shortfall:       forecast.PredictedDemand - product.CurrentStock,
			ForecastDate:    forecast.ForecastDate.Format("2006-01-02"),
			Confidence:      forecast.ConfidenceScore,
		})
	}

	return risks, nil
}

func (s *ForecastService) publishForecastGenerated(ctx context.Context, forecast *domain.DemandForecast) {
	if s.producer == nil {
		return
	}

	event := s.eventFactory.CreateForecastGeneratedEvent(
		ctx,
		forecast.ID.Hex(),
		forecast.ProductID.Hex(),
		forecast.ForecastDate.Format("2006-01-02"),
		string(forecast.ForecastType),
		forecast.PredictedDemand,
		forecast.ConfidenceScore,
	)
	if err := s.producer.PublishEvent(ctx, kafka.Topics.ForecastEvents, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish forecast event",
			"forecastId", forecast.ID.Hex())
	}
}
