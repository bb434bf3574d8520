package application

import (
	"context"
	"fmt"
	"time"

	"github.com/inventory-platform/forecast-service/internal/domain"
	"github.com/inventory-platform/forecast-service/pkg/logging"
	"github.com/inventory-platform/forecast-service/pkg/metrics"
)

// RestockPlanningHorizonDays is the demand horizon restock math is based on
const RestockPlanningHorizonDays = 30

// RestockService computes purchase recommendations for products at or below
// their reorder point
type RestockService struct {
	products domain.ProductRepository
	sales    domain.SalesRepository
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// NewRestockService creates a new RestockService
func NewRestockService(
	products domain.ProductRepository,
	sales domain.SalesRepository,
	m *metrics.Metrics,
	logger *logging.Logger,
) *RestockService {
	return &RestockService{
		products: products,
		sales:    sales,
		metrics:  m,
		logger:   logger,
	}
}

// GetRecommendations computes a recommendation for every product at or below
// its reorder point, ordered most urgent first. A failure on one product is
// logged and skipped. Recommendations are computed fresh on every call and
// never persisted.
func (s *RestockService) GetRecommendations(ctx context.Context) ([]*domain.RestockRecommendation, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list products for restock recommendations")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	recommendations := make([]*domain.RestockRecommendation, 0)
	for _, product := range products {
		if !product.IsLowStock() {
			continue
		}

		now := time.Now()
		records, err := s.sales.FindByProductAndDateRange(ctx, product.ID, now.AddDate(0, 0, -HistoryWindowDays), now)
		if err != nil {
			s.logger.WithError(err).Error("Failed to load sales history for recommendation",
				"productId", product.ID.Hex())
			continue
		}

		predicted := PredictDemand(records, product, RestockPlanningHorizonDays)
		recommendations = append(recommendations, domain.NewRestockRecommendation(product, predicted))
	}

	domain.SortByUrgency(recommendations)
	s.metrics.RecordRecommendationsComputed()
	s.logger.Info("Restock recommendations computed",
		"products", len(products),
		"recommendations", len(recommendations))

	return recommendations, nil
}
