package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inventory-platform/forecast-service/internal/domain"
	storage "github.com/inventory-platform/forecast-service/pkg/mongodb"
)

// ForecastRepository persists demand forecasts in MongoDB. A unique index on
// (productId, forecastDate, forecastType) backs the identity key, so two
// concurrent generations of the same forecast cannot both insert.
type ForecastRepository struct {
	collection *storage.InstrumentedCollection
}

// NewForecastRepository creates a ForecastRepository over the demand_forecasts collection
func NewForecastRepository(client *storage.InstrumentedClient) *ForecastRepository {
	repo := &ForecastRepository{
		collection: client.Collection("demand_forecasts"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ForecastRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "productId", Value: 1},
				{Key: "forecastDate", Value: 1},
				{Key: "forecastType", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "forecastDate", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	r.collection.CreateIndexes(ctx, indexes)
}

// FindByKey looks up a forecast by its (product, date, type) identity key.
// The date is truncated to the day before matching.
func (r *ForecastRepository) FindByKey(ctx context.Context, productID primitive.ObjectID, forecastDate time.Time, forecastType domain.ForecastType) (*domain.DemandForecast, error) {
	filter := bson.M{
		"productId":    productID,
		"forecastDate": truncateToDay(forecastDate),
		"forecastType": forecastType,
	}

	var forecast domain.DemandForecast
	err := r.collection.FindOne(ctx, filter).Decode(&forecast)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find forecast: %w", err)
	}
	return &forecast, nil
}

// Save inserts a new forecast, assigning its id
func (r *ForecastRepository) Save(ctx context.Context, forecast *domain.DemandForecast) error {
	if forecast.ID.IsZero() {
		forecast.ID = primitive.NewObjectID()
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": forecast.ID}
	update := bson.M{"$set": forecast}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save forecast: %w", err)
	}
	return nil
}

// FindUpcoming returns forecasts dated on or after the given day, soonest first
func (r *ForecastRepository) FindUpcoming(ctx context.Context, from time.Time) ([]*domain.DemandForecast, error) {
	filter := bson.M{"forecastDate": bson.M{"$gte": truncateToDay(from)}}
	opts := options.Find().SetSort(bson.D{{Key: "forecastDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming forecasts: %w", err)
	}
	defer cursor.Close(ctx)

	var forecasts []*domain.DemandForecast
	if err := cursor.All(ctx, &forecasts); err != nil {
		return nil, fmt.Errorf("failed to decode forecasts: %w", err)
	}
	return forecasts, nil
}

// FindAll returns every stored forecast, newest creation first
func (r *ForecastRepository) FindAll(ctx context.Context) ([]*domain.DemandForecast, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}
	defer cursor.Close(ctx)

	var forecasts []*domain.DemandForecast
	if err := cursor.All(ctx, &forecasts); err != nil {
		return nil, fmt.Errorf("failed to decode forecasts: %w", err)
	}
	return forecasts, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
