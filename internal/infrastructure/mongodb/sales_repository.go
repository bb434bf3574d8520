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

// SalesRepository reads historical sales observations from MongoDB
type SalesRepository struct {
	collection *storage.InstrumentedCollection
}

// NewSalesRepository creates a SalesRepository over the sales_records collection
func NewSalesRepository(client *storage.InstrumentedClient) *SalesRepository {
	repo := &SalesRepository{
		collection: client.Collection("sales_records"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *SalesRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "saleDate", Value: 1}}},
		{Keys: bson.D{{Key: "saleDate", Value: -1}}},
	}
	r.collection.CreateIndexes(ctx, indexes)
}

// FindByProductAndDateRange returns the product's observations within the
// inclusive date range, oldest first
func (r *SalesRepository) FindByProductAndDateRange(ctx context.Context, productID primitive.ObjectID, from, to time.Time) ([]*domain.SalesRecord, error) {
	filter := bson.M{
		"productId": productID,
		"saleDate":  bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "saleDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.SalesRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode sales records: %w", err)
	}
	return records, nil
}
