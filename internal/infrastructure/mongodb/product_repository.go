package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inventory-platform/forecast-service/internal/domain"
	storage "github.com/inventory-platform/forecast-service/pkg/mongodb"
)

// ProductRepository reads the product catalog from MongoDB
type ProductRepository struct {
	collection *storage.InstrumentedCollection
}

// NewProductRepository creates a ProductRepository over the products collection
func NewProductRepository(client *storage.InstrumentedClient) *ProductRepository {
	repo := &ProductRepository{
		collection: client.Collection("products"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ProductRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "currentStock", Value: 1}}},
		{Keys: bson.D{{Key: "expiryDate", Value: 1}}, Options: options.Index().SetSparse(true)},
	}
	r.collection.CreateIndexes(ctx, indexes)
}

// FindByID returns the product with the given id, or nil when absent
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindAll returns the whole catalog ordered by name
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}
