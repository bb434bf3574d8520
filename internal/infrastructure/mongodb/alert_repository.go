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

// AlertRepository persists inventory alerts in MongoDB
type AlertRepository struct {
	collection *storage.InstrumentedCollection
}

// NewAlertRepository creates an AlertRepository over the alerts collection
func NewAlertRepository(client *storage.InstrumentedClient) *AlertRepository {
	repo := &AlertRepository{
		collection: client.Collection("alerts"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *AlertRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "isRead", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "alertType", Value: 1}, {Key: "isRead", Value: 1}}},
		{Keys: bson.D{{Key: "severity", Value: 1}, {Key: "isRead", Value: 1}}},
		{Keys: bson.D{{Key: "productId", Value: 1}}},
	}
	r.collection.CreateIndexes(ctx, indexes)
}

// Save upserts an alert, assigning its id on first save
func (r *AlertRepository) Save(ctx context.Context, alert *domain.Alert) error {
	if alert.ID.IsZero() {
		alert.ID = primitive.NewObjectID()
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": alert.ID}
	update := bson.M{"$set": alert}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save alert: %w", err)
	}
	return nil
}

// FindByID returns the alert with the given id, or nil when absent
func (r *AlertRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Alert, error) {
	var alert domain.Alert
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&alert)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}
	return &alert, nil
}

// FindAll returns every alert, newest first
func (r *AlertRepository) FindAll(ctx context.Context) ([]*domain.Alert, error) {
	return r.find(ctx, bson.M{})
}

// FindUnread returns alerts not yet marked read, newest first
func (r *AlertRepository) FindUnread(ctx context.Context) ([]*domain.Alert, error) {
	return r.find(ctx, bson.M{"isRead": false})
}

// FindUnreadByType returns unread alerts of one type, newest first
func (r *AlertRepository) FindUnreadByType(ctx context.Context, alertType domain.AlertType) ([]*domain.Alert, error) {
	return r.find(ctx, bson.M{"isRead": false, "alertType": alertType})
}

// FindUnreadBySeverity returns unread alerts of one severity, newest first
func (r *AlertRepository) FindUnreadBySeverity(ctx context.Context, severity domain.Severity) ([]*domain.Alert, error) {
	return r.find(ctx, bson.M{"isRead": false, "severity": severity})
}

// CountUnread returns how many alerts are unread
func (r *AlertRepository) CountUnread(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"isRead": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}

func (r *AlertRepository) find(ctx context.Context, filter bson.M) ([]*domain.Alert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []*domain.Alert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}
	return alerts, nil
}
