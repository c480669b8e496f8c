// Package expiration holds the weekly sweep over user folders and the
// append-only log it writes.
package expiration

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docfolio/backend/internal/models"
)

// LogRepository persists sweep audit records.
type LogRepository interface {
	Create(ctx context.Context, log *models.ExpirationLog) error
	FindByUser(ctx context.Context, userID string) ([]models.ExpirationLog, error)
}

// MongoLogRepository implements LogRepository using MongoDB
type MongoLogRepository struct {
	col *mongo.Collection
}

var _ LogRepository = (*MongoLogRepository)(nil)

func NewMongoLogRepository(col *mongo.Collection) *MongoLogRepository {
	col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return &MongoLogRepository{col: col}
}

func (r *MongoLogRepository) Create(ctx context.Context, log *models.ExpirationLog) error {
	if log.ID == "" {
		log.ID = primitive.NewObjectID().Hex()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, log)
	return err
}

func (r *MongoLogRepository) FindByUser(ctx context.Context, userID string) ([]models.ExpirationLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	logs := []models.ExpirationLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
