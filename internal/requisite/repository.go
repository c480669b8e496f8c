package requisite

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docfolio/backend/internal/models"
)

// Repository defines persistence operations for the requisite catalog.
// Lookups that miss return (nil, nil); services translate that into a
// NotFound error for their callers.
type Repository interface {
	Create(ctx context.Context, r *models.Requisite) error
	FindByID(ctx context.Context, id string) (*models.Requisite, error)
	FindByName(ctx context.Context, name string) (*models.Requisite, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Requisite, error)
	FindAndCount(ctx context.Context, name string, offset, limit int) ([]models.Requisite, int64, error)
	Update(ctx context.Context, r *models.Requisite) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

var _ Repository = (*MongoRepository)(nil)

// NewMongoRepository creates a repository for the given collection and
// ensures the unique index on name.
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, req *models.Requisite) error {
	now := time.Now().UTC()
	if req.ID == "" {
		req.ID = primitive.NewObjectID().Hex()
	}
	req.CreatedAt = now
	req.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, req)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.Requisite, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) FindByName(ctx context.Context, name string) (*models.Requisite, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Requisite, error) {
	var req models.Requisite
	if err := r.col.FindOne(ctx, filter).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *MongoRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Requisite, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Requisite{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) FindAndCount(ctx context.Context, name string, offset, limit int) ([]models.Requisite, int64, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = primitive.Regex{Pattern: name, Options: "i"}
	}
	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSkip(int64(offset)).SetSort(bson.D{{Key: "name", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	out := []models.Requisite{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

func (r *MongoRepository) Update(ctx context.Context, req *models.Requisite) error {
	req.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
