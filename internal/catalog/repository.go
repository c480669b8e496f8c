// Package catalog persists the assignment catalog: profiles, hiring types,
// groups and services. These entities own the requisite references the
// assignment resolver unions at user creation.
package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docfolio/backend/internal/models"
)

// Repositories bundles the four catalog collections behind one interface
// so the resolver takes a single dependency. Lookups that miss return
// (nil, nil).
type Repositories interface {
	ProfileByName(ctx context.Context, name string) (*models.Profile, error)
	HiringByType(ctx context.Context, hiringType string) (*models.Hiring, error)
	GroupByName(ctx context.Context, name string) (*models.Group, error)
	ServicesByNames(ctx context.Context, names []string) ([]models.Service, error)

	CreateProfile(ctx context.Context, p *models.Profile) error
	CreateHiring(ctx context.Context, h *models.Hiring) error
	CreateGroup(ctx context.Context, g *models.Group) error
	CreateService(ctx context.Context, s *models.Service) error
}

// MongoRepositories implements Repositories over four collections.
type MongoRepositories struct {
	profiles *mongo.Collection
	hirings  *mongo.Collection
	groups   *mongo.Collection
	services *mongo.Collection
}

var _ Repositories = (*MongoRepositories)(nil)

func NewMongoRepositories(db *mongo.Database) *MongoRepositories {
	return &MongoRepositories{
		profiles: db.Collection("profiles"),
		hirings:  db.Collection("hirings"),
		groups:   db.Collection("groups"),
		services: db.Collection("services"),
	}
}

func (r *MongoRepositories) ProfileByName(ctx context.Context, name string) (*models.Profile, error) {
	var p models.Profile
	if err := r.profiles.FindOne(ctx, bson.M{"name": name}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepositories) HiringByType(ctx context.Context, hiringType string) (*models.Hiring, error) {
	var h models.Hiring
	if err := r.hirings.FindOne(ctx, bson.M{"type": hiringType}).Decode(&h); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *MongoRepositories) GroupByName(ctx context.Context, name string) (*models.Group, error) {
	var g models.Group
	if err := r.groups.FindOne(ctx, bson.M{"name": name}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *MongoRepositories) ServicesByNames(ctx context.Context, names []string) ([]models.Service, error) {
	cur, err := r.services.Find(ctx, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Service{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepositories) CreateProfile(ctx context.Context, p *models.Profile) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.profiles.InsertOne(ctx, p)
	return err
}

func (r *MongoRepositories) CreateHiring(ctx context.Context, h *models.Hiring) error {
	if h.ID == "" {
		h.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	h.CreatedAt, h.UpdatedAt = now, now
	_, err := r.hirings.InsertOne(ctx, h)
	return err
}

func (r *MongoRepositories) CreateGroup(ctx context.Context, g *models.Group) error {
	if g.ID == "" {
		g.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	g.CreatedAt, g.UpdatedAt = now, now
	_, err := r.groups.InsertOne(ctx, g)
	return err
}

func (r *MongoRepositories) CreateService(ctx context.Context, s *models.Service) error {
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	_, err := r.services.InsertOne(ctx, s)
	return err
}
