package users

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docfolio/backend/internal/models"
)

// Filter is the paginated user search criteria. Name and email fields
// match case-insensitively; FullName matches any of the four name parts.
type Filter struct {
	ID            string
	FirstName     string
	SecondName    string
	Surname       string
	SecondSurname string
	FullName      string
	Email         string
	IDNumber      string
}

// Repository defines persistence operations for the user aggregate.
// Folder/document/attachment mutations are saved by replacing the whole
// aggregate through Update, keyed by the user's identity.
type Repository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDDocument(ctx context.Context, docType, number string) (*models.User, error)
	FindByDocumentNumber(ctx context.Context, number string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	FindAndCount(ctx context.Context, f Filter, offset, limit int) ([]*models.User, int64, error)
	Update(ctx context.Context, u *models.User) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

var _ Repository = (*MongoRepository)(nil)

// NewMongoRepository creates a repository for the given collection and
// ensures the unique indexes on email and id document.
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	ctx := context.Background()
	col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true),
	})
	col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "idDocument.type", Value: 1}, {Key: "idDocument.number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) FindByIDDocument(ctx context.Context, docType, number string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"idDocument.type": docType, "idDocument.number": number})
}

func (r *MongoRepository) FindByDocumentNumber(ctx context.Context, number string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"idDocument.number": number})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.User{}
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, cur.Err()
}

func (r *MongoRepository) FindAndCount(ctx context.Context, f Filter, offset, limit int) ([]*models.User, int64, error) {
	filter := bson.M{}
	if f.ID != "" {
		filter["_id"] = f.ID
	}
	if f.FirstName != "" {
		filter["firstName"] = regex(f.FirstName)
	}
	if f.SecondName != "" {
		filter["secondName"] = regex(f.SecondName)
	}
	if f.Surname != "" {
		filter["surname"] = regex(f.Surname)
	}
	if f.SecondSurname != "" {
		filter["secondSurname"] = regex(f.SecondSurname)
	}
	if f.FullName != "" {
		filter["$or"] = bson.A{
			bson.M{"firstName": regex(f.FullName)},
			bson.M{"secondName": regex(f.FullName)},
			bson.M{"surname": regex(f.FullName)},
			bson.M{"secondSurname": regex(f.FullName)},
		}
	}
	if f.Email != "" {
		filter["email"] = regex(f.Email)
	}
	if f.IDNumber != "" {
		filter["idDocument.number"] = regex(f.IDNumber)
	}

	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSkip(int64(offset)).SetSort(bson.D{{Key: "surname", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	out := []*models.User{}
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, 0, err
		}
		out = append(out, &u)
	}
	return out, count, cur.Err()
}

func (r *MongoRepository) Update(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func regex(pattern string) primitive.Regex {
	return primitive.Regex{Pattern: pattern, Options: "i"}
}
