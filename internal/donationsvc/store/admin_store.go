package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satsangkankpul/donation-services/internal/db"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AdminCollection = "Users"

type adminDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"` // bcrypt hash
	CreatedAt time.Time          `bson:"createdAt"`
}

type AdminStore struct {
	coll *mongo.Collection
}

func NewAdminStore(database *mongo.Database) *AdminStore {
	return &AdminStore{coll: database.Collection(AdminCollection)}
}

// EnsureIndexes indexes username without a unique constraint.
func (s *AdminStore) EnsureIndexes(ctx context.Context) error {
	return db.CreateIndex(ctx, s.coll.Database(), AdminCollection,
		bson.D{{Key: "username", Value: 1}}, nil)
}

func (s *AdminStore) CreateAdmin(ctx context.Context, a *models.Admin) (string, error) {
	doc := adminDocument{
		ID:        primitive.NewObjectID(),
		Username:  a.Username,
		Password:  a.PasswordHash,
		CreatedAt: a.CreatedAt,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("could not create admin: %w", err)
	}
	return doc.ID.Hex(), nil
}

// GetByUsername returns the oldest account with the given username, or
// nil, nil when there is none.
func (s *AdminStore) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var doc adminDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return &models.Admin{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		PasswordHash: doc.Password,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
