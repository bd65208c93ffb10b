// internal/app/store/competitions/competitionstore.go
package competitionstore

import (
	"context"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("competitions")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Competition, error) {
	var comp models.Competition
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&comp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.Newf(apperr.NotFound, "Competition with id %s is not exist", id.Hex())
		}
		return nil, err
	}
	return &comp, nil
}

// List returns the active catalog sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Competition, error) {
	cur, err := s.c.Find(ctx, bson.M{"is_active": true},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Competition
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
