// internal/app/store/bills/billstore.go
package billstore

import (
	"context"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bills")}
}

var ErrNotFound = apperr.New(apperr.Invalid, "Billing is not found")

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bill, error) {
	var b models.Bill
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetByRegistration returns the bill tied to an owner registration. Member
// registrations have no bill of their own, so a nil bill with nil error
// means "no bill exists" rather than a failure.
func (s *Store) GetByRegistration(ctx context.Context, registrationID primitive.ObjectID) (*models.Bill, error) {
	var b models.Bill
	if err := s.c.FindOne(ctx, bson.M{"registration_id": registrationID}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
