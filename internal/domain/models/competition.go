// internal/domain/models/competition.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Competition is a catalog entry. The registration workflow treats it as
// read-only: price, type, and the submission flag are snapshotted onto
// registrations and bills at registration time.
type Competition struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Type            string             `bson:"type" json:"type"` // individual | team
	Price           int64              `bson:"price" json:"price"`
	UsingSubmission bool               `bson:"using_submission" json:"using_submission"`
	IsActive        bool               `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
