// internal/domain/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is one attempt to settle a bill, verified manually by an admin.
// At most one payment per bill may be Pending at any time; a partial unique
// index on (bill_id, status=Pending) enforces this.
type Payment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BillID       primitive.ObjectID `bson:"bill_id" json:"bill_id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserFullName string             `bson:"user_fullname" json:"user_fullname"`
	ImageURL     string             `bson:"image_url" json:"image_url"`
	Status       string             `bson:"status" json:"status"` // Pending | Accepted | Rejected | Cancel

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
