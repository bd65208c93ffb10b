// internal/domain/models/bill.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bill is the monetary obligation for a registration, created atomically
// with it. BillTotal = RealPrice + UniqueCode; the unique-code surcharge
// disambiguates manual bank-transfer matching. Exactly one bill per owner
// registration; team members ride on the owner's bill.
//
// Status mirrors the latest payment attempt and must agree with the linked
// Registration.PaymentStatus at all times.
type Bill struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RegistrationID primitive.ObjectID `bson:"registration_id" json:"registration_id"`

	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserEmail    string             `bson:"user_email" json:"user_email"`
	UserFullName string             `bson:"user_fullname" json:"user_fullname"`
	UserCollege  string             `bson:"user_college" json:"user_college"`

	CompetitionID   primitive.ObjectID `bson:"competition_id" json:"competition_id"`
	CompetitionName string             `bson:"competition_name" json:"competition_name"`
	CompetitionType string             `bson:"competition_type" json:"competition_type"`

	RealPrice  int64  `bson:"real_price" json:"real_price"`
	UniqueCode int64  `bson:"unique_code" json:"unique_code"`
	BillTotal  int64  `bson:"bill_total" json:"bill_total"`
	Status     string `bson:"status" json:"status"` // Not Paid | Pending | Paid | Cancel

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
