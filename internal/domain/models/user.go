// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can register for competitions and submit payments.
//
// NOTE:
//   - Password holds the bcrypt hash, never the plaintext.
//   - Extended identity fields (college, student number, proof documents)
//     live on the user_details collection, not here.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"fullname" json:"fullname"`
	Nickname   string             `bson:"nickname" json:"nickname"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	Phone      string             `bson:"phone" json:"phone"`
	Status     string             `bson:"status,omitempty" json:"status,omitempty"` // student | public | ...
	Role       string             `bson:"role" json:"role"`                         // user | admin
	IsVerified bool               `bson:"is_verified" json:"is_verified"`
	IsBlocked  bool               `bson:"is_blocked,omitempty" json:"is_blocked,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserDetail carries identity-verification fields collected after signup.
// Exactly one document per user.
type UserDetail struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	College string             `bson:"college" json:"college"`

	Major            string `bson:"major,omitempty" json:"major,omitempty"`
	Batch            string `bson:"batch,omitempty" json:"batch,omitempty"`
	BirthDate        string `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	StudentNumber    string `bson:"student_number,omitempty" json:"student_number,omitempty"`
	StudentNumberURL string `bson:"student_number_url,omitempty" json:"student_number_url,omitempty"`
	PurchaseProofURL string `bson:"purchase_proof_url,omitempty" json:"purchase_proof_url,omitempty"`
}
