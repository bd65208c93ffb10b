// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration is one user's participation in one competition.
//
// Code doubles as the team join code: the owner's Code equals its own _id
// hex, and every member row created through join-by-code shares that Code
// with its own _id. At most one registration may exist per
// (user_id, competition_id) pair; a unique index enforces this.
//
// User and competition fields are snapshots taken at creation time for
// read-heavy list views. They are not kept in sync with later edits to the
// source user/competition documents.
type Registration struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Code    string             `bson:"code" json:"code"`
	IsOwner bool               `bson:"is_owner" json:"is_owner"`

	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserEmail    string             `bson:"user_email" json:"user_email"`
	UserFullName string             `bson:"user_fullname" json:"user_fullname"`
	UserCollege  string             `bson:"user_college" json:"user_college"`

	CompetitionID   primitive.ObjectID `bson:"competition_id" json:"competition_id"`
	CompetitionName string             `bson:"competition_name" json:"competition_name"`
	CompetitionType string             `bson:"competition_type" json:"competition_type"`
	UsingSubmission bool               `bson:"competition_using_submission" json:"competition_using_submission"`

	PaymentStatus    string `bson:"payment_status" json:"payment_status"`
	AcceptanceStatus string `bson:"acceptance_status,omitempty" json:"acceptance_status,omitempty"`
	IsActive         bool   `bson:"is_active" json:"is_active"`

	SubmissionStatus string `bson:"submission_status,omitempty" json:"submission_status,omitempty"`
	URL              string `bson:"url,omitempty" json:"url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ActiveForAcceptance derives the is_active flag for a team member:
// only accepted members count toward the roster.
func ActiveForAcceptance(status string) bool {
	return status == AcceptanceAccepted
}
