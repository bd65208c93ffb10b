// internal/app/features/competitions/types.go
package competitions

import (
	"time"

	"github.com/dalemusser/contesthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// registerRequest is the POST /register body.
type registerRequest struct {
	CompetitionID string `json:"competitionId"`
}

// joinRequest is the POST /register-by-code body.
type joinRequest struct {
	CompetitionID string `json:"competitionId"`
	Code          string `json:"code"`
}

// submitRequest is the POST /submit body.
type submitRequest struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

// memberStatusRequest is the PATCH /member/status body: the owner's verdict
// on a join request.
type memberStatusRequest struct {
	Code     string `json:"code"`
	MemberID string `json:"memberId"`
	Status   string `json:"status"`
}

// registerResponse is the POST /register payload: the new registration plus
// the bill amounts the participant must transfer.
type registerResponse struct {
	models.Registration
	BillID     primitive.ObjectID `json:"bill_id"`
	BillTotal  int64              `json:"bill_total"`
	RealPrice  int64              `json:"real_price"`
	UniqueCode int64              `json:"unique_code"`
}

// joinResponse is the POST /register-by-code payload. Code here is the new
// member registration's own id, not the team code it joined under.
type joinResponse struct {
	Code             string             `json:"code"`
	IsOwner          bool               `json:"is_owner"`
	UserID           primitive.ObjectID `json:"user_id"`
	UserEmail        string             `json:"user_email"`
	UserFullName     string             `json:"user_fullname"`
	UserCollege      string             `json:"user_college"`
	CompetitionID    primitive.ObjectID `json:"competition_id"`
	CompetitionName  string             `json:"competition_name"`
	CompetitionType  string             `json:"competition_type"`
	UsingSubmission  bool               `json:"competition_using_submission"`
	AcceptanceStatus string             `json:"acceptance_status"`
	IsActive         bool               `json:"is_active"`
}

// billSummary is the bill slice the participant-facing views expose.
type billSummary struct {
	ID         primitive.ObjectID `json:"id"`
	RealPrice  int64              `json:"real_price"`
	BillTotal  int64              `json:"bill_total"`
	UniqueCode int64              `json:"unique_code"`
	Status     string             `json:"status"`
}

// paymentSummary is the attempt slice attached to bills in list views.
type paymentSummary struct {
	ID        primitive.ObjectID `json:"id"`
	ImageURL  string             `json:"image_url"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// myCompetition is one row of GET /me.
type myCompetition struct {
	Code             string           `json:"code"`
	Type             string           `json:"type"`
	Name             string           `json:"name"`
	IsActive         bool             `json:"is_active"`
	UsingSubmission  bool             `json:"competition_using_submission"`
	SubmissionStatus string           `json:"submission_status,omitempty"`
	PaymentStatus    string           `json:"payment_status"`
	URL              string           `json:"url,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Bill             *billSummary     `json:"bill,omitempty"`
	Payments         []paymentSummary `json:"payments"`
}

// rosterMember is one person in a team view, owner included.
type rosterMember struct {
	UserEmail        string `json:"user_email"`
	UserFullName     string `json:"user_fullname"`
	UserCollege      string `json:"user_college"`
	IsActive         bool   `json:"is_active"`
	AcceptanceStatus string `json:"acceptance_status,omitempty"`
	IsOwner          bool   `json:"is_owner"`
}

// detailResponse is the GET /{code} payload: the owning registration with
// the holder's identity fields stripped.
type detailResponse struct {
	Code             string             `json:"code"`
	CompetitionID    primitive.ObjectID `json:"competition_id"`
	CompetitionName  string             `json:"competition_name"`
	CompetitionType  string             `json:"competition_type"`
	UsingSubmission  bool               `json:"competition_using_submission"`
	PaymentStatus    string             `json:"payment_status"`
	SubmissionStatus string             `json:"submission_status,omitempty"`
	URL              string             `json:"url,omitempty"`
	IsActive         bool               `json:"is_active"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	Bill             *billSummary       `json:"bill,omitempty"`
	Payments         []paymentSummary   `json:"payments"`
	Members          []rosterMember     `json:"members,omitempty"`
}

// memberRow is one join request in the admin report.
type memberRow struct {
	AcceptanceStatus string    `json:"acceptance_status"`
	UserFullName     string    `json:"user_fullname"`
	UserEmail        string    `json:"user_email"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// registrationRow is one owner registration in the admin report, with its
// bill, the live payment attempt, and the join-request history for teams.
type registrationRow struct {
	ID               string          `json:"id"`
	CompetitionName  string          `json:"competition_name"`
	CompetitionType  string          `json:"competition_type"`
	UsingSubmission  bool            `json:"competition_using_submission"`
	UserFullName     string          `json:"user_fullname"`
	UserEmail        string          `json:"user_email"`
	UserCollege      string          `json:"user_college"`
	PaymentStatus    string          `json:"payment_status"`
	SubmissionStatus string          `json:"submission_status,omitempty"`
	URL              string          `json:"url,omitempty"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	Bill             *models.Bill    `json:"bill,omitempty"`
	Payment          *models.Payment `json:"payment,omitempty"`
	Member           []memberRow     `json:"member,omitempty"`
}
