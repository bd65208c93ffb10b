// internal/domain/models/status.go
package models

// Payment status values shared by Registration.PaymentStatus and Bill.Status.
// The string forms are part of the public API and match what clients display.
const (
	PaymentNotPaid = "Not Paid"
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentCancel  = "Cancel"
)

// Payment attempt status values (one Payment document per attempt).
const (
	AttemptPending  = "Pending"
	AttemptAccepted = "Accepted"
	AttemptRejected = "Rejected"
	AttemptCancel   = "Cancel"
)

// Acceptance status values for team members joined by code.
// Pending is the initial state; the owner moves members between the others.
// None of these are strictly terminal: an owner may re-decide.
const (
	AcceptancePending  = "Pending"
	AcceptanceAccepted = "Accepted"
	AcceptanceRejected = "Rejected"
	AcceptanceDeleted  = "Deleted"
)

// Submission status values (only for competitions that use submissions).
const (
	SubmissionNotSubmitted = "Not Submitted"
	SubmissionSubmitted    = "Submitted"
)

// Competition types.
const (
	CompetitionIndividual = "individual"
	CompetitionTeam       = "team"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
