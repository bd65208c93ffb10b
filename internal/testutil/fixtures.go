// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/contesthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a verified test user with the given identity.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, phone string) models.User {
	f.t.Helper()
	return f.createUser(ctx, fullName, email, phone, "secret123", models.RoleUser)
}

// CreateAdmin creates a test admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.createUser(ctx, "Test Admin", email, "081200000000", "secret123", models.RoleAdmin)
}

// CreateUserWithPassword creates a user whose password is the given plain
// text, for login tests.
func (f *Fixtures) CreateUserWithPassword(ctx context.Context, email, password string) models.User {
	f.t.Helper()
	return f.createUser(ctx, "Test User", email, "081234567890", password, models.RoleUser)
}

func (f *Fixtures) createUser(ctx context.Context, fullName, email, phone, password, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		Nickname:   fullName,
		Email:      email,
		Password:   string(hash),
		Phone:      phone,
		Status:     "Student",
		Role:       role,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateDetail creates the student profile for a user.
func (f *Fixtures) CreateDetail(ctx context.Context, userID primitive.ObjectID, college string) models.UserDetail {
	f.t.Helper()

	detail := models.UserDetail{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		College:       college,
		Major:         "Informatics",
		Batch:         "2023",
		StudentNumber: "1301230001",
	}

	if _, err := f.db.Collection("user_details").InsertOne(ctx, detail); err != nil {
		f.t.Fatalf("failed to create test user detail: %v", err)
	}
	return detail
}

// CreateCompetition creates an active competition.
func (f *Fixtures) CreateCompetition(ctx context.Context, name, competitionType string, price int64, usingSubmission bool) models.Competition {
	f.t.Helper()

	now := time.Now().UTC()
	comp := models.Competition{
		ID:              primitive.NewObjectID(),
		Name:            name,
		Type:            competitionType,
		Price:           price,
		UsingSubmission: usingSubmission,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := f.db.Collection("competitions").InsertOne(ctx, comp); err != nil {
		f.t.Fatalf("failed to create test competition: %v", err)
	}
	return comp
}

// CreateOwnerRegistration creates an owner registration for the user on the
// competition. The code equals the registration id, as in production.
func (f *Fixtures) CreateOwnerRegistration(ctx context.Context, u models.User, comp models.Competition) models.Registration {
	f.t.Helper()

	now := time.Now().UTC()
	reg := models.Registration{
		ID:              primitive.NewObjectID(),
		IsOwner:         true,
		UserID:          u.ID,
		UserEmail:       u.Email,
		UserFullName:    u.FullName,
		UserCollege:     "Test College",
		CompetitionID:   comp.ID,
		CompetitionName: comp.Name,
		CompetitionType: comp.Type,
		UsingSubmission: comp.UsingSubmission,
		PaymentStatus:   models.PaymentNotPaid,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	reg.Code = reg.ID.Hex()
	if comp.UsingSubmission {
		reg.SubmissionStatus = models.SubmissionNotSubmitted
	}

	if _, err := f.db.Collection("registrations").InsertOne(ctx, reg); err != nil {
		f.t.Fatalf("failed to create test registration: %v", err)
	}
	return reg
}

// CreateMemberRegistration creates a member registration under an existing
// code with the given acceptance status.
func (f *Fixtures) CreateMemberRegistration(ctx context.Context, u models.User, comp models.Competition, code, acceptance string) models.Registration {
	f.t.Helper()

	now := time.Now().UTC()
	reg := models.Registration{
		ID:               primitive.NewObjectID(),
		Code:             code,
		IsOwner:          false,
		UserID:           u.ID,
		UserEmail:        u.Email,
		UserFullName:     u.FullName,
		UserCollege:      "Test College",
		CompetitionID:    comp.ID,
		CompetitionName:  comp.Name,
		CompetitionType:  comp.Type,
		UsingSubmission:  comp.UsingSubmission,
		AcceptanceStatus: acceptance,
		IsActive:         models.ActiveForAcceptance(acceptance),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := f.db.Collection("registrations").InsertOne(ctx, reg); err != nil {
		f.t.Fatalf("failed to create test member registration: %v", err)
	}
	return reg
}

// CreateBill creates a bill for an owner registration with the given status.
func (f *Fixtures) CreateBill(ctx context.Context, reg models.Registration, uniqueCode int64, status string) models.Bill {
	f.t.Helper()

	now := time.Now().UTC()
	bill := models.Bill{
		ID:              primitive.NewObjectID(),
		RegistrationID:  reg.ID,
		UserID:          reg.UserID,
		UserEmail:       reg.UserEmail,
		UserFullName:    reg.UserFullName,
		UserCollege:     reg.UserCollege,
		CompetitionID:   reg.CompetitionID,
		CompetitionName: reg.CompetitionName,
		CompetitionType: reg.CompetitionType,
		RealPrice:       50000,
		UniqueCode:      uniqueCode,
		BillTotal:       50000 + uniqueCode,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := f.db.Collection("bills").InsertOne(ctx, bill); err != nil {
		f.t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreatePayment creates a payment attempt against a bill.
func (f *Fixtures) CreatePayment(ctx context.Context, billID, userID primitive.ObjectID, status string) models.Payment {
	f.t.Helper()

	now := time.Now().UTC()
	payment := models.Payment{
		ID:           primitive.NewObjectID(),
		BillID:       billID,
		UserID:       userID,
		UserFullName: "Test User",
		ImageURL:     "https://files.example.com/proof.jpg",
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("payments").InsertOne(ctx, payment); err != nil {
		f.t.Fatalf("failed to create test payment: %v", err)
	}
	return payment
}
