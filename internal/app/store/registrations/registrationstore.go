// internal/app/store/registrations/registrationstore.go
package registrationstore

// Terminology: codes
//   - A registration's Code is the string participants share to join a team.
//     The owner's Code equals their own registration id in hex; members carry
//     the owner's Code, so one Code groups the whole roster.

import (
	"context"
	"time"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/billing"
	"github.com/dalemusser/contesthub/internal/app/system/txn"
	"github.com/dalemusser/contesthub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	db    *mongo.Database
	log   *zap.Logger
	c     *mongo.Collection
	bills *mongo.Collection
}

func New(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{
		db:    db,
		log:   log,
		c:     db.Collection("registrations"),
		bills: db.Collection("bills"),
	}
}

var (
	ErrAlreadyRegistered = apperr.New(apperr.Conflict,
		"You already registered on this competition. Cannot register again!")
	ErrCodeNotAccepted = apperr.New(apperr.Invalid,
		"Your code is not accepted by our system!")
	ErrMemberNotInList = apperr.New(apperr.Invalid,
		"Member id is not exist in your competition request list")
	ErrCodeNotRegistered = apperr.New(apperr.Invalid,
		"Code is not registered in our system")
	ErrNoSubmission = apperr.New(apperr.InvalidState,
		"This competition is not using submission")
)

// RegisterDirect creates an owner registration and its bill atomically. The
// bill total is the competition price plus a fresh unique code so admins can
// match bank transfers to bills by amount.
func (s *Store) RegisterDirect(ctx context.Context, u *models.User, college string, comp *models.Competition) (*models.Registration, *models.Bill, error) {
	if err := s.checkNotRegistered(ctx, u.ID, comp.ID); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	reg := &models.Registration{
		ID:              primitive.NewObjectID(),
		IsOwner:         true,
		UserID:          u.ID,
		UserEmail:       u.Email,
		UserFullName:    u.FullName,
		UserCollege:     college,
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

	uniqueCode := billing.UniqueCode(comp.Price)
	bill := &models.Bill{
		ID:              primitive.NewObjectID(),
		RegistrationID:  reg.ID,
		UserID:          u.ID,
		UserEmail:       u.Email,
		UserFullName:    u.FullName,
		UserCollege:     college,
		CompetitionID:   comp.ID,
		CompetitionName: comp.Name,
		CompetitionType: comp.Type,
		RealPrice:       comp.Price,
		UniqueCode:      uniqueCode,
		BillTotal:       comp.Price + uniqueCode,
		Status:          models.PaymentNotPaid,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if _, err := s.c.InsertOne(ctx, reg); err != nil {
			return err
		}
		_, err := s.bills.InsertOne(ctx, bill)
		return err
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, nil, ErrAlreadyRegistered
		}
		return nil, nil, err
	}
	return reg, bill, nil
}

// JoinByCode adds a member registration under an owner's code. The member
// starts Pending and inactive until the owner accepts them; no bill is
// created because members ride on the owner's bill.
func (s *Store) JoinByCode(ctx context.Context, u *models.User, college string, comp *models.Competition, code string) (*models.Registration, error) {
	if err := s.checkNotRegistered(ctx, u.ID, comp.ID); err != nil {
		return nil, err
	}

	n, err := s.c.CountDocuments(ctx, bson.M{
		"code":             code,
		"competition_id":   comp.ID,
		"competition_type": models.CompetitionTeam,
	})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrCodeNotAccepted
	}

	now := time.Now().UTC()
	reg := &models.Registration{
		ID:               primitive.NewObjectID(),
		Code:             code,
		IsOwner:          false,
		UserID:           u.ID,
		UserEmail:        u.Email,
		UserFullName:     u.FullName,
		UserCollege:      college,
		CompetitionID:    comp.ID,
		CompetitionName:  comp.Name,
		CompetitionType:  comp.Type,
		UsingSubmission:  comp.UsingSubmission,
		AcceptanceStatus: models.AcceptancePending,
		IsActive:         false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if comp.UsingSubmission {
		reg.SubmissionStatus = models.SubmissionNotSubmitted
	}

	if _, err := s.c.InsertOne(ctx, reg); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	return reg, nil
}

func (s *Store) checkNotRegistered(ctx context.Context, userID, competitionID primitive.ObjectID) error {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"user_id":        userID,
		"competition_id": competitionID,
	})
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrAlreadyRegistered
	}
	return nil
}

// ChangeMemberStatus records the owner's verdict on a join request. Accepted
// members become active; any other verdict deactivates them.
func (s *Store) ChangeMemberStatus(ctx context.Context, code string, memberID primitive.ObjectID, status string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"code":             code,
			"competition_type": models.CompetitionTeam,
			"user_id":          memberID,
		},
		bson.M{"$set": bson.M{
			"acceptance_status": status,
			"is_active":         models.ActiveForAcceptance(status),
			"updated_at":        time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMemberNotInList
	}
	return nil
}

// GetByCode resolves a code to the owning registration.
func (s *Store) GetByCode(ctx context.Context, code string) (*models.Registration, error) {
	id, err := primitive.ObjectIDFromHex(code)
	if err != nil {
		return nil, ErrCodeNotRegistered
	}
	var reg models.Registration
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&reg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCodeNotRegistered
		}
		return nil, err
	}
	return &reg, nil
}

// SubmitEntry records the submission URL on the owning registration.
func (s *Store) SubmitEntry(ctx context.Context, code, url string) (*models.Registration, error) {
	reg, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !reg.UsingSubmission {
		return nil, ErrNoSubmission
	}

	now := time.Now().UTC()
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": reg.ID}, bson.M{"$set": bson.M{
		"url":               url,
		"submission_status": models.SubmissionSubmitted,
		"updated_at":        now,
	}})
	if err != nil {
		return nil, err
	}
	reg.URL = url
	reg.SubmissionStatus = models.SubmissionSubmitted
	reg.UpdatedAt = now
	return reg, nil
}

// Roster returns the owner followed by the join requests that are still
// Pending or already Accepted. Rejected and deleted members drop off.
func (s *Store) Roster(ctx context.Context, code string) ([]models.Registration, error) {
	var out []models.Registration

	var owner models.Registration
	err := s.c.FindOne(ctx, bson.M{"code": code, "is_owner": true}).Decode(&owner)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, err
	}
	if err == nil {
		out = append(out, owner)
	}

	cur, err := s.c.Find(ctx, bson.M{
		"code":              code,
		"is_owner":          false,
		"acceptance_status": bson.M{"$in": []string{models.AcceptanceAccepted, models.AcceptancePending}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.Registration
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return append(out, members...), nil
}

// Members lists all non-owner registrations under a code, newest first.
// Unlike Roster this includes rejected requests; the admin screen shows the
// full history.
func (s *Store) Members(ctx context.Context, code string) ([]models.Registration, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"code": code, "is_owner": false},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Registration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns every registration a user holds, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Registration, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Registration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOwners returns all owner registrations, newest first. Admin reporting
// walks this list and attaches bills, payments and rosters.
func (s *Store) ListOwners(ctx context.Context) ([]models.Registration, error) {
	cur, err := s.c.Find(ctx, bson.M{"is_owner": true},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Registration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
