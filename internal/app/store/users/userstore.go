// internal/app/store/users/userstore.go
package userstore

// Terminology: account documents
//   - users holds the credentials and status flags for one person
//   - user_details holds the student profile (college, batch, proof uploads);
//     exactly one detail document exists per user, created at signup

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
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
	db      *mongo.Database
	log     *zap.Logger
	c       *mongo.Collection
	details *mongo.Collection
}

func New(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{
		db:      db,
		log:     log,
		c:       db.Collection("users"),
		details: db.Collection("user_details"),
	}
}

var ErrNotFound = apperr.New(apperr.NotFound, "User is not found")

// Create inserts the account and its detail document atomically. Email and
// phone are checked up front for a precise message; the unique indexes stay
// as the backstop against racing signups.
func (s *Store) Create(ctx context.Context, u *models.User, d *models.UserDetail) error {
	if n, err := s.c.CountDocuments(ctx, bson.M{"email": u.Email}); err != nil {
		return err
	} else if n > 0 {
		return apperr.Newf(apperr.Conflict, "User with email %s already exists", u.Email)
	}
	if n, err := s.c.CountDocuments(ctx, bson.M{"phone": u.Phone}); err != nil {
		return err
	} else if n > 0 {
		return apperr.Newf(apperr.Conflict, "User with phone number %s already exists", u.Phone)
	}

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	d.ID = primitive.NewObjectID()
	d.UserID = u.ID

	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if _, err := s.c.InsertOne(ctx, u); err != nil {
			return err
		}
		_, err := s.details.InsertOne(ctx, d)
		return err
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			if strings.Contains(err.Error(), "uniq_users_phone") {
				return apperr.Newf(apperr.Conflict, "User with phone number %s already exists", u.Phone)
			}
			return apperr.Newf(apperr.Conflict, "User with email %s already exists", u.Email)
		}
		return err
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.Newf(apperr.NotFound, "User with id %s is not found", id.Hex())
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePassword stores a new bcrypt hash for the user.
func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":   hash,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetVerified flips the admin-verification flag on the account.
func (s *Store) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_verified": verified,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Detail returns the student profile for a user.
func (s *Store) Detail(ctx context.Context, userID primitive.ObjectID) (*models.UserDetail, error) {
	var d models.UserDetail
	if err := s.details.FindOne(ctx, bson.M{"user_id": userID}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ProfileUpdate carries the editable profile fields. Nil pointers are left
// untouched so partial updates stay partial.
type ProfileUpdate struct {
	FullName      *string
	Nickname      *string
	Phone         *string
	College       *string
	Major         *string
	Batch         *string
	BirthDate     *string
	StudentNumber *string
}

// UpdateProfile applies a partial update across the account and its detail
// document atomically.
func (s *Store) UpdateProfile(ctx context.Context, userID primitive.ObjectID, p ProfileUpdate) error {
	now := time.Now().UTC()

	userSet := bson.M{"updated_at": now}
	if p.FullName != nil {
		userSet["fullname"] = *p.FullName
	}
	if p.Nickname != nil {
		userSet["nickname"] = *p.Nickname
	}
	if p.Phone != nil {
		userSet["phone"] = *p.Phone
	}

	detailSet := bson.M{}
	if p.College != nil {
		detailSet["college"] = *p.College
	}
	if p.Major != nil {
		detailSet["major"] = *p.Major
	}
	if p.Batch != nil {
		detailSet["batch"] = *p.Batch
	}
	if p.BirthDate != nil {
		detailSet["birth_date"] = *p.BirthDate
	}
	if p.StudentNumber != nil {
		detailSet["student_number"] = *p.StudentNumber
	}

	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		res, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": userSet})
		if err != nil {
			if wafflemongo.IsDup(err) && p.Phone != nil {
				return apperr.Newf(apperr.Conflict, "User with phone number %s already exists", *p.Phone)
			}
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		if len(detailSet) > 0 {
			_, err = s.details.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": detailSet})
		}
		return err
	})
}

// VerificationUpdate carries the identity fields a user files for admin
// review.
type VerificationUpdate struct {
	Major            string
	Batch            string
	BirthDate        string
	StudentNumber    string
	StudentNumberURL string
	PurchaseProofURL string
}

// SubmitVerification records the identity detail a user files for admin
// review and touches the account timestamp.
func (s *Store) SubmitVerification(ctx context.Context, userID primitive.ObjectID, v VerificationUpdate) error {
	res, err := s.details.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{
		"major":              v.Major,
		"batch":              v.Batch,
		"birth_date":         v.BirthDate,
		"student_number":     v.StudentNumber,
		"student_number_url": v.StudentNumberURL,
		"purchase_proof_url": v.PurchaseProofURL,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.Newf(apperr.NotFound, "User details for user with id %s not found", userID.Hex())
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}})
	return err
}

// SetStudentProof records the uploaded student-card URL.
func (s *Store) SetStudentProof(ctx context.Context, userID primitive.ObjectID, url string) error {
	res, err := s.details.UpdateOne(ctx, bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"student_number_url": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPurchaseProof records the uploaded purchase-proof URL.
func (s *Store) SetPurchaseProof(ctx context.Context, userID primitive.ObjectID, url string) error {
	res, err := s.details.UpdateOne(ctx, bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"purchase_proof_url": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all non-admin accounts, newest first. Used by the admin
// verification screen.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"role": models.RoleUser},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BlockedEmails returns the email addresses of blocked accounts. Admin
// reporting drops registrations held by these users.
func (s *Store) BlockedEmails(ctx context.Context) (map[string]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{"is_blocked": true},
		options.Find().SetProjection(bson.M{"email": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	blocked := make(map[string]bool)
	for cur.Next(ctx) {
		var row struct {
			Email string `bson:"email"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		blocked[row.Email] = true
	}
	return blocked, cur.Err()
}
