// internal/app/store/payments/paymentstore.go
package paymentstore

// A bill walks Not Paid -> Pending -> Paid (or back to Not Paid on a
// rejection, Cancel on a withdrawal). Every transition below also updates
// the owning registration's payment_status so the three documents never
// disagree; the writes run inside one transaction.

import (
	"context"
	"time"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/txn"
	"github.com/dalemusser/contesthub/internal/domain/models"
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
	regs  *mongo.Collection
}

func New(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{
		db:    db,
		log:   log,
		c:     db.Collection("payments"),
		bills: db.Collection("bills"),
		regs:  db.Collection("registrations"),
	}
}

var (
	ErrBillNotFound = apperr.New(apperr.Invalid, "Billing is not found")
	ErrBillGone     = apperr.New(apperr.Invalid, "Billing is not exist")
	ErrAlreadyPaid  = apperr.New(apperr.InvalidState, "Billing is already paid")
	ErrNotFound     = apperr.New(apperr.Invalid, "Payment data is not found")
	ErrNotPending   = apperr.New(apperr.InvalidState,
		"You only can cancel payment with pending status")
	ErrNotYours = apperr.New(apperr.Invalid, "You only can cancel your own payment")
	ErrNotAllowed = apperr.New(apperr.InvalidState, "Not allowed to perform the action")
	ErrNoPending  = apperr.New(apperr.InvalidState,
		"Payment is empty. Try to make payment first")
	ErrPendingExists = apperr.New(apperr.Conflict,
		"There is payment request that still not verified by admin. Please wait for the verification")
)

// Submit files a proof-of-transfer against a bill and moves the bill and its
// registration to Pending.
func (s *Store) Submit(ctx context.Context, u *models.User, billID primitive.ObjectID, imageURL string) (*models.Payment, *models.Bill, error) {
	var bill models.Bill
	if err := s.bills.FindOne(ctx, bson.M{"_id": billID}).Decode(&bill); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, ErrBillNotFound
		}
		return nil, nil, err
	}
	if bill.Status == models.PaymentPaid {
		return nil, nil, ErrAlreadyPaid
	}

	var prev models.Payment
	err := s.c.FindOne(ctx, bson.M{"bill_id": billID, "status": models.AttemptPending}).Decode(&prev)
	if err == nil {
		// Carry the blocking attempt so the caller can show it.
		return nil, nil, apperr.WithData(ErrPendingExists, &prev)
	}
	if err != mongo.ErrNoDocuments {
		return nil, nil, err
	}

	now := time.Now().UTC()
	payment := &models.Payment{
		ID:           primitive.NewObjectID(),
		BillID:       billID,
		UserID:       u.ID,
		UserFullName: u.FullName,
		ImageURL:     imageURL,
		Status:       models.AttemptPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if _, err := s.c.InsertOne(ctx, payment); err != nil {
			return err
		}
		if err := s.setBillStatus(ctx, billID, models.PaymentPending, now); err != nil {
			return err
		}
		return s.setRegistrationStatus(ctx, bill.RegistrationID, models.PaymentPending, now)
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, &bill, nil
}

// Cancel withdraws the caller's own pending attempt and parks the bill and
// registration at Cancel until a new attempt is filed.
func (s *Store) Cancel(ctx context.Context, userID, paymentID primitive.ObjectID) error {
	var payment models.Payment
	if err := s.c.FindOne(ctx, bson.M{"_id": paymentID}).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}
	if payment.Status != models.AttemptPending {
		return ErrNotPending
	}
	if payment.UserID != userID {
		return ErrNotYours
	}

	var bill models.Bill
	if err := s.bills.FindOne(ctx, bson.M{"_id": payment.BillID}).Decode(&bill); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrBillGone
		}
		return err
	}

	now := time.Now().UTC()
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if err := s.setPaymentStatus(ctx, paymentID, models.AttemptCancel, now); err != nil {
			return err
		}
		if err := s.setBillStatus(ctx, bill.ID, models.PaymentCancel, now); err != nil {
			return err
		}
		return s.setRegistrationStatus(ctx, bill.RegistrationID, models.PaymentCancel, now)
	})
}

// VerifyResult reports what a verdict settled.
type VerifyResult struct {
	PaymentID primitive.ObjectID
	BillID    primitive.ObjectID
	BillTotal int64
}

// Verify records the admin verdict on the pending attempt for a bill.
// Approval marks everything Paid; rejection returns the bill and
// registration to Not Paid so the participant can try again.
func (s *Store) Verify(ctx context.Context, billID primitive.ObjectID, approve bool) (*VerifyResult, error) {
	var bill models.Bill
	if err := s.bills.FindOne(ctx, bson.M{"_id": billID}).Decode(&bill); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	if bill.Status == models.PaymentPaid || bill.Status == models.PaymentNotPaid {
		return nil, ErrNotAllowed
	}

	var pending models.Payment
	err := s.c.FindOne(ctx, bson.M{"bill_id": billID, "status": models.AttemptPending}).Decode(&pending)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoPending
	}
	if err != nil {
		return nil, err
	}

	attemptStatus := models.AttemptRejected
	billStatus := models.PaymentNotPaid
	if approve {
		attemptStatus = models.AttemptAccepted
		billStatus = models.PaymentPaid
	}

	now := time.Now().UTC()
	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if err := s.setPaymentStatus(ctx, pending.ID, attemptStatus, now); err != nil {
			return err
		}
		if err := s.setBillStatus(ctx, billID, billStatus, now); err != nil {
			return err
		}
		return s.setRegistrationStatus(ctx, bill.RegistrationID, billStatus, now)
	})
	if err != nil {
		return nil, err
	}
	return &VerifyResult{PaymentID: pending.ID, BillID: billID, BillTotal: bill.BillTotal}, nil
}

// ListByBill returns the attempt history for a bill, latest first.
func (s *Store) ListByBill(ctx context.Context, billID primitive.ObjectID) ([]models.Payment, error) {
	cur, err := s.c.Find(ctx, bson.M{"bill_id": billID},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Payment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FirstNonRejected returns the attempt the admin screen surfaces for a bill:
// the live one, if any. Nil with nil error means no attempt qualifies.
func (s *Store) FirstNonRejected(ctx context.Context, billID primitive.ObjectID) (*models.Payment, error) {
	var p models.Payment
	err := s.c.FindOne(ctx, bson.M{
		"bill_id": billID,
		"status":  bson.M{"$ne": models.AttemptRejected},
	}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) setPaymentStatus(ctx context.Context, id primitive.ObjectID, status string, now time.Time) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": now}})
	return err
}

func (s *Store) setBillStatus(ctx context.Context, id primitive.ObjectID, status string, now time.Time) error {
	_, err := s.bills.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": now}})
	return err
}

func (s *Store) setRegistrationStatus(ctx context.Context, id primitive.ObjectID, status string, now time.Time) error {
	_, err := s.regs.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"payment_status": status, "updated_at": now}})
	return err
}
