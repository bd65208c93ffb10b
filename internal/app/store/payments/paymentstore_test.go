package paymentstore_test

import (
	"errors"
	"testing"

	paymentstore "github.com/dalemusser/contesthub/internal/app/store/payments"
	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"github.com/dalemusser/contesthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestStore_Submit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	comp := fixtures.CreateCompetition(ctx, "UI/UX Design", models.CompetitionIndividual, 50000, false)
	reg := fixtures.CreateOwnerRegistration(ctx, user, comp)
	bill := fixtures.CreateBill(ctx, reg, 123, models.PaymentNotPaid)

	payment, gotBill, err := store.Submit(ctx, &user, bill.ID, "https://files.example.com/proof.jpg")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if payment.Status != models.AttemptPending {
		t.Errorf("payment status: got %q, want %q", payment.Status, models.AttemptPending)
	}
	if gotBill.BillTotal != bill.BillTotal {
		t.Errorf("bill total: got %d, want %d", gotBill.BillTotal, bill.BillTotal)
	}

	// The bill and registration must both move to Pending.
	var billDoc models.Bill
	if err := db.Collection("bills").FindOne(ctx, bson.M{"_id": bill.ID}).Decode(&billDoc); err != nil {
		t.Fatalf("FindOne bill failed: %v", err)
	}
	if billDoc.Status != models.PaymentPending {
		t.Errorf("bill status: got %q, want %q", billDoc.Status, models.PaymentPending)
	}
	var regDoc models.Registration
	if err := db.Collection("registrations").FindOne(ctx, bson.M{"_id": reg.ID}).Decode(&regDoc); err != nil {
		t.Fatalf("FindOne registration failed: %v", err)
	}
	if regDoc.PaymentStatus != models.PaymentPending {
		t.Errorf("registration payment status: got %q, want %q", regDoc.PaymentStatus, models.PaymentPending)
	}
}

func TestStore_Submit_BillNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")

	_, _, err := store.Submit(ctx, &user, primitive.NewObjectID(), "https://files.example.com/proof.jpg")
	if !errors.Is(err, paymentstore.ErrBillNotFound) {
		t.Errorf("expected ErrBillNotFound, got %v", err)
	}
}

func TestStore_Submit_AlreadyPaid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	comp := fixtures.CreateCompetition(ctx, "UI/UX Design", models.CompetitionIndividual, 50000, false)
	reg := fixtures.CreateOwnerRegistration(ctx, user, comp)
	bill := fixtures.CreateBill(ctx, reg, 123, models.PaymentPaid)

	_, _, err := store.Submit(ctx, &user, bill.ID, "https://files.example.com/proof.jpg")
	if !errors.Is(err, paymentstore.ErrAlreadyPaid) {
		t.Errorf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestStore_Submit_PendingExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	comp := fixtures.CreateCompetition(ctx, "UI/UX Design", models.CompetitionIndividual, 50000, false)
	reg := fixtures.CreateOwnerRegistration(ctx, user, comp)
	bill := fixtures.CreateBill(ctx, reg, 123, models.PaymentPending)
	fixtures.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)

	_, _, err := store.Submit(ctx, &user, bill.ID, "https://files.example.com/proof2.jpg")
	if !errors.Is(err, paymentstore.ErrPendingExists) {
		t.Fatalf("expected ErrPendingExists, got %v", err)
	}

	// The blocking attempt rides along for the response body.
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Data == nil {
		t.Error("expected the pending attempt attached as error data")
	}
}

func TestStore_Cancel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	comp := fixtures.CreateCompetition(ctx, "UI/UX Design", models.CompetitionIndividual, 50000, false)
	reg := fixtures.CreateOwnerRegistration(ctx, user, comp)
	bill := fixtures.CreateBill(ctx, reg, 123, models.PaymentPending)
	payment := fixtures.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)

	if err := store.Cancel(ctx, user.ID, payment.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	var paymentDoc models.Payment
	if err := db.Collection("payments").FindOne(ctx, bson.M{"_id": payment.ID}).Decode(&paymentDoc); err != nil {
		t.Fatalf("FindOne payment failed: %v", err)
	}
	if paymentDoc.Status != models.AttemptCancel {
		t.Errorf("payment status: got %q, want %q", paymentDoc.Status, models.AttemptCancel)
	}
	var billDoc models.Bill
	if err := db.Collection("bills").FindOne(ctx, bson.M{"_id": bill.ID}).Decode(&billDoc); err != nil {
		t.Fatalf("FindOne bill failed: %v", err)
	}
	if billDoc.Status != models.PaymentCancel {
		t.Errorf("bill status: got %q, want %q", billDoc.Status, models.PaymentCancel)
	}
	var regDoc models.Registration
	if err := db.Collection("registrations").FindOne(ctx, bson.M{"_id": reg.ID}).Decode(&regDoc); err != nil {
		t.Fatalf("FindOne registration failed: %v", err)
	}
	if regDoc.PaymentStatus != models.PaymentCancel {
		t.Errorf("registration payment status: got %q, want %q", regDoc.PaymentStatus, models.PaymentCancel)
	}
}

func TestStore_Cancel_Guards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	other := fixtures.CreateUser(ctx, "Siti Rahma", "siti@example.com", "081234567891")
	comp := fixtures.CreateCompetition(ctx, "UI/UX Design", models.CompetitionIndividual, 50000, false)
	reg := fixtures.CreateOwnerRegistration(ctx, user, comp)
	bill := fixtures.CreateBill(ctx, reg, 123, models.PaymentPending)

	// Unknown payment id.
	if err := store.Cancel(ctx, user.ID, primitive.NewObjectID()); !errors.Is(err, paymentstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Only pending attempts can be withdrawn.
	settled := fixtures.CreatePayment(ctx, bill.ID, user.ID, models.AttemptAccepted)
	if err := store.Cancel(ctx, user.ID, settled.ID); !errors.Is(err, paymentstore.ErrNotPending) {
		t.Errorf("expected ErrNotPending, got %v", err)
	}

	// Only the submitter can withdraw.
	pending := fixtures.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)
	if err := store.Cancel(ctx, other.ID, pending.ID); !errors.Is(err, paymentstore.ErrNotYours) {
		t.Errorf("expected ErrNotYours, got %v", err)
	}
}

func TestStore_Verify_Approve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	comp := fixtures.CreateCompetition(ctx, "UI/UX Design", models.CompetitionIndividual, 50000, false)
	reg := fixtures.CreateOwnerRegistration(ctx, user, comp)
	bill := fixtures.CreateBill(ctx, reg, 123, models.PaymentPending)
	payment := fixtures.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)

	result, err := store.Verify(ctx, bill.ID, true)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.PaymentID != payment.ID {
		t.Errorf("verified payment id: got %s, want %s", result.PaymentID.Hex(), payment.ID.Hex())
	}
	if result.BillTotal != bill.BillTotal {
		t.Errorf("bill total: got %d, want %d", result.BillTotal, bill.BillTotal)
	}

	var paymentDoc models.Payment
	if err := db.Collection("payments").FindOne(ctx, bson.M{"_id": payment.ID}).Decode(&paymentDoc); err != nil {
		t.Fatalf("FindOne payment failed: %v", err)
	}
	if paymentDoc.Status != models.AttemptAccepted {
		t.Errorf("payment status: got %q, want %q", paymentDoc.Status, models.AttemptAccepted)
	}
	var billDoc models.Bill
	if err := db.Collection("bills").FindOne(ctx, bson.M{"_id": bill.ID}).Decode(&billDoc); err != nil {
		t.Fatalf("FindOne bill failed: %v", err)
	}
	if billDoc.Status != models.PaymentPaid {
		t.Errorf("bill status: got %q, want %q", billDoc.Status, models.PaymentPaid)
	}
	var regDoc models.Registration
	if err := db.Collection("registrations").FindOne(ctx, bson.M{"_id": reg.ID}).Decode(&regDoc); err != nil {
		t.Fatalf("FindOne registration failed: %v", err)
	}
	if regDoc.PaymentStatus != models.PaymentPaid {
		t.Errorf("registration payment status: got %q, want %q", regDoc.PaymentStatus, models.PaymentPaid)
	}
}

func TestStore_Verify_Reject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	comp := fixtures.CreateCompetition(ctx, "UI/UX Design", models.CompetitionIndividual, 50000, false)
	reg := fixtures.CreateOwnerRegistration(ctx, user, comp)
	bill := fixtures.CreateBill(ctx, reg, 123, models.PaymentPending)
	payment := fixtures.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)

	if _, err := store.Verify(ctx, bill.ID, false); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	// Rejection reopens the bill so the participant can try again.
	var paymentDoc models.Payment
	if err := db.Collection("payments").FindOne(ctx, bson.M{"_id": payment.ID}).Decode(&paymentDoc); err != nil {
		t.Fatalf("FindOne payment failed: %v", err)
	}
	if paymentDoc.Status != models.AttemptRejected {
		t.Errorf("payment status: got %q, want %q", paymentDoc.Status, models.AttemptRejected)
	}
	var billDoc models.Bill
	if err := db.Collection("bills").FindOne(ctx, bson.M{"_id": bill.ID}).Decode(&billDoc); err != nil {
		t.Fatalf("FindOne bill failed: %v", err)
	}
	if billDoc.Status != models.PaymentNotPaid {
		t.Errorf("bill status: got %q, want %q", billDoc.Status, models.PaymentNotPaid)
	}
}

func TestStore_Verify_Guards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	comp := fixtures.CreateCompetition(ctx, "UI/UX Design", models.CompetitionIndividual, 50000, false)
	reg := fixtures.CreateOwnerRegistration(ctx, user, comp)

	if _, err := store.Verify(ctx, primitive.NewObjectID(), true); !errors.Is(err, paymentstore.ErrBillNotFound) {
		t.Errorf("expected ErrBillNotFound, got %v", err)
	}

	// A bill that is not Pending cannot be verified.
	notPaid := fixtures.CreateBill(ctx, reg, 123, models.PaymentNotPaid)
	if _, err := store.Verify(ctx, notPaid.ID, true); !errors.Is(err, paymentstore.ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed, got %v", err)
	}

	// A Pending bill with no pending attempt is a data anomaly.
	if _, err := db.Collection("bills").UpdateOne(ctx,
		bson.M{"_id": notPaid.ID},
		bson.M{"$set": bson.M{"status": models.PaymentPending}}); err != nil {
		t.Fatalf("UpdateOne failed: %v", err)
	}
	if _, err := store.Verify(ctx, notPaid.ID, true); !errors.Is(err, paymentstore.ErrNoPending) {
		t.Errorf("expected ErrNoPending, got %v", err)
	}
}

func TestStore_ListByBill_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	comp := fixtures.CreateCompetition(ctx, "UI/UX Design", models.CompetitionIndividual, 50000, false)
	reg := fixtures.CreateOwnerRegistration(ctx, user, comp)
	bill := fixtures.CreateBill(ctx, reg, 123, models.PaymentPending)

	first := fixtures.CreatePayment(ctx, bill.ID, user.ID, models.AttemptRejected)
	second := fixtures.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)

	// Push the second attempt later in time.
	if _, err := db.Collection("payments").UpdateOne(ctx,
		bson.M{"_id": second.ID},
		bson.M{"$set": bson.M{"updated_at": second.UpdatedAt.Add(1_000_000_000)}}); err != nil {
		t.Fatalf("UpdateOne failed: %v", err)
	}

	list, err := store.ListByBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("ListByBill failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Error("payments should be ordered latest first")
	}
}

func TestStore_FirstNonRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := paymentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	comp := fixtures.CreateCompetition(ctx, "UI/UX Design", models.CompetitionIndividual, 50000, false)
	reg := fixtures.CreateOwnerRegistration(ctx, user, comp)
	bill := fixtures.CreateBill(ctx, reg, 123, models.PaymentPending)

	fixtures.CreatePayment(ctx, bill.ID, user.ID, models.AttemptRejected)

	got, err := store.FirstNonRejected(ctx, bill.ID)
	if err != nil {
		t.Fatalf("FirstNonRejected failed: %v", err)
	}
	if got != nil {
		t.Error("expected no live attempt when all are rejected")
	}

	live := fixtures.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)
	got, err = store.FirstNonRejected(ctx, bill.ID)
	if err != nil {
		t.Fatalf("FirstNonRejected failed: %v", err)
	}
	if got == nil || got.ID != live.ID {
		t.Error("expected the pending attempt to surface")
	}
}
