// internal/app/features/payments/handlers_test.go
package payments

import (
	"net/http"
	"net/http/httptest"
	"testing"

	paymentstore "github.com/dalemusser/contesthub/internal/app/store/payments"
	userstore "github.com/dalemusser/contesthub/internal/app/store/users"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"github.com/dalemusser/contesthub/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *mongo.Database) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()
	h := NewHandler(userstore.New(db, log), paymentstore.New(db, log), nil, log)
	return h, db
}

func TestHandlePay(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Jane", "jane@example.com", "081234567890")
	comp := f.CreateCompetition(ctx, "Essay", models.CompetitionIndividual, 50000, false)
	reg := f.CreateOwnerRegistration(ctx, user, comp)
	bill := f.CreateBill(ctx, reg, 123, models.PaymentNotPaid)

	req := testutil.WithIdentity(
		testutil.NewJSONRequest(t, http.MethodPost, "/pay",
			map[string]string{"billId": bill.ID.Hex(), "imageUrl": "https://files.example.com/proof.jpg"}),
		testutil.UserIdentity(user.ID),
	)
	rec := httptest.NewRecorder()
	h.HandlePay(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string         `json:"message"`
		Data    paymentReceipt `json:"data"`
	}
	testutil.DecodeBody(t, rec, &resp)
	require.Equal(t, "Successfully send the payment. Please wait admin verification", resp.Message)
	require.Equal(t, bill.ID.Hex(), resp.Data.BillID)
	require.Equal(t, bill.BillTotal, resp.Data.Total)
	require.NotEmpty(t, resp.Data.PaymentID)

	// Bill and registration follow the attempt to Pending.
	var updatedBill models.Bill
	require.NoError(t, db.Collection("bills").FindOne(ctx, bson.M{"_id": bill.ID}).Decode(&updatedBill))
	require.Equal(t, models.PaymentPending, updatedBill.Status)

	var updatedReg models.Registration
	require.NoError(t, db.Collection("registrations").FindOne(ctx, bson.M{"_id": reg.ID}).Decode(&updatedReg))
	require.Equal(t, models.PaymentPending, updatedReg.PaymentStatus)
}

func TestHandlePayUnknownBill(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Jane", "jane@example.com", "081234567890")

	req := testutil.WithIdentity(
		testutil.NewJSONRequest(t, http.MethodPost, "/pay",
			map[string]string{"billId": "000000000000000000000000", "imageUrl": "x"}),
		testutil.UserIdentity(user.ID),
	)
	rec := httptest.NewRecorder()
	h.HandlePay(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeBody(t, rec, &resp)
	require.Equal(t, "Billing is not found", resp.Message)
}

func TestHandlePayUnknownUser(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithIdentity(
		testutil.NewJSONRequest(t, http.MethodPost, "/pay",
			map[string]string{"billId": "000000000000000000000000", "imageUrl": "x"}),
		testutil.AdminIdentity(), // id not present in the users collection
	)
	rec := httptest.NewRecorder()
	h.HandlePay(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeBody(t, rec, &resp)
	require.Equal(t, "User is not found", resp.Message)
}

func TestHandlePayPendingExists(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Jane", "jane@example.com", "081234567890")
	comp := f.CreateCompetition(ctx, "Essay", models.CompetitionIndividual, 50000, false)
	reg := f.CreateOwnerRegistration(ctx, user, comp)
	bill := f.CreateBill(ctx, reg, 123, models.PaymentPending)
	f.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)

	req := testutil.WithIdentity(
		testutil.NewJSONRequest(t, http.MethodPost, "/pay",
			map[string]string{"billId": bill.ID.Hex(), "imageUrl": "x"}),
		testutil.UserIdentity(user.ID),
	)
	rec := httptest.NewRecorder()
	h.HandlePay(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string          `json:"message"`
		Data    *models.Payment `json:"data"`
	}
	testutil.DecodeBody(t, rec, &resp)
	require.Equal(t,
		"There is payment request that still not verified by admin. Please wait for the verification",
		resp.Message)
	require.NotNil(t, resp.Data) // the blocking attempt rides along
}

func TestHandleCancel(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Jane", "jane@example.com", "081234567890")
	comp := f.CreateCompetition(ctx, "Essay", models.CompetitionIndividual, 50000, false)
	reg := f.CreateOwnerRegistration(ctx, user, comp)
	bill := f.CreateBill(ctx, reg, 123, models.PaymentPending)
	payment := f.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)

	req := testutil.WithIdentity(
		testutil.NewJSONRequest(t, http.MethodPost, "/cancel",
			map[string]string{"paymentId": payment.ID.Hex()}),
		testutil.UserIdentity(user.ID),
	)
	rec := httptest.NewRecorder()
	h.HandleCancel(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	testutil.DecodeBody(t, rec, &resp)
	require.Equal(t, "Payment is already cancelled", resp.Message)
	require.Equal(t, payment.ID.Hex(), resp.Data["payment_id"])

	var updatedBill models.Bill
	require.NoError(t, db.Collection("bills").FindOne(ctx, bson.M{"_id": bill.ID}).Decode(&updatedBill))
	require.Equal(t, models.PaymentCancel, updatedBill.Status)
}

func TestHandleCancelSomeoneElses(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateUser(ctx, "Owner", "owner@example.com", "081200000001")
	other := f.CreateUser(ctx, "Other", "other@example.com", "081200000002")
	comp := f.CreateCompetition(ctx, "Essay", models.CompetitionIndividual, 50000, false)
	reg := f.CreateOwnerRegistration(ctx, owner, comp)
	bill := f.CreateBill(ctx, reg, 123, models.PaymentPending)
	payment := f.CreatePayment(ctx, bill.ID, owner.ID, models.AttemptPending)

	req := testutil.WithIdentity(
		testutil.NewJSONRequest(t, http.MethodPost, "/cancel",
			map[string]string{"paymentId": payment.ID.Hex()}),
		testutil.UserIdentity(other.ID),
	)
	rec := httptest.NewRecorder()
	h.HandleCancel(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeBody(t, rec, &resp)
	require.Equal(t, "You only can cancel your own payment", resp.Message)
}

func TestHandleVerifyApprove(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Jane", "jane@example.com", "081234567890")
	comp := f.CreateCompetition(ctx, "Essay", models.CompetitionIndividual, 50000, false)
	reg := f.CreateOwnerRegistration(ctx, user, comp)
	bill := f.CreateBill(ctx, reg, 123, models.PaymentPending)
	payment := f.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)

	rec := httptest.NewRecorder()
	h.HandleVerify(rec, testutil.NewJSONRequest(t, http.MethodPost, "/verify",
		map[string]any{"billId": bill.ID.Hex(), "status": true}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string         `json:"message"`
		Data    paymentReceipt `json:"data"`
	}
	testutil.DecodeBody(t, rec, &resp)
	require.Equal(t, "Successfully change payment status", resp.Message)
	require.Equal(t, payment.ID.Hex(), resp.Data.PaymentID)
	require.Equal(t, bill.BillTotal, resp.Data.Total)

	var updatedReg models.Registration
	require.NoError(t, db.Collection("registrations").FindOne(ctx, bson.M{"_id": reg.ID}).Decode(&updatedReg))
	require.Equal(t, models.PaymentPaid, updatedReg.PaymentStatus)
}

func TestHandleVerifyReject(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Jane", "jane@example.com", "081234567890")
	comp := f.CreateCompetition(ctx, "Essay", models.CompetitionIndividual, 50000, false)
	reg := f.CreateOwnerRegistration(ctx, user, comp)
	bill := f.CreateBill(ctx, reg, 123, models.PaymentPending)
	f.CreatePayment(ctx, bill.ID, user.ID, models.AttemptPending)

	rec := httptest.NewRecorder()
	h.HandleVerify(rec, testutil.NewJSONRequest(t, http.MethodPost, "/verify",
		map[string]any{"billId": bill.ID.Hex(), "status": false}))

	require.Equal(t, http.StatusOK, rec.Code)

	// Rejection returns the bill to Not Paid so the participant can retry.
	var updatedBill models.Bill
	require.NoError(t, db.Collection("bills").FindOne(ctx, bson.M{"_id": bill.ID}).Decode(&updatedBill))
	require.Equal(t, models.PaymentNotPaid, updatedBill.Status)
}

func TestHandleVerifyNotAllowed(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Jane", "jane@example.com", "081234567890")
	comp := f.CreateCompetition(ctx, "Essay", models.CompetitionIndividual, 50000, false)
	reg := f.CreateOwnerRegistration(ctx, user, comp)
	bill := f.CreateBill(ctx, reg, 123, models.PaymentNotPaid)

	rec := httptest.NewRecorder()
	h.HandleVerify(rec, testutil.NewJSONRequest(t, http.MethodPost, "/verify",
		map[string]any{"billId": bill.ID.Hex(), "status": true}))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeBody(t, rec, &resp)
	require.Equal(t, "Not allowed to perform the action", resp.Message)
}
