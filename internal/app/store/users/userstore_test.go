package userstore_test

import (
	"errors"
	"strings"
	"testing"

	userstore "github.com/dalemusser/contesthub/internal/app/store/users"
	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/domain/models"
	"github.com/dalemusser/contesthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := &models.User{
		FullName: "Budi Santoso",
		Nickname: "Budi",
		Email:    "budi@example.com",
		Password: "hashed",
		Phone:    "081234567890",
		Role:     models.RoleUser,
	}
	d := &models.UserDetail{College: "Telkom University", Major: "Informatics"}

	if err := store.Create(ctx, u, d); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.ID.IsZero() {
		t.Fatal("Create should assign the user id")
	}
	if d.UserID != u.ID {
		t.Error("detail should reference the created user")
	}

	count, err := db.Collection("user_details").CountDocuments(ctx, bson.M{"user_id": u.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 detail document, got %d", count)
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")

	err := store.Create(ctx,
		&models.User{FullName: "Other", Email: "budi@example.com", Phone: "081234567899"},
		&models.UserDetail{})
	if err == nil {
		t.Fatal("expected duplicate email error")
	}
	if apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("kind: got %v, want Conflict", apperr.KindOf(err))
	}
	if !strings.Contains(err.Error(), "budi@example.com") {
		t.Errorf("message should name the email, got %q", err.Error())
	}
}

func TestStore_Create_DuplicatePhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")

	err := store.Create(ctx,
		&models.User{FullName: "Other", Email: "other@example.com", Phone: "081234567890"},
		&models.UserDetail{})
	if err == nil {
		t.Fatal("expected duplicate phone error")
	}
	if !strings.Contains(err.Error(), "081234567890") {
		t.Errorf("message should name the phone number, got %q", err.Error())
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := primitive.NewObjectID()
	_, err := store.GetByID(ctx, id)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("kind: got %v, want NotFound", apperr.KindOf(err))
	}
	if !strings.Contains(err.Error(), id.Hex()) {
		t.Errorf("message should name the id, got %q", err.Error())
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")

	got, err := store.GetByEmail(ctx, "budi@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("id: got %s, want %s", got.ID.Hex(), created.ID.Hex())
	}

	_, err = store.GetByEmail(ctx, "missing@example.com")
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_UpdatePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")

	if err := store.UpdatePassword(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}

	var got models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": user.ID}).Decode(&got); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if got.Password != "new-hash" {
		t.Errorf("password hash not updated, got %q", got.Password)
	}

	if err := store.UpdatePassword(ctx, primitive.NewObjectID(), "x"); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SetVerified(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")

	if err := store.SetVerified(ctx, user.ID, false); err != nil {
		t.Fatalf("SetVerified failed: %v", err)
	}

	var got models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": user.ID}).Decode(&got); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if got.IsVerified {
		t.Error("user should be unverified")
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	fixtures.CreateDetail(ctx, user.ID, "Telkom University")

	nickname := "Bud"
	college := "ITB"
	err := store.UpdateProfile(ctx, user.ID, userstore.ProfileUpdate{
		Nickname: &nickname,
		College:  &college,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	var gotUser models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": user.ID}).Decode(&gotUser); err != nil {
		t.Fatalf("FindOne user failed: %v", err)
	}
	if gotUser.Nickname != "Bud" {
		t.Errorf("nickname: got %q, want %q", gotUser.Nickname, "Bud")
	}
	if gotUser.FullName != "Budi Santoso" {
		t.Errorf("untouched field changed: %q", gotUser.FullName)
	}

	var gotDetail models.UserDetail
	if err := db.Collection("user_details").FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&gotDetail); err != nil {
		t.Fatalf("FindOne detail failed: %v", err)
	}
	if gotDetail.College != "ITB" {
		t.Errorf("college: got %q, want %q", gotDetail.College, "ITB")
	}
}

func TestStore_List_ExcludesAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Budi Santoso", "budi@example.com", "081234567890")
	fixtures.CreateAdmin(ctx, "admin@example.com")

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].Role != models.RoleUser {
		t.Errorf("role: got %q, want %q", users[0].Role, models.RoleUser)
	}
}
