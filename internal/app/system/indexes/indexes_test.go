package indexes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestKeySig(t *testing.T) {
	tests := []struct {
		name string
		keys bson.D
		want string
	}{
		{
			name: "single key",
			keys: bson.D{{Key: "email", Value: 1}},
			want: "email:1",
		},
		{
			name: "compound preserves order",
			keys: bson.D{{Key: "user_id", Value: 1}, {Key: "competition_id", Value: 1}},
			want: "user_id:1, competition_id:1",
		},
		{
			name: "descending key",
			keys: bson.D{{Key: "bill_id", Value: 1}, {Key: "updated_at", Value: -1}},
			want: "bill_id:1, updated_at:-1",
		},
		{
			name: "empty",
			keys: bson.D{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keySig(tt.keys))
		})
	}
}

func TestSameBoolPtr(t *testing.T) {
	truthy := true
	falsy := false

	assert.True(t, sameBoolPtr(nil, nil))
	assert.True(t, sameBoolPtr(nil, &falsy))
	assert.True(t, sameBoolPtr(&truthy, &truthy))
	assert.False(t, sameBoolPtr(&truthy, nil))
	assert.False(t, sameBoolPtr(&truthy, &falsy))
}

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, isDuplicateKeyErr(nil))
	assert.False(t, isDuplicateKeyErr(errors.New("connection reset")))

	assert.True(t, isDuplicateKeyErr(mongo.CommandError{Code: 11000}))
	assert.True(t, isDuplicateKeyErr(mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}))
	assert.True(t, isDuplicateKeyErr(errors.New("E11000 duplicate key error index")))
	assert.True(t, isDuplicateKeyErr(errors.New("write failed: Duplicate Key violation")))
}

func TestIsOptionsConflictErr(t *testing.T) {
	assert.False(t, isOptionsConflictErr(nil))
	assert.False(t, isOptionsConflictErr(errors.New("timeout")))
	assert.True(t, isOptionsConflictErr(errors.New("(IndexOptionsConflict) Index with name x already exists")))
}

func TestCreateFailure_UniqueHints(t *testing.T) {
	dup := errors.New("E11000 duplicate key error index")
	unique := true

	msg := createFailure("users", "uniq_users_email", "email:1", &unique, dup)
	assert.Contains(t, msg, "duplicates exist on users.email")

	msg = createFailure("registrations", "uniq_reg_user_competition", "user_id:1, competition_id:1", &unique, dup)
	assert.Contains(t, msg, "more than one registration")

	// Non-duplicate errors pass through untouched.
	msg = createFailure("bills", "uniq_bills_registration", "registration_id:1", &unique, errors.New("boom"))
	assert.Contains(t, msg, "boom")
}
