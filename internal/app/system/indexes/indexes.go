// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureUserDetails(ctx, db); err != nil {
		problems = append(problems, "user_details: "+err.Error())
	}
	if err := ensureCompetitions(ctx, db); err != nil {
		problems = append(problems, "competitions: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db); err != nil {
		problems = append(problems, "registrations: "+err.Error())
	}
	if err := ensureBills(ctx, db); err != nil {
		problems = append(problems, "bills: "+err.Error())
	}
	if err := ensurePayments(ctx, db); err != nil {
		problems = append(problems, "payments: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		// Load what already exists for this collection.
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
			cur.Close(ctx)
		}

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.String("took", time.Since(start).String()))
				continue
			}

			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				errs = append(errs, createFailure(coll.Name(), desiredName, desiredSig, desiredUnique, err))
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.String("took", time.Since(start).String()))
			continue
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				// Same keys exist under another name; leave the old index in
				// place rather than risk dropping one a peer just built.
				zap.L().Warn("index exists under a different name, reusing",
					zap.String("collection", coll.Name()),
					zap.String("name", desiredName),
					zap.String("keys", desiredSig))
				continue
			}
			errs = append(errs, createFailure(coll.Name(), desiredName, desiredSig, desiredUnique, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func createFailure(coll, name, sig string, unique *bool, err error) string {
	if isDuplicateKeyErr(err) && unique != nil && *unique {
		helper := ""
		switch {
		case coll == "users" && strings.Contains(sig, "email:1"):
			helper = " - duplicates exist on users.email. Example finder:\n" +
				`db.users.aggregate([{ $group: { _id: "$email", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])`
		case coll == "registrations":
			helper = " - a user holds more than one registration for the same competition; resolve before enabling the guard"
		}
		return fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)%s", coll, name, helper)
	}
	return fmt.Sprintf("%s(%s): %v", coll, name, err)
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email and phone must each be unique across all users
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_phone"),
		},
		// Admin user lists: filter by role, newest first
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_users_role_created"),
		},
	})
}

func ensureUserDetails(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("user_details")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One detail document per user
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_details_user"),
		},
	})
}

func ensureCompetitions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("competitions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Catalog listing: active competitions by name
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_competitions_active_name"),
		},
	})
}

func ensureRegistrations(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("registrations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Duplicate-registration guard: one registration per user per competition
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "competition_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_reg_user_competition"),
		},
		// Join-by-code and team rosters
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetName("idx_reg_code"),
		},
		// "My competitions" lists, newest first
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_reg_user_created"),
		},
		// Admin listing per competition
		{
			Keys:    bson.D{{Key: "competition_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_reg_competition_created"),
		},
	})
}

func ensureBills(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("bills")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One bill per owning registration
		{
			Keys:    bson.D{{Key: "registration_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_bills_registration"),
		},
		// Per-user billing lookups
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_bills_user"),
		},
	})
}

func ensurePayments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("payments")
	// The pending guard is partial so cancelled and rejected attempts do not
	// block a re-submission for the same bill.
	pendingOnly := bson.D{{Key: "status", Value: "Pending"}}
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "bill_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(pendingOnly).
				SetName("uniq_payments_bill_pending"),
		},
		// Attempt history per bill, latest first
		{
			Keys:    bson.D{{Key: "bill_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_payments_bill_updated"),
		},
	})
}
