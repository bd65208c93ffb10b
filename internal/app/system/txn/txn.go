// internal/app/system/txn/txn.go

// Package txn wraps multi-document work in a MongoDB transaction, with a
// best-effort fallback for deployments that cannot run transactions
// (standalone mongod in dev). The registration and payment workflows write
// two to three related documents at a time; partial writes must never be
// observable, so every such sequence goes through Run.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a session transaction. The context passed to fn is
// the session context; all collection operations inside fn must use it to
// participate in the transaction.
//
// If the server does not support transactions, Run logs a warning and runs
// fn without one. The happy path is identical; only crash atomicity is lost,
// which is acceptable for development against a standalone server.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			warnNoTxn(log, err)
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		warnNoTxn(log, err)
		return fn(ctx)
	}
	return err
}

func warnNoTxn(log *zap.Logger, err error) {
	if log != nil {
		log.Warn("transactions unavailable, running writes without a transaction",
			zap.Error(err))
	}
}

// Transaction-related server error codes:
// 20 IllegalOperation, 51 NoSuchTransaction precursor, 263 OperationNotSupportedInTransaction.
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone server, old wire version, or a
// session/transaction feature gap). Matching is best-effort: known command
// error codes first, then keyword heuristics on the message.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		if notSupportedCodes[ce.Code] {
			return true
		}
	}

	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "transaction") && strings.Contains(s, "replica set"):
		return true
	case strings.Contains(s, "session") && strings.Contains(s, "not supported"):
		return true
	case strings.Contains(s, "transaction") && strings.Contains(s, "session"):
		return true
	case strings.Contains(s, "illegal operation"):
		return true
	}
	return false
}
