// internal/app/features/uploads/handler.go

// Package uploads receives proof images and submission files and stores them
// under a client-chosen folder.
package uploads

import (
	"context"
	"io"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// BlobStore is the slice of the storage backend the upload endpoint needs.
// Satisfied by any waffle storage.Store.
type BlobStore interface {
	Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error
	URL(path string) string
}

// Handler holds dependencies for the upload endpoint.
type Handler struct {
	Storage BlobStore
	Log     *zap.Logger
}

// NewHandler constructs an uploads Handler.
func NewHandler(store BlobStore, log *zap.Logger) *Handler {
	return &Handler{Storage: store, Log: log}
}
