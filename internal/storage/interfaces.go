package storage

import (
	"context"
	"talkmigrate/internal/models"
)

// ErrNotFound is returned by FindOne on an empty collection.
var ErrNotFound = models.ErrNotFound

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// Store is the document database the migration reads from and commits to.
// ReadAll returns records in the collection's natural order.
type Store interface {
	ReadAll(ctx context.Context, collection string) ([]models.Document, error)
	FindOne(ctx context.Context, collection string) (models.Document, error)
	DeleteAll(ctx context.Context, collection string) (int64, error)
	InsertMany(ctx context.Context, collection string, docs []any) error
	ReplaceOne(ctx context.Context, collection string, id string, doc any) error
	Close(ctx context.Context) error
}
