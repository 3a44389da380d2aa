package storage

import (
	"context"
	"fmt"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/structures"
)

// SourceStore and TargetStore let the injector tell the two databases apart.
type SourceStore Store
type TargetStore Store

func NewSourceStore(ctx context.Context, conf *structures.Config, logger providers.Logger) (SourceStore, error) {
	return newStore(ctx, conf.Source, logger)
}

func NewTargetStore(ctx context.Context, conf *structures.Config, logger providers.Logger) (TargetStore, error) {
	return newStore(ctx, conf.Target, logger)
}

func newStore(ctx context.Context, conf structures.StoreConfig, logger providers.Logger) (Store, error) {
	switch conf.Driver {
	case "mongo":
		return NewMongoStore(ctx, conf.URI, conf.Database, logger)
	case "file":
		compressor, err := NewZstdCompressor()
		if err != nil {
			return nil, err
		}
		return NewFileStore(conf.Dir, compressor, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", conf.Driver)
	}
}
