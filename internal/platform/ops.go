package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/itemstore/pkg/adapters/fs"
	"github.com/aretw0/itemstore/pkg/adapters/memory"
	"github.com/aretw0/itemstore/pkg/adapters/mongodb"
	"github.com/aretw0/itemstore/pkg/core"
)

// Init provisions the configured repository and makes it ready for use.
// The 'uri' argument is adapter-specific: a connection string for "mongo",
// a directory for "fs", ignored for "memory".
func Init(ctx context.Context, uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initRepository(ctx, uri, o)
}

func initRepository(ctx context.Context, uri string, o *options) (core.Repository, error) {
	// 1. Injected repository wins
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Select adapter
	var repo core.Repository
	switch o.adapter {
	case AdapterMongo:
		// Connect already verified the store answers.
		mongoRepo, err := mongodb.Connect(ctx, mongodb.Config{
			URI:            uri,
			Database:       o.database,
			Collection:     o.collection,
			ConnectTimeout: o.connectTimeout,
			Logger:         o.logger,
		})
		if err != nil {
			return nil, err
		}
		return mongoRepo, nil
	case AdapterFS:
		if uri == "" {
			return nil, fmt.Errorf("fs adapter requires a directory")
		}
		repo = fs.NewRepository(fs.Config{
			Path:     uri,
			ReadOnly: o.readOnly,
			Watch:    o.watch,
			Logger:   o.logger,
		})
	case AdapterMemory:
		repo = memory.NewRepository()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	// 3. Run initialization
	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}
