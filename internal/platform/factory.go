package platform

import (
	"context"

	"github.com/aretw0/itemstore/pkg/core"
)

// New provisions the repository and wires the item service on top of it.
//
//	svc, err := itemstore.New(ctx, os.Getenv("MONGO_URI"), itemstore.WithLogger(logger))
func New(ctx context.Context, uri string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo, err := initRepository(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	return core.NewService(repo,
		core.WithServiceLogger(o.logger),
		core.WithOperationTimeout(o.operationTimeout),
	), nil
}
