package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Response messages returned to clients.
const (
	MsgCreated      = "Item created successfully"
	MsgCreateFailed = "Failed to create item"
	MsgListFailed   = "Failed to list items"
	MsgUpdated      = "Item updated successfully"
	MsgUpdateFailed = "Failed to update item"
	MsgDeleted      = "Item deleted successfully"
	MsgDeleteFailed = "Failed to delete item"
	MsgItemNotFound = "Item not found"
	msgUpdatedMany  = "%d items updated successfully"
	msgDeletedMany  = "%d items deleted successfully"
)

// Service handles the business logic for items.
// Every operation issues exactly one repository call and never returns an
// error: failures are logged and folded into the returned Outcome.
type Service struct {
	repo    Repository
	logger  *slog.Logger
	timeout time.Duration
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used to report persistence failures.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOperationTimeout bounds every repository call. Zero means no bound
// beyond the caller's context.
func WithOperationTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.timeout = d
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository returns the underlying storage adapter.
func (s *Service) Repository() Repository {
	return s.repo
}

// CreateItem inserts item.
func (s *Service) CreateItem(ctx context.Context, item Item) Outcome {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.repo.Insert(ctx, item); err != nil {
		s.fail(ctx, "create", item.Name, err)
		return InternalError(MsgCreateFailed)
	}
	return Created(MsgCreated)
}

// ListItems returns every stored item.
func (s *Service) ListItems(ctx context.Context) Outcome {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	items, err := s.repo.List(ctx)
	if err != nil {
		s.fail(ctx, "list", "", err)
		return InternalError(MsgListFailed)
	}
	return Listed(items)
}

// UpdateItem sets the description of the items named item.Name.
func (s *Service) UpdateItem(ctx context.Context, item Item) Outcome {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	matched, err := s.repo.UpdateDescription(ctx, item.Name, item.Description)
	if err != nil {
		s.fail(ctx, "update", item.Name, err)
		return InternalError(MsgUpdateFailed)
	}
	return s.counted(ctx, "update", item.Name, matched, MsgUpdated, msgUpdatedMany)
}

// DeleteItem removes the items named req.Name.
func (s *Service) DeleteItem(ctx context.Context, req DeleteRequest) Outcome {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	deleted, err := s.repo.Delete(ctx, req.Name)
	if err != nil {
		s.fail(ctx, "delete", req.Name, err)
		return InternalError(MsgDeleteFailed)
	}
	return s.counted(ctx, "delete", req.Name, deleted, MsgDeleted, msgDeletedMany)
}

// counted maps an affected-record count onto an outcome. More than one match
// is reported in the message so callers can tell a multiplied write apart.
func (s *Service) counted(ctx context.Context, op, name string, n int64, one, many string) Outcome {
	switch {
	case n == 0:
		s.logger.DebugContext(ctx, "no item matched", "op", op, "name", name, "request_id", requestID(ctx))
		return NotFound(MsgItemNotFound)
	case n == 1:
		return Success(one)
	default:
		s.logger.WarnContext(ctx, "name matched several items", "op", op, "name", name, "count", n, "request_id", requestID(ctx))
		return Success(fmt.Sprintf(many, n))
	}
}

func (s *Service) fail(ctx context.Context, op, name string, err error) {
	s.logger.ErrorContext(ctx, "persistence call failed",
		"op", op,
		"name", name,
		"error", err,
		"request_id", requestID(ctx),
	)
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
