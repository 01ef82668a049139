// Package syncservice implements the bidirectional sync engine: per-entity
// merge with last-write-wins on updated_at, the pull planner, sync cursor
// bookkeeping, and the orchestrator tying them together in one transaction.
package syncservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crewwell/crewwell-api/internal/auth"
	"github.com/crewwell/crewwell-api/internal/store"
)

// ErrInvalidEnvelope marks request-envelope failures the HTTP layer maps to
// 400. Per-change validation failures never produce this; they land in the
// response's rejected list instead.
var ErrInvalidEnvelope = errors.New("invalid sync envelope")

// Service encapsulates the sync engine over a shared connection pool.
type Service struct {
	DB *pgxpool.Pool
}

// New creates a sync Service
func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func scopeOf(ident auth.Identity) store.Scope {
	return store.Scope{TenantID: ident.TenantID, UserID: ident.UserID, Role: ident.Role}
}

// Status returns the cursor rows for one device of the caller.
func (s *Service) Status(ctx context.Context, ident auth.Identity, deviceID string) (*StatusResponse, error) {
	dev, err := uuid.Parse(deviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: deviceId must be a UUID", ErrInvalidEnvelope)
	}

	cursors, err := store.ListCursors(ctx, s.DB, ident.TenantID, ident.UserID, dev)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{DeviceID: dev.String(), Cursors: cursors}, nil
}
