// Package store is the sole gateway to the relational backing store.
//
// Tenant isolation is enforced here, not by database RLS: every function
// takes an explicit tenant (or Scope) argument and binds tenant_id in its
// query. A row outside the caller's tenant is indistinguishable from a row
// that does not exist, so tenant existence cannot be probed.
//
// Functions take a Querier rather than a pool so the orchestrator's
// transaction flows through every read and write of a sync call.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crewwell/crewwell-api/internal/model"
)

// Querier is the query subset satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Scope is the authenticated caller context applied to list operations.
// Crew see only their own rows; admin and psychologist roles widen to the
// tenant for check-ins only.
type Scope struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     model.Role
}
