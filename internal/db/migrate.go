package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// statements is the canonical DDL for the sync core. Every statement is
// idempotent so Migrate can run on every startup.
//
// Primary keys on the mutable tables are (tenant_id, id): the client mints
// the id, and the same id pushed under a different tenant must create a
// distinct row rather than collide.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS mood_logs (
		id                uuid        NOT NULL,
		tenant_id         uuid        NOT NULL,
		user_id           uuid        NOT NULL,
		mood              text        NOT NULL,
		intensity         int,
		notes             text,
		client_created_at timestamptz NOT NULL,
		created_at        timestamptz NOT NULL,
		updated_at        timestamptz NOT NULL,
		synced_at         timestamptz NOT NULL,
		is_deleted        boolean     NOT NULL DEFAULT false,
		PRIMARY KEY (tenant_id, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mood_logs_tenant_user ON mood_logs (tenant_id, user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_mood_logs_updated_at ON mood_logs (updated_at)`,

	`CREATE TABLE IF NOT EXISTS journal_entries (
		id                uuid        NOT NULL,
		tenant_id         uuid        NOT NULL,
		user_id           uuid        NOT NULL,
		title             text,
		content           text        NOT NULL,
		mood              text,
		is_private        boolean     NOT NULL DEFAULT true,
		client_created_at timestamptz NOT NULL,
		created_at        timestamptz NOT NULL,
		updated_at        timestamptz NOT NULL,
		synced_at         timestamptz NOT NULL,
		is_deleted        boolean     NOT NULL DEFAULT false,
		PRIMARY KEY (tenant_id, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_entries_tenant_user ON journal_entries (tenant_id, user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_entries_updated_at ON journal_entries (updated_at)`,

	`CREATE TABLE IF NOT EXISTS check_ins (
		id                uuid        NOT NULL,
		tenant_id         uuid        NOT NULL,
		user_id           uuid        NOT NULL,
		scheduled_for     timestamptz NOT NULL,
		completed_at      timestamptz,
		mood              text,
		responses         jsonb,
		needs_attention   boolean     NOT NULL DEFAULT false,
		reviewed_by       uuid,
		reviewed_at       timestamptz,
		review_notes      text,
		client_created_at timestamptz NOT NULL,
		created_at        timestamptz NOT NULL,
		updated_at        timestamptz NOT NULL,
		synced_at         timestamptz NOT NULL,
		is_deleted        boolean     NOT NULL DEFAULT false,
		PRIMARY KEY (tenant_id, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_check_ins_tenant_user ON check_ins (tenant_id, user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_check_ins_updated_at ON check_ins (updated_at)`,

	`CREATE TABLE IF NOT EXISTS resources (
		id                uuid        PRIMARY KEY,
		tenant_id         uuid,
		title             text        NOT NULL,
		type              text        NOT NULL,
		category          text        NOT NULL DEFAULT '',
		tags              text[]      NOT NULL DEFAULT '{}',
		is_published      boolean     NOT NULL DEFAULT false,
		offline_available boolean     NOT NULL DEFAULT false,
		created_at        timestamptz NOT NULL,
		updated_at        timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_resources_tenant ON resources (tenant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_resources_updated_at ON resources (updated_at)`,

	`CREATE TABLE IF NOT EXISTS sync_cursors (
		tenant_id      uuid        NOT NULL,
		user_id        uuid        NOT NULL,
		device_id      uuid        NOT NULL,
		entity         text        NOT NULL,
		last_synced_at timestamptz NOT NULL,
		last_record_id uuid,
		sync_cursor    text,
		PRIMARY KEY (tenant_id, user_id, device_id, entity)
	)`,
}

// Migrate applies the schema. Safe to call on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	log.Info().Int("statements", len(statements)).Msg("schema migration applied")
	return nil
}
