package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crewwell/crewwell-api/internal/model"
)

const moodLogColumns = `id, tenant_id, user_id, mood, intensity, notes,
	client_created_at, created_at, updated_at, synced_at, is_deleted`

func scanMoodLog(row pgx.Row) (*model.MoodLog, error) {
	var m model.MoodLog
	var mood string
	err := row.Scan(&m.ID, &m.TenantID, &m.UserID, &mood, &m.Intensity, &m.Notes,
		&m.ClientCreatedAt, &m.CreatedAt, &m.UpdatedAt, &m.SyncedAt, &m.IsDeleted)
	if err != nil {
		return nil, err
	}
	m.Mood = model.Mood(mood)
	return &m, nil
}

// FindMoodLog returns the mood log with the given id inside the tenant, or
// nil when no such row is visible to the tenant.
func FindMoodLog(ctx context.Context, q Querier, tenantID, id uuid.UUID) (*model.MoodLog, error) {
	row := q.QueryRow(ctx, `
		SELECT `+moodLogColumns+`
		FROM mood_logs
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)

	m, err := scanMoodLog(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

// InsertMoodLog writes a new row. The caller stamps the server timestamps.
func InsertMoodLog(ctx context.Context, q Querier, m *model.MoodLog) error {
	_, err := q.Exec(ctx, `
		INSERT INTO mood_logs (`+moodLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, m.ID, m.TenantID, m.UserID, string(m.Mood), m.Intensity, m.Notes,
		m.ClientCreatedAt, m.CreatedAt, m.UpdatedAt, m.SyncedAt, m.IsDeleted)
	return err
}

// UpdateMoodLogIfNewer applies the patch only when the client's timestamp is
// strictly newer than the stored updated_at. Strict > keeps replayed pushes
// idempotent. Returns whether the update applied.
func UpdateMoodLogIfNewer(ctx context.Context, q Querier, m *model.MoodLog, clientUpdatedAt time.Time) (bool, error) {
	tag, err := q.Exec(ctx, `
		UPDATE mood_logs
		SET mood = $3, intensity = $4, notes = $5, is_deleted = $6,
		    updated_at = $7, synced_at = $7
		WHERE tenant_id = $1 AND id = $2 AND $8 > updated_at
	`, m.TenantID, m.ID, string(m.Mood), m.Intensity, m.Notes, m.IsDeleted,
		m.UpdatedAt, clientUpdatedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListMoodLogsUpdatedSince returns the user's rows with updated_at after
// since, tombstones included, ordered for deterministic client checkpointing.
func ListMoodLogsUpdatedSince(ctx context.Context, q Querier, tenantID, userID uuid.UUID, since time.Time) ([]model.MoodLog, error) {
	rows, err := q.Query(ctx, `
		SELECT `+moodLogColumns+`
		FROM mood_logs
		WHERE tenant_id = $1 AND user_id = $2 AND updated_at > $3
		ORDER BY updated_at, id
	`, tenantID, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.MoodLog, 0)
	for rows.Next() {
		m, err := scanMoodLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
