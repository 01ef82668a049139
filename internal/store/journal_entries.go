package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crewwell/crewwell-api/internal/model"
)

const journalEntryColumns = `id, tenant_id, user_id, title, content, mood, is_private,
	client_created_at, created_at, updated_at, synced_at, is_deleted`

func scanJournalEntry(row pgx.Row) (*model.JournalEntry, error) {
	var j model.JournalEntry
	var mood *string
	err := row.Scan(&j.ID, &j.TenantID, &j.UserID, &j.Title, &j.Content, &mood, &j.IsPrivate,
		&j.ClientCreatedAt, &j.CreatedAt, &j.UpdatedAt, &j.SyncedAt, &j.IsDeleted)
	if err != nil {
		return nil, err
	}
	if mood != nil {
		m := model.Mood(*mood)
		j.Mood = &m
	}
	return &j, nil
}

func moodParam(m *model.Mood) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}

// FindJournalEntry returns the entry with the given id inside the tenant, or
// nil when no such row is visible to the tenant.
func FindJournalEntry(ctx context.Context, q Querier, tenantID, id uuid.UUID) (*model.JournalEntry, error) {
	row := q.QueryRow(ctx, `
		SELECT `+journalEntryColumns+`
		FROM journal_entries
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)

	j, err := scanJournalEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return j, err
}

// InsertJournalEntry writes a new row. The caller stamps the server timestamps.
func InsertJournalEntry(ctx context.Context, q Querier, j *model.JournalEntry) error {
	_, err := q.Exec(ctx, `
		INSERT INTO journal_entries (`+journalEntryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, j.ID, j.TenantID, j.UserID, j.Title, j.Content, moodParam(j.Mood), j.IsPrivate,
		j.ClientCreatedAt, j.CreatedAt, j.UpdatedAt, j.SyncedAt, j.IsDeleted)
	return err
}

// UpdateJournalEntryIfNewer applies the patch only when the client's
// timestamp is strictly newer than the stored updated_at.
func UpdateJournalEntryIfNewer(ctx context.Context, q Querier, j *model.JournalEntry, clientUpdatedAt time.Time) (bool, error) {
	tag, err := q.Exec(ctx, `
		UPDATE journal_entries
		SET title = $3, content = $4, mood = $5, is_private = $6, is_deleted = $7,
		    updated_at = $8, synced_at = $8
		WHERE tenant_id = $1 AND id = $2 AND $9 > updated_at
	`, j.TenantID, j.ID, j.Title, j.Content, moodParam(j.Mood), j.IsPrivate, j.IsDeleted,
		j.UpdatedAt, clientUpdatedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListJournalEntriesUpdatedSince returns the user's rows with updated_at
// after since, tombstones included.
func ListJournalEntriesUpdatedSince(ctx context.Context, q Querier, tenantID, userID uuid.UUID, since time.Time) ([]model.JournalEntry, error) {
	rows, err := q.Query(ctx, `
		SELECT `+journalEntryColumns+`
		FROM journal_entries
		WHERE tenant_id = $1 AND user_id = $2 AND updated_at > $3
		ORDER BY updated_at, id
	`, tenantID, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.JournalEntry, 0)
	for rows.Next() {
		j, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}
