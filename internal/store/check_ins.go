package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crewwell/crewwell-api/internal/model"
)

const checkInColumns = `id, tenant_id, user_id, scheduled_for, completed_at, mood, responses,
	needs_attention, reviewed_by, reviewed_at, review_notes,
	client_created_at, created_at, updated_at, synced_at, is_deleted`

func scanCheckIn(row pgx.Row) (*model.CheckIn, error) {
	var c model.CheckIn
	var mood *string
	var responses []byte
	err := row.Scan(&c.ID, &c.TenantID, &c.UserID, &c.ScheduledFor, &c.CompletedAt, &mood, &responses,
		&c.NeedsAttention, &c.ReviewedBy, &c.ReviewedAt, &c.ReviewNotes,
		&c.ClientCreatedAt, &c.CreatedAt, &c.UpdatedAt, &c.SyncedAt, &c.IsDeleted)
	if err != nil {
		return nil, err
	}
	if mood != nil {
		m := model.Mood(*mood)
		c.Mood = &m
	}
	if len(responses) > 0 {
		if err := json.Unmarshal(responses, &c.Responses); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func responsesParam(m map[string]any) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

// FindCheckIn returns the check-in with the given id inside the tenant, or
// nil when no such row is visible to the tenant.
func FindCheckIn(ctx context.Context, q Querier, tenantID, id uuid.UUID) (*model.CheckIn, error) {
	row := q.QueryRow(ctx, `
		SELECT `+checkInColumns+`
		FROM check_ins
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)

	c, err := scanCheckIn(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// InsertCheckIn writes a new row. The caller stamps the server timestamps.
func InsertCheckIn(ctx context.Context, q Querier, c *model.CheckIn) error {
	resp, err := responsesParam(c.Responses)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `
		INSERT INTO check_ins (`+checkInColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, c.ID, c.TenantID, c.UserID, c.ScheduledFor, c.CompletedAt, moodParam(c.Mood), resp,
		c.NeedsAttention, c.ReviewedBy, c.ReviewedAt, c.ReviewNotes,
		c.ClientCreatedAt, c.CreatedAt, c.UpdatedAt, c.SyncedAt, c.IsDeleted)
	return err
}

// UpdateCheckInIfNewer applies the patch only when the client's timestamp is
// strictly newer than the stored updated_at. The merge engine decides which
// review field values land here; the store writes what it is given.
func UpdateCheckInIfNewer(ctx context.Context, q Querier, c *model.CheckIn, clientUpdatedAt time.Time) (bool, error) {
	resp, err := responsesParam(c.Responses)
	if err != nil {
		return false, err
	}
	tag, err := q.Exec(ctx, `
		UPDATE check_ins
		SET scheduled_for = $3, completed_at = $4, mood = $5, responses = $6,
		    needs_attention = $7, reviewed_by = $8, reviewed_at = $9, review_notes = $10,
		    is_deleted = $11, updated_at = $12, synced_at = $12
		WHERE tenant_id = $1 AND id = $2 AND $13 > updated_at
	`, c.TenantID, c.ID, c.ScheduledFor, c.CompletedAt, moodParam(c.Mood), resp,
		c.NeedsAttention, c.ReviewedBy, c.ReviewedAt, c.ReviewNotes,
		c.IsDeleted, c.UpdatedAt, clientUpdatedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListCheckInsUpdatedSince returns check-ins with updated_at after since.
// Crew callers see only their own rows; admin and psychologist callers see
// the whole tenant so scheduled reviews can be triaged.
func ListCheckInsUpdatedSince(ctx context.Context, q Querier, scope Scope, since time.Time) ([]model.CheckIn, error) {
	query := `
		SELECT ` + checkInColumns + `
		FROM check_ins
		WHERE tenant_id = $1 AND updated_at > $2
	`
	args := []any{scope.TenantID, since}
	if !scope.Role.CanReviewCheckIns() {
		query += ` AND user_id = $3`
		args = append(args, scope.UserID)
	}
	query += ` ORDER BY updated_at, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.CheckIn, 0)
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
