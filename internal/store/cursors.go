package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/crewwell/crewwell-api/internal/model"
)

// UpsertCursor creates or advances the cursor row for one
// {tenant, user, device, entity} key.
func UpsertCursor(ctx context.Context, q Querier, c *model.SyncCursor) error {
	_, err := q.Exec(ctx, `
		INSERT INTO sync_cursors (tenant_id, user_id, device_id, entity,
			last_synced_at, last_record_id, sync_cursor)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, user_id, device_id, entity) DO UPDATE SET
			last_synced_at = EXCLUDED.last_synced_at,
			last_record_id = EXCLUDED.last_record_id,
			sync_cursor    = EXCLUDED.sync_cursor
	`, c.TenantID, c.UserID, c.DeviceID, c.Entity,
		c.LastSyncedAt, c.LastRecordID, c.SyncCursor)
	return err
}

// ListCursors returns the cursor rows for one device of the caller.
func ListCursors(ctx context.Context, q Querier, tenantID, userID, deviceID uuid.UUID) ([]model.SyncCursor, error) {
	rows, err := q.Query(ctx, `
		SELECT tenant_id, user_id, device_id, entity,
			last_synced_at, last_record_id, sync_cursor
		FROM sync_cursors
		WHERE tenant_id = $1 AND user_id = $2 AND device_id = $3
		ORDER BY entity
	`, tenantID, userID, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SyncCursor, 0)
	for rows.Next() {
		var c model.SyncCursor
		if err := rows.Scan(&c.TenantID, &c.UserID, &c.DeviceID, &c.Entity,
			&c.LastSyncedAt, &c.LastRecordID, &c.SyncCursor); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
