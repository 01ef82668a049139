package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crewwell/crewwell-api/internal/model"
)

const resourceColumns = `id, tenant_id, title, type, category, tags,
	is_published, offline_available, created_at, updated_at`

// ListResourcesUpdatedSince returns published resources visible to the
// tenant: its own rows plus global rows (tenant_id IS NULL).
func ListResourcesUpdatedSince(ctx context.Context, q Querier, tenantID uuid.UUID, since time.Time) ([]model.Resource, error) {
	rows, err := q.Query(ctx, `
		SELECT `+resourceColumns+`
		FROM resources
		WHERE (tenant_id = $1 OR tenant_id IS NULL)
		  AND is_published
		  AND updated_at > $2
		ORDER BY updated_at, id
	`, tenantID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Resource, 0)
	for rows.Next() {
		var r model.Resource
		var typ string
		if err := rows.Scan(&r.ID, &r.TenantID, &r.Title, &typ, &r.Category, &r.Tags,
			&r.IsPublished, &r.OfflineAvailable, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		r.Type = model.ResourceType(typ)
		out = append(out, r)
	}
	return out, rows.Err()
}

// InsertResource writes a content library entry. Authoring happens on the
// administrative path, not through sync; this is used by provisioning and
// tests.
func InsertResource(ctx context.Context, q Querier, r *model.Resource) error {
	_, err := q.Exec(ctx, `
		INSERT INTO resources (`+resourceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.ID, r.TenantID, r.Title, string(r.Type), r.Category, r.Tags,
		r.IsPublished, r.OfflineAvailable, r.CreatedAt, r.UpdatedAt)
	return err
}
