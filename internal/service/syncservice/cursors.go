package syncservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crewwell/crewwell-api/internal/auth"
	"github.com/crewwell/crewwell-api/internal/model"
	"github.com/crewwell/crewwell-api/internal/store"
	"github.com/crewwell/crewwell-api/internal/syncx"
)

// advanceCursors upserts one cursor row per entity at the tail of a
// successful sync. The per-entity grain is a forward-compatibility hook; the
// wire format still carries a single lastSyncAt.
func (s *Service) advanceCursors(ctx context.Context, q store.Querier, ident auth.Identity, deviceID uuid.UUID, now time.Time, lastIDs map[string]uuid.UUID) error {
	for _, entity := range model.SyncEntities {
		cursor := &model.SyncCursor{
			TenantID:     ident.TenantID,
			UserID:       ident.UserID,
			DeviceID:     deviceID,
			Entity:       entity,
			LastSyncedAt: now,
		}
		if id, ok := lastIDs[entity]; ok {
			lastID := id
			cursor.LastRecordID = &lastID
			encoded := syncx.EncodeCursor(syncx.Cursor{Ms: now.UnixMilli(), UID: lastID})
			cursor.SyncCursor = &encoded
		}
		if err := store.UpsertCursor(ctx, q, cursor); err != nil {
			return err
		}
	}
	return nil
}
