package syncservice

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/crewwell/crewwell-api/internal/auth"
	"github.com/crewwell/crewwell-api/internal/model"
	"github.com/crewwell/crewwell-api/internal/store"
)

// pushMoodLogs merges one batch of mood log changes inside the sync
// transaction. Invalid changes are rejected individually; a store error
// aborts the whole sync.
func (s *Service) pushMoodLogs(ctx context.Context, tx pgx.Tx, ident auth.Identity, items []map[string]any, now time.Time) ([]RejectedChange, error) {
	var rejected []RejectedChange
	reject := func(id, reason string) {
		rejected = append(rejected, RejectedChange{Entity: model.EntityMoodLog, ID: id, Reason: reason})
	}

	for _, item := range items {
		env, ext, err := extractMoodLog(item)
		if err != nil {
			log.Warn().Err(err).Msg("rejected mood log change")
			reject(envID(env), err.Error())
			continue
		}

		existing, err := store.FindMoodLog(ctx, tx, ident.TenantID, env.ID)
		if err != nil {
			return rejected, err
		}

		if existing == nil {
			row := &model.MoodLog{
				ID:              env.ID,
				TenantID:        ident.TenantID,
				UserID:          ident.UserID,
				Mood:            ext.mood,
				Intensity:       ext.intensity,
				Notes:           ext.notes,
				ClientCreatedAt: env.ClientCreatedAt,
				CreatedAt:       now,
				UpdatedAt:       now,
				SyncedAt:        now,
				IsDeleted:       env.IsDeleted,
			}
			if err := store.InsertMoodLog(ctx, tx, row); err != nil {
				return rejected, err
			}
			continue
		}

		// Crew can only touch their own rows. Dropped silently so callers
		// cannot learn whether the row exists.
		if ident.Role == model.RoleCrew && existing.UserID != ident.UserID {
			continue
		}

		patch := *existing
		patch.Mood = ext.mood
		patch.Intensity = ext.intensity
		patch.Notes = ext.notes
		patch.IsDeleted = env.IsDeleted
		patch.UpdatedAt = now

		applied, err := store.UpdateMoodLogIfNewer(ctx, tx, &patch, env.ClientUpdatedAt())
		if err != nil {
			return rejected, err
		}
		if !applied {
			// Stored row is newer; the pull phase returns it and the client
			// converges.
			log.Debug().Str("id", env.ID.String()).Msg("mood log push lost last-write-wins")
		}
	}

	return rejected, nil
}
