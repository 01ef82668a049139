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

// pushCheckIns merges one batch of check-in changes inside the sync
// transaction. Review fields (needsAttention, reviewedBy, reviewedAt,
// reviewNotes) persist only when the caller is a psychologist; for everyone
// else they are silently ignored, per the policy that authorization
// violations must not be observable through errors.
func (s *Service) pushCheckIns(ctx context.Context, tx pgx.Tx, ident auth.Identity, items []map[string]any, now time.Time) ([]RejectedChange, error) {
	var rejected []RejectedChange
	reject := func(id, reason string) {
		rejected = append(rejected, RejectedChange{Entity: model.EntityCheckIn, ID: id, Reason: reason})
	}

	isPsych := ident.Role == model.RolePsychologist

	for _, item := range items {
		env, ext, err := extractCheckIn(item)
		if err != nil {
			log.Warn().Err(err).Msg("rejected check-in change")
			reject(envID(env), err.Error())
			continue
		}

		existing, err := store.FindCheckIn(ctx, tx, ident.TenantID, env.ID)
		if err != nil {
			return rejected, err
		}

		if existing == nil {
			row := &model.CheckIn{
				ID:              env.ID,
				TenantID:        ident.TenantID,
				UserID:          ident.UserID,
				ScheduledFor:    ext.scheduledFor,
				CompletedAt:     ext.completedAt,
				Mood:            ext.mood,
				Responses:       ext.responses,
				ClientCreatedAt: env.ClientCreatedAt,
				CreatedAt:       now,
				UpdatedAt:       now,
				SyncedAt:        now,
				IsDeleted:       env.IsDeleted,
			}
			if isPsych {
				row.NeedsAttention = ext.needsAttention
				row.ReviewedBy = ext.reviewedBy
				row.ReviewedAt = ext.reviewedAt
				row.ReviewNotes = ext.reviewNotes
			}
			if err := store.InsertCheckIn(ctx, tx, row); err != nil {
				return rejected, err
			}
			continue
		}

		if ident.Role == model.RoleCrew && existing.UserID != ident.UserID {
			continue
		}

		patch := *existing
		patch.ScheduledFor = ext.scheduledFor
		patch.CompletedAt = ext.completedAt
		patch.Mood = ext.mood
		patch.Responses = ext.responses
		patch.IsDeleted = env.IsDeleted
		patch.UpdatedAt = now
		if isPsych {
			patch.NeedsAttention = ext.needsAttention
			patch.ReviewedBy = ext.reviewedBy
			patch.ReviewedAt = ext.reviewedAt
			patch.ReviewNotes = ext.reviewNotes
		}

		applied, err := store.UpdateCheckInIfNewer(ctx, tx, &patch, env.ClientUpdatedAt())
		if err != nil {
			return rejected, err
		}
		if !applied {
			log.Debug().Str("id", env.ID.String()).Msg("check-in push lost last-write-wins")
		}
	}

	return rejected, nil
}
