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

// pushJournalEntries merges one batch of journal entry changes inside the
// sync transaction.
func (s *Service) pushJournalEntries(ctx context.Context, tx pgx.Tx, ident auth.Identity, items []map[string]any, now time.Time) ([]RejectedChange, error) {
	var rejected []RejectedChange
	reject := func(id, reason string) {
		rejected = append(rejected, RejectedChange{Entity: model.EntityJournalEntry, ID: id, Reason: reason})
	}

	for _, item := range items {
		env, ext, err := extractJournalEntry(item)
		if err != nil {
			log.Warn().Err(err).Msg("rejected journal entry change")
			reject(envID(env), err.Error())
			continue
		}

		existing, err := store.FindJournalEntry(ctx, tx, ident.TenantID, env.ID)
		if err != nil {
			return rejected, err
		}

		if existing == nil {
			row := &model.JournalEntry{
				ID:              env.ID,
				TenantID:        ident.TenantID,
				UserID:          ident.UserID,
				Title:           ext.title,
				Content:         ext.content,
				Mood:            ext.mood,
				IsPrivate:       ext.isPrivate,
				ClientCreatedAt: env.ClientCreatedAt,
				CreatedAt:       now,
				UpdatedAt:       now,
				SyncedAt:        now,
				IsDeleted:       env.IsDeleted,
			}
			if err := store.InsertJournalEntry(ctx, tx, row); err != nil {
				return rejected, err
			}
			continue
		}

		if ident.Role == model.RoleCrew && existing.UserID != ident.UserID {
			continue
		}

		patch := *existing
		patch.Title = ext.title
		patch.Content = ext.content
		patch.Mood = ext.mood
		patch.IsPrivate = ext.isPrivate
		patch.IsDeleted = env.IsDeleted
		patch.UpdatedAt = now

		applied, err := store.UpdateJournalEntryIfNewer(ctx, tx, &patch, env.ClientUpdatedAt())
		if err != nil {
			return rejected, err
		}
		if !applied {
			log.Debug().Str("id", env.ID.String()).Msg("journal entry push lost last-write-wins")
		}
	}

	return rejected, nil
}
