package syncservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/crewwell/crewwell-api/internal/auth"
	"github.com/crewwell/crewwell-api/internal/syncx"
)

// Sync runs one full sync cycle for an authenticated device:
//
//	validate envelope → begin tx →
//	  push moods → push journals → push check-ins →
//	  pull (same tx, observes the pushes) →
//	  advance cursors → commit
//
// Everything commits together or not at all, so the lastSyncAt handed back
// reflects exactly the mutations concurrent readers can already see.
// Per-change validation failures do not abort the cycle; store errors do.
func (s *Service) Sync(ctx context.Context, ident auth.Identity, req *SyncRequest) (*SyncResponse, error) {
	deviceID, err := uuid.Parse(req.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: deviceId must be a UUID", ErrInvalidEnvelope)
	}

	// Absent lastSyncAt means the device wants the entire history.
	since := time.Time{}
	if req.LastSyncAt != "" {
		t, ok := syncx.ParseTime(req.LastSyncAt)
		if !ok {
			return nil, fmt.Errorf("%w: lastSyncAt is not a timestamp", ErrInvalidEnvelope)
		}
		since = t
	}

	now := syncx.Now()

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var rejected []RejectedChange

	r, err := s.pushMoodLogs(ctx, tx, ident, req.Changes.MoodLogs, now)
	rejected = append(rejected, r...)
	if err != nil {
		return nil, err
	}

	r, err = s.pushJournalEntries(ctx, tx, ident, req.Changes.JournalEntries, now)
	rejected = append(rejected, r...)
	if err != nil {
		return nil, err
	}

	r, err = s.pushCheckIns(ctx, tx, ident, req.Changes.CheckIns, now)
	rejected = append(rejected, r...)
	if err != nil {
		return nil, err
	}

	changes, lastIDs, err := s.pull(ctx, tx, ident, since)
	if err != nil {
		return nil, err
	}

	if err := s.advanceCursors(ctx, tx, ident, deviceID, now, lastIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info().
		Str("device_id", deviceID.String()).
		Int("pushed_moods", len(req.Changes.MoodLogs)).
		Int("pushed_journals", len(req.Changes.JournalEntries)).
		Int("pushed_check_ins", len(req.Changes.CheckIns)).
		Int("pulled_moods", len(changes.MoodLogs)).
		Int("pulled_journals", len(changes.JournalEntries)).
		Int("pulled_check_ins", len(changes.CheckIns)).
		Int("pulled_resources", len(changes.Resources)).
		Int("rejected", len(rejected)).
		Time("last_sync_at", now).
		Msg("sync cycle completed")

	return &SyncResponse{
		Success:       true,
		ServerChanges: changes,
		Conflicts:     []Conflict{},
		LastSyncAt:    now,
		Rejected:      rejected,
	}, nil
}
