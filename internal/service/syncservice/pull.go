package syncservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crewwell/crewwell-api/internal/auth"
	"github.com/crewwell/crewwell-api/internal/model"
	"github.com/crewwell/crewwell-api/internal/store"
)

// pull enumerates every row in the sync window (since, now] visible to the
// caller: the three mutable entities (tenant-wide check-ins for reviewer
// roles) plus published resources. Runs on the sync transaction so it
// observes the pushes just applied.
//
// The second return value carries the last pulled id per entity, recorded on
// the cursor rows as the per-entity resumption hook.
func (s *Service) pull(ctx context.Context, q store.Querier, ident auth.Identity, since time.Time) (ServerChanges, map[string]uuid.UUID, error) {
	changes := ServerChanges{
		MoodLogs:       []model.MoodLog{},
		JournalEntries: []model.JournalEntry{},
		CheckIns:       []model.CheckIn{},
		Resources:      []model.Resource{},
	}
	lastIDs := make(map[string]uuid.UUID)

	moods, err := store.ListMoodLogsUpdatedSince(ctx, q, ident.TenantID, ident.UserID, since)
	if err != nil {
		return changes, nil, err
	}
	changes.MoodLogs = moods
	if n := len(moods); n > 0 {
		lastIDs[model.EntityMoodLog] = moods[n-1].ID
	}

	journals, err := store.ListJournalEntriesUpdatedSince(ctx, q, ident.TenantID, ident.UserID, since)
	if err != nil {
		return changes, nil, err
	}
	changes.JournalEntries = journals
	if n := len(journals); n > 0 {
		lastIDs[model.EntityJournalEntry] = journals[n-1].ID
	}

	checkIns, err := store.ListCheckInsUpdatedSince(ctx, q, scopeOf(ident), since)
	if err != nil {
		return changes, nil, err
	}
	changes.CheckIns = checkIns
	if n := len(checkIns); n > 0 {
		lastIDs[model.EntityCheckIn] = checkIns[n-1].ID
	}

	resources, err := store.ListResourcesUpdatedSince(ctx, q, ident.TenantID, since)
	if err != nil {
		return changes, nil, err
	}
	changes.Resources = resources
	if n := len(resources); n > 0 {
		lastIDs[model.EntityResource] = resources[n-1].ID
	}

	return changes, lastIDs, nil
}
