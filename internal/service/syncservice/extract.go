package syncservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewwell/crewwell-api/internal/model"
	"github.com/crewwell/crewwell-api/internal/syncx"
)

// Per-entity payload extraction and validation. A change that fails here is
// rejected on its own; the batch continues.

func envID(env syncx.Envelope) string {
	if env.ID == uuid.Nil {
		return ""
	}
	return env.ID.String()
}

type moodLogFields struct {
	mood      model.Mood
	intensity *int
	notes     *string
}

func extractMoodLog(item map[string]any) (syncx.Envelope, moodLogFields, error) {
	var f moodLogFields
	env, err := syncx.ExtractEnvelope(item)
	if err != nil {
		return env, f, err
	}

	moodStr, _ := syncx.GetString(item, "mood")
	f.mood = model.Mood(moodStr)
	if !f.mood.Valid() {
		return env, f, fmt.Errorf("invalid mood %q", moodStr)
	}

	if v, ok := syncx.GetInt(item, "intensity"); ok {
		if v < 1 || v > 10 {
			return env, f, errors.New("intensity out of range [1,10]")
		}
		f.intensity = &v
	}

	f.notes = syncx.GetStringPtr(item, "notes")
	return env, f, nil
}

type journalEntryFields struct {
	title     *string
	content   string
	mood      *model.Mood
	isPrivate bool
}

func extractJournalEntry(item map[string]any) (syncx.Envelope, journalEntryFields, error) {
	f := journalEntryFields{isPrivate: true}
	env, err := syncx.ExtractEnvelope(item)
	if err != nil {
		return env, f, err
	}

	content, ok := syncx.GetString(item, "content")
	if !ok || content == "" {
		return env, f, errors.New("missing content")
	}
	f.content = content

	if title := syncx.GetStringPtr(item, "title"); title != nil {
		if len(*title) > model.MaxJournalTitleLen {
			return env, f, fmt.Errorf("title exceeds %d characters", model.MaxJournalTitleLen)
		}
		f.title = title
	}

	if moodStr, ok := syncx.GetString(item, "mood"); ok {
		mood := model.Mood(moodStr)
		if !mood.Valid() {
			return env, f, fmt.Errorf("invalid mood %q", moodStr)
		}
		f.mood = &mood
	}

	if private, ok := syncx.GetBool(item, "isPrivate"); ok {
		f.isPrivate = private
	} else if private, ok := syncx.GetBool(item, "is_private"); ok {
		f.isPrivate = private
	}

	return env, f, nil
}

type checkInFields struct {
	scheduledFor   time.Time
	completedAt    *time.Time
	mood           *model.Mood
	responses      map[string]any
	needsAttention bool
	reviewedBy     *uuid.UUID
	reviewedAt     *time.Time
	reviewNotes    *string
}

func extractCheckIn(item map[string]any) (syncx.Envelope, checkInFields, error) {
	var f checkInFields
	env, err := syncx.ExtractEnvelope(item)
	if err != nil {
		return env, f, err
	}

	scheduled, ok := syncx.GetTime(item, "scheduledFor", "scheduled_for")
	if !ok {
		return env, f, errors.New("missing or invalid scheduledFor")
	}
	f.scheduledFor = scheduled

	if completed, ok := syncx.GetTime(item, "completedAt", "completed_at"); ok {
		f.completedAt = &completed
	}

	if moodStr, ok := syncx.GetString(item, "mood"); ok {
		mood := model.Mood(moodStr)
		if !mood.Valid() {
			return env, f, fmt.Errorf("invalid mood %q", moodStr)
		}
		f.mood = &mood
	}

	if responses, ok := syncx.GetMap(item, "responses"); ok {
		f.responses = responses
	}

	// Review fields: extracted here, persisted only for psychologists.
	if v, ok := syncx.GetBool(item, "needsAttention"); ok {
		f.needsAttention = v
	}
	if s, ok := syncx.GetString(item, "reviewedBy"); ok {
		if id, ok2 := syncx.ParseUUID(s); ok2 {
			f.reviewedBy = &id
		}
	}
	if reviewed, ok := syncx.GetTime(item, "reviewedAt", "reviewed_at"); ok {
		f.reviewedAt = &reviewed
	}
	f.reviewNotes = syncx.GetStringPtr(item, "reviewNotes")

	return env, f, nil
}
