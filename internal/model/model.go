package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the caller's role as attached by the authentication layer.
type Role string

const (
	RoleCrew         Role = "crew"
	RoleAdmin        Role = "admin"
	RolePsychologist Role = "psychologist"
)

// ParseRole validates a role string
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCrew, RoleAdmin, RolePsychologist:
		return Role(s), true
	}
	return "", false
}

// CanReviewCheckIns reports whether the role may read check-ins tenant-wide
// and persist review fields.
func (r Role) CanReviewCheckIns() bool {
	return r == RoleAdmin || r == RolePsychologist
}

// Mood is the five-point mood scale shared by all entities
type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodBad      Mood = "bad"
	MoodTerrible Mood = "terrible"
)

// Valid reports whether the mood is a member of the scale
func (m Mood) Valid() bool {
	switch m {
	case MoodGreat, MoodGood, MoodOkay, MoodBad, MoodTerrible:
		return true
	}
	return false
}

// ResourceType classifies content library entries
type ResourceType string

const (
	ResourceArticle  ResourceType = "article"
	ResourceVideo    ResourceType = "video"
	ResourceExercise ResourceType = "exercise"
	ResourceAudio    ResourceType = "audio"
)

// Entity names used for sync cursor rows and rejection reporting
const (
	EntityMoodLog      = "mood_log"
	EntityJournalEntry = "journal_entry"
	EntityCheckIn      = "check_in"
	EntityResource     = "resource"
)

// SyncEntities is the full set of cursor-tracked entities, in sync order.
var SyncEntities = []string{EntityMoodLog, EntityJournalEntry, EntityCheckIn, EntityResource}

// MoodLog is a single mood record created on a device.
//
// All mutable user-owned entities share the same envelope: the client mints
// the id and client_created_at; the server owns created_at, updated_at and
// synced_at. updated_at is the merge ordering key.
type MoodLog struct {
	ID              uuid.UUID `json:"id"`
	TenantID        uuid.UUID `json:"tenantId"`
	UserID          uuid.UUID `json:"userId"`
	Mood            Mood      `json:"mood"`
	Intensity       *int      `json:"intensity,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	ClientCreatedAt time.Time `json:"clientCreatedAt"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	SyncedAt        time.Time `json:"syncedAt"`
	IsDeleted       bool      `json:"isDeleted"`
}

// JournalEntry is a free-text journal record. Private by default.
type JournalEntry struct {
	ID              uuid.UUID `json:"id"`
	TenantID        uuid.UUID `json:"tenantId"`
	UserID          uuid.UUID `json:"userId"`
	Title           *string   `json:"title,omitempty"`
	Content         string    `json:"content"`
	Mood            *Mood     `json:"mood,omitempty"`
	IsPrivate       bool      `json:"isPrivate"`
	ClientCreatedAt time.Time `json:"clientCreatedAt"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	SyncedAt        time.Time `json:"syncedAt"`
	IsDeleted       bool      `json:"isDeleted"`
}

// MaxJournalTitleLen bounds the optional journal title.
const MaxJournalTitleLen = 500

// CheckIn is a scheduled well-being check-in. The review fields at the tail
// are writable only by psychologists; crew pushes never touch them.
type CheckIn struct {
	ID              uuid.UUID      `json:"id"`
	TenantID        uuid.UUID      `json:"tenantId"`
	UserID          uuid.UUID      `json:"userId"`
	ScheduledFor    time.Time      `json:"scheduledFor"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	Mood            *Mood          `json:"mood,omitempty"`
	Responses       map[string]any `json:"responses,omitempty"`
	NeedsAttention  bool           `json:"needsAttention"`
	ReviewedBy      *uuid.UUID     `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewedAt,omitempty"`
	ReviewNotes     *string        `json:"reviewNotes,omitempty"`
	ClientCreatedAt time.Time      `json:"clientCreatedAt"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	SyncedAt        time.Time      `json:"syncedAt"`
	IsDeleted       bool           `json:"isDeleted"`
}

// Resource is a content library entry. Read-only to the sync engine; rows
// with a nil TenantID are global and visible to every tenant.
type Resource struct {
	ID               uuid.UUID    `json:"id"`
	TenantID         *uuid.UUID   `json:"tenantId,omitempty"`
	Title            string       `json:"title"`
	Type             ResourceType `json:"type"`
	Category         string       `json:"category,omitempty"`
	Tags             []string     `json:"tags,omitempty"`
	IsPublished      bool         `json:"isPublished"`
	OfflineAvailable bool         `json:"offlineAvailable"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// SyncCursor marks replication progress for one {tenant, user, device, entity}.
type SyncCursor struct {
	TenantID     uuid.UUID  `json:"tenantId"`
	UserID       uuid.UUID  `json:"userId"`
	DeviceID     uuid.UUID  `json:"deviceId"`
	Entity       string     `json:"entity"`
	LastSyncedAt time.Time  `json:"lastSyncedAt"`
	LastRecordID *uuid.UUID `json:"lastRecordId,omitempty"`
	SyncCursor   *string    `json:"syncCursor,omitempty"`
}
