package syncservice

import (
	"time"

	"github.com/crewwell/crewwell-api/internal/model"
)

// SyncRequest is the body of POST /api/sync. Changes are decoded as raw maps
// so per-change validation can reject a single bad item without failing the
// whole envelope.
type SyncRequest struct {
	DeviceID   string    `json:"deviceId"`
	LastSyncAt string    `json:"lastSyncAt,omitempty"`
	Changes    ChangeSet `json:"changes"`
}

// ChangeSet carries the per-entity batches of device-staged mutations.
type ChangeSet struct {
	MoodLogs       []map[string]any `json:"moodLogs,omitempty"`
	JournalEntries []map[string]any `json:"journalEntries,omitempty"`
	CheckIns       []map[string]any `json:"checkIns,omitempty"`
}

// ServerChanges is the pull half of the response: every row the device has
// not yet observed, tombstones included.
type ServerChanges struct {
	MoodLogs       []model.MoodLog     `json:"moodLogs"`
	JournalEntries []model.JournalEntry `json:"journalEntries"`
	CheckIns       []model.CheckIn     `json:"checkIns"`
	Resources      []model.Resource    `json:"resources"`
}

// Conflict is reserved wire surface. The engine resolves everything by
// last-write-wins, so the list in a response is always empty; a losing push
// simply sees the newer server row in serverChanges and converges.
type Conflict struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// RejectedChange reports a change that failed per-item validation. The rest
// of the batch is unaffected.
type RejectedChange struct {
	Entity string `json:"entity"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// SyncResponse is the body of a successful sync.
type SyncResponse struct {
	Success       bool             `json:"success"`
	ServerChanges ServerChanges    `json:"serverChanges"`
	Conflicts     []Conflict       `json:"conflicts"`
	LastSyncAt    time.Time        `json:"lastSyncAt"`
	Rejected      []RejectedChange `json:"rejected,omitempty"`
}

// StatusResponse is the body of GET /api/sync/status.
type StatusResponse struct {
	DeviceID string             `json:"deviceId"`
	Cursors  []model.SyncCursor `json:"cursors"`
}
