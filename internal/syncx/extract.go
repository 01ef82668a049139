package syncx

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Envelope contains the sync metadata every pushed change must carry.
type Envelope struct {
	ID              uuid.UUID
	ClientCreatedAt time.Time
	UpdatedAt       *time.Time
	IsDeleted       bool
}

// GetString safely extracts a string value from a map
func GetString(m map[string]any, k string) (string, bool) {
	if v, ok := m[k]; ok {
		if s, ok2 := v.(string); ok2 {
			return s, true
		}
	}
	return "", false
}

// GetStringPtr returns a pointer to the string at k, or nil when absent.
func GetStringPtr(m map[string]any, k string) *string {
	if s, ok := GetString(m, k); ok {
		return &s
	}
	return nil
}

// GetBool safely extracts a bool value from a map
func GetBool(m map[string]any, k string) (bool, bool) {
	if v, ok := m[k]; ok {
		if b, ok2 := v.(bool); ok2 {
			return b, true
		}
	}
	return false, false
}

// GetInt extracts an integer from a map. JSON numbers decode as float64, so
// both forms are accepted.
func GetInt(m map[string]any, k string) (int, bool) {
	switch v := m[k].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// GetMap safely extracts a nested map from a map
func GetMap(m map[string]any, k string) (map[string]any, bool) {
	if v, ok := m[k]; ok {
		if mm, ok2 := v.(map[string]any); ok2 {
			return mm, true
		}
	}
	return nil, false
}

// GetTime extracts and parses a timestamp field, trying both the camelCase
// and snake_case spellings clients have used.
func GetTime(m map[string]any, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		if s, ok := GetString(m, k); ok {
			if t, ok2 := ParseTime(s); ok2 {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ParseUUID parses a UUID string
func ParseUUID(s string) (uuid.UUID, bool) {
	if s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	return id, err == nil
}

// ExtractEnvelope parses the common sync envelope from a pushed change.
// id and client_created_at are mandatory; a change without them cannot be
// reconciled and is rejected (the rest of the batch continues).
func ExtractEnvelope(item map[string]any) (Envelope, error) {
	var out Envelope

	idStr, _ := GetString(item, "id")
	id, ok := ParseUUID(idStr)
	if !ok {
		return out, errors.New("missing or invalid id")
	}
	out.ID = id

	created, ok := GetTime(item, "clientCreatedAt", "client_created_at")
	if !ok {
		return out, errors.New("missing or invalid clientCreatedAt")
	}
	out.ClientCreatedAt = created

	if upd, ok := GetTime(item, "updatedAt", "updated_at"); ok {
		out.UpdatedAt = &upd
	}

	if del, ok := GetBool(item, "isDeleted"); ok {
		out.IsDeleted = del
	} else if del, ok := GetBool(item, "is_deleted"); ok {
		out.IsDeleted = del
	}

	return out, nil
}

// ClientUpdatedAt is the merge comparison key for an update: the payload's
// updated_at when present, otherwise its client_created_at.
func (e Envelope) ClientUpdatedAt() time.Time {
	if e.UpdatedAt != nil {
		return *e.UpdatedAt
	}
	return e.ClientCreatedAt
}
