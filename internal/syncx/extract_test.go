package syncx

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestExtractEnvelope(t *testing.T) {
	id := "c1d9b7dc-a1b2-4c3d-9e8f-7a6b5c4d3e2f"

	tests := []struct {
		name    string
		item    map[string]any
		wantErr bool
		check   func(*testing.T, Envelope)
	}{
		{
			name: "minimal change",
			item: map[string]any{
				"id":              id,
				"clientCreatedAt": "2024-01-01T10:00:00Z",
			},
			check: func(t *testing.T, e Envelope) {
				if e.ID != uuid.MustParse(id) {
					t.Errorf("ID = %v", e.ID)
				}
				if e.UpdatedAt != nil {
					t.Errorf("UpdatedAt = %v, want nil", e.UpdatedAt)
				}
				if e.IsDeleted {
					t.Error("IsDeleted = true, want false")
				}
			},
		},
		{
			name: "snake_case fields",
			item: map[string]any{
				"id":                id,
				"client_created_at": "2024-01-01T10:00:00Z",
				"updated_at":        "2024-01-02T10:00:00Z",
				"is_deleted":        true,
			},
			check: func(t *testing.T, e Envelope) {
				if e.UpdatedAt == nil {
					t.Fatal("UpdatedAt = nil")
				}
				if !e.IsDeleted {
					t.Error("IsDeleted = false, want true")
				}
			},
		},
		{
			name: "tombstone",
			item: map[string]any{
				"id":              id,
				"clientCreatedAt": "2024-01-01T10:00:00Z",
				"updatedAt":       "2024-01-03T10:00:00Z",
				"isDeleted":       true,
			},
			check: func(t *testing.T, e Envelope) {
				if !e.IsDeleted {
					t.Error("IsDeleted = false, want true")
				}
			},
		},
		{
			name:    "missing id",
			item:    map[string]any{"clientCreatedAt": "2024-01-01T10:00:00Z"},
			wantErr: true,
		},
		{
			name:    "invalid id",
			item:    map[string]any{"id": "nope", "clientCreatedAt": "2024-01-01T10:00:00Z"},
			wantErr: true,
		},
		{
			name:    "missing clientCreatedAt",
			item:    map[string]any{"id": id},
			wantErr: true,
		},
		{
			name:    "unparsable clientCreatedAt",
			item:    map[string]any{"id": id, "clientCreatedAt": "not-a-time"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ExtractEnvelope(tt.item)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractEnvelope() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.check != nil {
				tt.check(t, env)
			}
		})
	}
}

func TestEnvelopeClientUpdatedAt(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	e := Envelope{ClientCreatedAt: created}
	if got := e.ClientUpdatedAt(); !got.Equal(created) {
		t.Errorf("ClientUpdatedAt() = %v, want clientCreatedAt %v", got, created)
	}

	e.UpdatedAt = &updated
	if got := e.ClientUpdatedAt(); !got.Equal(updated) {
		t.Errorf("ClientUpdatedAt() = %v, want updatedAt %v", got, updated)
	}
}

func TestGetInt(t *testing.T) {
	m := map[string]any{"float": float64(7), "int": 3, "string": "8"}

	if v, ok := GetInt(m, "float"); !ok || v != 7 {
		t.Errorf("GetInt(float) = %v, %v", v, ok)
	}
	if v, ok := GetInt(m, "int"); !ok || v != 3 {
		t.Errorf("GetInt(int) = %v, %v", v, ok)
	}
	if _, ok := GetInt(m, "string"); ok {
		t.Error("GetInt(string) ok = true, want false")
	}
	if _, ok := GetInt(m, "absent"); ok {
		t.Error("GetInt(absent) ok = true, want false")
	}
}
