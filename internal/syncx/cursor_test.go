package syncx

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEncodeCursor(t *testing.T) {
	tests := []struct {
		name     string
		cursor   Cursor
		expected string
	}{
		{
			name: "normal cursor",
			cursor: Cursor{
				Ms:  1730635200000,
				UID: uuid.MustParse("c1d9b7dc-a1b2-4c3d-9e8f-7a6b5c4d3e2f"),
			},
			expected: "MTczMDYzNTIwMDAwMHxjMWQ5YjdkYy1hMWIyLTRjM2QtOWU4Zi03YTZiNWM0ZDNlMmY",
		},
		{
			name: "zero timestamp",
			cursor: Cursor{
				Ms:  0,
				UID: uuid.MustParse("c1d9b7dc-a1b2-4c3d-9e8f-7a6b5c4d3e2f"),
			},
			expected: "MHxjMWQ5YjdkYy1hMWIyLTRjM2QtOWU4Zi03YTZiNWM0ZDNlMmY",
		},
		{
			name:     "zero value cursor",
			cursor:   Cursor{Ms: 0, UID: uuid.Nil},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeCursor(tt.cursor)
			if got != tt.expected {
				t.Errorf("EncodeCursor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDecodeCursor(t *testing.T) {
	tests := []struct {
		name      string
		encoded   string
		wantMs    int64
		wantUID   uuid.UUID
		wantValid bool
	}{
		{
			name:      "valid cursor",
			encoded:   "MTczMDYzNTIwMDAwMHxjMWQ5YjdkYy1hMWIyLTRjM2QtOWU4Zi03YTZiNWM0ZDNlMmY",
			wantMs:    1730635200000,
			wantUID:   uuid.MustParse("c1d9b7dc-a1b2-4c3d-9e8f-7a6b5c4d3e2f"),
			wantValid: true,
		},
		{
			name:      "empty string",
			encoded:   "",
			wantValid: false,
		},
		{
			name:      "invalid base64",
			encoded:   "not-base64!!!",
			wantValid: false,
		},
		{
			name:      "invalid format (no pipe)",
			encoded:   "MTIzNDU2Nzg5MA", // "1234567890" base64
			wantValid: false,
		},
		{
			name:      "invalid uuid",
			encoded:   "MTIzNDU2fG5vdC1hLXV1aWQ", // "123456|not-a-uuid"
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := DecodeCursor(tt.encoded)
			if valid != tt.wantValid {
				t.Errorf("DecodeCursor() valid = %v, want %v", valid, tt.wantValid)
			}
			if valid {
				if got.Ms != tt.wantMs {
					t.Errorf("DecodeCursor() Ms = %v, want %v", got.Ms, tt.wantMs)
				}
				if got.UID != tt.wantUID {
					t.Errorf("DecodeCursor() UID = %v, want %v", got.UID, tt.wantUID)
				}
			}
		})
	}
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		Ms:  1730635200000,
		UID: uuid.MustParse("c1d9b7dc-a1b2-4c3d-9e8f-7a6b5c4d3e2f"),
	}

	encoded := EncodeCursor(original)
	decoded, valid := DecodeCursor(encoded)

	if !valid {
		t.Fatal("DecodeCursor() failed for valid cursor")
	}
	if decoded != original {
		t.Errorf("Round trip = %v, want %v", decoded, original)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      time.Time
		wantValid bool
	}{
		{
			name:      "rfc3339",
			input:     "2024-01-01T10:00:00Z",
			want:      time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			wantValid: true,
		},
		{
			name:      "rfc3339 with millis",
			input:     "2024-01-01T10:00:00.123Z",
			want:      time.Date(2024, 1, 1, 10, 0, 0, 123000000, time.UTC),
			wantValid: true,
		},
		{
			name:      "rfc3339 with offset",
			input:     "2024-01-01T12:00:00+02:00",
			want:      time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			wantValid: true,
		},
		{
			name:      "unix milliseconds",
			input:     "1704103200000",
			want:      time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			wantValid: true,
		},
		{
			name:      "empty",
			input:     "",
			wantValid: false,
		},
		{
			name:      "garbage",
			input:     "yesterday-ish",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := ParseTime(tt.input)
			if valid != tt.wantValid {
				t.Fatalf("ParseTime() valid = %v, want %v", valid, tt.wantValid)
			}
			if valid && !got.Equal(tt.want) {
				t.Errorf("ParseTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNow(t *testing.T) {
	before := Now()
	after := Now()

	if after.Before(before) {
		t.Error("Now() went backwards in time")
	}
	if before.Nanosecond()%int(time.Millisecond) != 0 {
		t.Errorf("Now() not truncated to milliseconds: %v", before)
	}
	if before.Location() != time.UTC {
		t.Errorf("Now() not UTC: %v", before.Location())
	}
}
