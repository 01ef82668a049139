package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/crewwell/crewwell-api/internal/auth"
	"github.com/crewwell/crewwell-api/internal/model"
	"github.com/crewwell/crewwell-api/internal/service/syncservice"
)

func testIdentity() auth.Identity {
	return auth.Identity{
		TenantID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		UserID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Role:     model.RoleCrew,
	}
}

// Envelope validation happens before the service touches the pool, so these
// paths are testable without a database.
func newTestServer() *Server {
	return &Server{Sync: syncservice.New(nil)}
}

func syncRequest(t *testing.T, body string, ident *auth.Identity) *http.Request {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if ident != nil {
		req = req.WithContext(auth.WithIdentity(context.Background(), *ident))
	}
	return req
}

func TestHandleSyncRejectsUnauthenticated(t *testing.T) {
	s := newTestServer()
	w := httptest.NewRecorder()

	s.HandleSync(w, syncRequest(t, `{}`, nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestHandleSyncRejectsInvalidJSON(t *testing.T) {
	s := newTestServer()
	ident := testIdentity()
	w := httptest.NewRecorder()

	s.HandleSync(w, syncRequest(t, `{"deviceId": `, &ident))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if resp.Success {
		t.Error("success = true on error response")
	}
}

func TestHandleSyncRejectsBadEnvelope(t *testing.T) {
	s := newTestServer()
	ident := testIdentity()

	tests := []struct {
		name string
		body string
	}{
		{"missing deviceId", `{}`},
		{"deviceId not a uuid", `{"deviceId": "tablet-3"}`},
		{"unparsable lastSyncAt", `{"deviceId": "aaaaaaaa-2222-0000-0000-000000000001", "lastSyncAt": "whenever"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.HandleSync(w, syncRequest(t, tt.body, &ident))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body: %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleSyncRejectsOversizeBody(t *testing.T) {
	s := newTestServer()
	ident := testIdentity()

	// Valid JSON prefix, padded past the body cap
	var buf bytes.Buffer
	buf.WriteString(`{"deviceId": "aaaaaaaa-2222-0000-0000-000000000001", "pad": "`)
	buf.Write(bytes.Repeat([]byte("x"), maxSyncBodyBytes+1))
	buf.WriteString(`"}`)

	w := httptest.NewRecorder()
	s.HandleSync(w, syncRequest(t, buf.String(), &ident))

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
}

func TestHandleSyncStatusValidation(t *testing.T) {
	s := newTestServer()
	ident := testIdentity()

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.HandleSyncStatus(w, httptest.NewRequest("GET", "/api/sync/status", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("missing deviceId", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/sync/status", nil)
		req = req.WithContext(auth.WithIdentity(context.Background(), ident))
		w := httptest.NewRecorder()
		s.HandleSyncStatus(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
