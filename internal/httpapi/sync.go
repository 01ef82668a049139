package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/crewwell/crewwell-api/internal/auth"
	"github.com/crewwell/crewwell-api/internal/service/syncservice"
)

// maxSyncBodyBytes caps a batched sync request. Days of offline mood logs
// and journal entries fit comfortably; anything larger is rejected before
// the merge engine sees it.
const maxSyncBodyBytes = 10 << 20

// HandleSync handles POST /api/sync: the full bidirectional cycle of
// push (client changes merged last-write-wins) and pull (server deltas
// since the device's last sync).
func (s *Server) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	ident, ok := auth.From(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSyncBodyBytes)

	var req syncservice.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			syncRequests.WithLabelValues("too_large").Inc()
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		log.Warn().Err(err).Msg("invalid sync request body")
		syncRequests.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	resp, err := s.Sync.Sync(ctx, ident, &req)
	if err != nil {
		if errors.Is(err, syncservice.ErrInvalidEnvelope) {
			syncRequests.WithLabelValues("bad_request").Inc()
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("sync cycle failed")
		syncRequests.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "sync failed")
		return
	}

	syncRequests.WithLabelValues("ok").Inc()
	syncDuration.Observe(time.Since(start).Seconds())
	observeSyncCounts(resp)

	writeJSON(w, http.StatusOK, resp)
}

// HandleSyncStatus handles GET /api/sync/status?deviceId=<uuid>, returning
// the device's cursor rows.
func (s *Server) HandleSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ident, ok := auth.From(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp, err := s.Sync.Status(ctx, ident, r.URL.Query().Get("deviceId"))
	if err != nil {
		if errors.Is(err, syncservice.ErrInvalidEnvelope) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("failed to load sync status")
		writeError(w, http.StatusInternalServerError, "status failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
