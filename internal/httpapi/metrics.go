package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/crewwell/crewwell-api/internal/model"
	"github.com/crewwell/crewwell-api/internal/service/syncservice"
)

var (
	syncRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_requests_total",
		Help: "Sync calls by outcome.",
	}, []string{"status"})

	syncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sync_duration_seconds",
		Help:    "Wall time of a full sync cycle.",
		Buckets: prometheus.DefBuckets,
	})

	syncPulledRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_pulled_rows_total",
		Help: "Rows returned in serverChanges by entity.",
	}, []string{"entity"})

	syncRejectedChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_rejected_changes_total",
		Help: "Pushed changes that failed per-item validation, by entity.",
	}, []string{"entity"})
)

func observeSyncCounts(resp *syncservice.SyncResponse) {
	syncPulledRows.WithLabelValues(model.EntityMoodLog).Add(float64(len(resp.ServerChanges.MoodLogs)))
	syncPulledRows.WithLabelValues(model.EntityJournalEntry).Add(float64(len(resp.ServerChanges.JournalEntries)))
	syncPulledRows.WithLabelValues(model.EntityCheckIn).Add(float64(len(resp.ServerChanges.CheckIns)))
	syncPulledRows.WithLabelValues(model.EntityResource).Add(float64(len(resp.ServerChanges.Resources)))
	for _, rej := range resp.Rejected {
		syncRejectedChanges.WithLabelValues(rej.Entity).Inc()
	}
}
