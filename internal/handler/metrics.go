package handler

import (
	"fmt"
	"net/http"

	"github.com/signet/signet/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "signet_registrations_total{status=\"created\"} %d\n", snap.RegistrationsCreated)
	writeMetric(w, "signet_registrations_total{status=\"duplicate\"} %d\n", snap.RegistrationsDuplicate)
	writeMetric(w, "signet_registrations_total{status=\"invalid\"} %d\n", snap.RegistrationsInvalid)

	writeMetric(w, "signet_logins_total{status=\"success\"} %d\n", snap.LoginsSuccess)
	writeMetric(w, "signet_logins_total{status=\"failure\"} %d\n", snap.LoginsFailure)

	writeMetric(w, "signet_hash_duration_seconds_count %d\n", snap.HashDurationCount)
	writeMetric(w, "signet_hash_duration_seconds_sum %.6f\n", float64(snap.HashDurationTotalNs)/1e9)

	writeMetric(w, "signet_tokens_issued_total %d\n", snap.TokensIssued)

	writeMetric(w, "signet_identity_resolutions_total{status=\"resolved\"} %d\n", snap.IdentitiesResolved)
	writeMetric(w, "signet_identity_resolutions_total{status=\"rejected\"} %d\n", snap.IdentitiesRejected)
	writeMetric(w, "signet_identity_resolutions_total{status=\"error\"} %d\n", snap.IdentityErrors)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
