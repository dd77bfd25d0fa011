// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Registration metrics
	IncRegistration(status string) // status: "created", "duplicate", "invalid"

	// Login metrics
	IncLogin(status string) // status: "success", "failure"
	ObserveHashDuration(duration time.Duration)

	// Token metrics
	IncTokenIssued()

	// Identity resolution metrics
	IncIdentityResolution(status string) // status: "resolved", "rejected", "error"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
