package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RegistrationsCreated   uint64
	RegistrationsDuplicate uint64
	RegistrationsInvalid   uint64
	LoginsSuccess          uint64
	LoginsFailure          uint64
	HashDurationCount      uint64
	HashDurationTotalNs    int64
	TokensIssued           uint64
	IdentitiesResolved     uint64
	IdentitiesRejected     uint64
	IdentityErrors         uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	registrationsCreated   uint64
	registrationsDuplicate uint64
	registrationsInvalid   uint64
	loginsSuccess          uint64
	loginsFailure          uint64
	hashDurationCount      uint64
	hashDurationTotalNs    int64
	tokensIssued           uint64
	identitiesResolved     uint64
	identitiesRejected     uint64
	identityErrors         uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		RegistrationsCreated:   atomic.LoadUint64(&m.registrationsCreated),
		RegistrationsDuplicate: atomic.LoadUint64(&m.registrationsDuplicate),
		RegistrationsInvalid:   atomic.LoadUint64(&m.registrationsInvalid),
		LoginsSuccess:          atomic.LoadUint64(&m.loginsSuccess),
		LoginsFailure:          atomic.LoadUint64(&m.loginsFailure),
		HashDurationCount:      atomic.LoadUint64(&m.hashDurationCount),
		HashDurationTotalNs:    atomic.LoadInt64(&m.hashDurationTotalNs),
		TokensIssued:           atomic.LoadUint64(&m.tokensIssued),
		IdentitiesResolved:     atomic.LoadUint64(&m.identitiesResolved),
		IdentitiesRejected:     atomic.LoadUint64(&m.identitiesRejected),
		IdentityErrors:         atomic.LoadUint64(&m.identityErrors),
	}
}

// IncRegistration increments the registration counter for the given status.
func (m *InMemoryRecorder) IncRegistration(status string) {
	switch status {
	case "created":
		atomic.AddUint64(&m.registrationsCreated, 1)
	case "duplicate":
		atomic.AddUint64(&m.registrationsDuplicate, 1)
	default:
		atomic.AddUint64(&m.registrationsInvalid, 1)
	}
}

// IncLogin increments the login counter for the given status.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == "success" {
		atomic.AddUint64(&m.loginsSuccess, 1)
	} else {
		atomic.AddUint64(&m.loginsFailure, 1)
	}
}

// ObserveHashDuration records password hashing duration.
func (m *InMemoryRecorder) ObserveHashDuration(duration time.Duration) {
	atomic.AddUint64(&m.hashDurationCount, 1)
	atomic.AddInt64(&m.hashDurationTotalNs, duration.Nanoseconds())
}

// IncTokenIssued increments the issued-token counter.
func (m *InMemoryRecorder) IncTokenIssued() {
	atomic.AddUint64(&m.tokensIssued, 1)
}

// IncIdentityResolution increments the resolution counter for the given status.
func (m *InMemoryRecorder) IncIdentityResolution(status string) {
	switch status {
	case "resolved":
		atomic.AddUint64(&m.identitiesResolved, 1)
	case "rejected":
		atomic.AddUint64(&m.identitiesRejected, 1)
	default:
		atomic.AddUint64(&m.identityErrors, 1)
	}
}
