// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Authentication metrics
	IncLoginSuccess()
	IncLoginFailure()
	IncTokenRejected()
	IncPasswordChanged()

	// Record management metrics
	IncPartyCreated()
	IncPartyUpdated()
	IncPartyDeleted()
	IncPartyCacheHit()
	IncPartyCacheMiss()

	// Validation metrics
	IncValidationFailure(entity string) // entity: "account" or "party"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
