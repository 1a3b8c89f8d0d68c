package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncTokenRejected is a no-op.
func (n *NoopRecorder) IncTokenRejected() {}

// IncPasswordChanged is a no-op.
func (n *NoopRecorder) IncPasswordChanged() {}

// IncPartyCreated is a no-op.
func (n *NoopRecorder) IncPartyCreated() {}

// IncPartyUpdated is a no-op.
func (n *NoopRecorder) IncPartyUpdated() {}

// IncPartyDeleted is a no-op.
func (n *NoopRecorder) IncPartyDeleted() {}

// IncPartyCacheHit is a no-op.
func (n *NoopRecorder) IncPartyCacheHit() {}

// IncPartyCacheMiss is a no-op.
func (n *NoopRecorder) IncPartyCacheMiss() {}

// IncValidationFailure is a no-op.
func (n *NoopRecorder) IncValidationFailure(entity string) {}
