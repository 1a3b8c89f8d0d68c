package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	LoginSuccesses             uint64
	LoginFailures              uint64
	TokensRejected             uint64
	PasswordsChanged           uint64
	PartiesCreated             uint64
	PartiesUpdated             uint64
	PartiesDeleted             uint64
	PartyCacheHits             uint64
	PartyCacheMisses           uint64
	AccountValidationFailures  uint64
	PartyValidationFailures    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	loginSuccesses            uint64
	loginFailures             uint64
	tokensRejected            uint64
	passwordsChanged          uint64
	partiesCreated            uint64
	partiesUpdated            uint64
	partiesDeleted            uint64
	partyCacheHits            uint64
	partyCacheMisses          uint64
	accountValidationFailures uint64
	partyValidationFailures   uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		LoginSuccesses:            atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:             atomic.LoadUint64(&m.loginFailures),
		TokensRejected:            atomic.LoadUint64(&m.tokensRejected),
		PasswordsChanged:          atomic.LoadUint64(&m.passwordsChanged),
		PartiesCreated:            atomic.LoadUint64(&m.partiesCreated),
		PartiesUpdated:            atomic.LoadUint64(&m.partiesUpdated),
		PartiesDeleted:            atomic.LoadUint64(&m.partiesDeleted),
		PartyCacheHits:            atomic.LoadUint64(&m.partyCacheHits),
		PartyCacheMisses:          atomic.LoadUint64(&m.partyCacheMisses),
		AccountValidationFailures: atomic.LoadUint64(&m.accountValidationFailures),
		PartyValidationFailures:   atomic.LoadUint64(&m.partyValidationFailures),
	}
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncTokenRejected increments the rejected token counter.
func (m *InMemoryRecorder) IncTokenRejected() {
	atomic.AddUint64(&m.tokensRejected, 1)
}

// IncPasswordChanged increments the password change counter.
func (m *InMemoryRecorder) IncPasswordChanged() {
	atomic.AddUint64(&m.passwordsChanged, 1)
}

// IncPartyCreated increments the party creation counter.
func (m *InMemoryRecorder) IncPartyCreated() {
	atomic.AddUint64(&m.partiesCreated, 1)
}

// IncPartyUpdated increments the party update counter.
func (m *InMemoryRecorder) IncPartyUpdated() {
	atomic.AddUint64(&m.partiesUpdated, 1)
}

// IncPartyDeleted increments the party deletion counter.
func (m *InMemoryRecorder) IncPartyDeleted() {
	atomic.AddUint64(&m.partiesDeleted, 1)
}

// IncPartyCacheHit increments the party cache hit counter.
func (m *InMemoryRecorder) IncPartyCacheHit() {
	atomic.AddUint64(&m.partyCacheHits, 1)
}

// IncPartyCacheMiss increments the party cache miss counter.
func (m *InMemoryRecorder) IncPartyCacheMiss() {
	atomic.AddUint64(&m.partyCacheMisses, 1)
}

// IncValidationFailure increments the validation failure counter for the
// given entity.
func (m *InMemoryRecorder) IncValidationFailure(entity string) {
	switch entity {
	case "party":
		atomic.AddUint64(&m.partyValidationFailures, 1)
	default:
		atomic.AddUint64(&m.accountValidationFailures, 1)
	}
}
