package authfront

import (
	"context"
	"errors"
	"sync"
	"time"

	internalaudit "github.com/dkarlsn/authfront/internal/audit"
	"github.com/google/uuid"
)

const (
	eventLogin             = "session.login"
	eventLogout            = "session.logout"
	eventVerify            = "session.verify"
	eventArtifactDiscarded = "session.artifact_discarded"
	eventArtifactClearFail = "session.artifact_clear_failed"
)

// SessionStore owns the tri-state authentication status, the current user
// profile, and the credential artifact lifecycle. It is the fine-grained
// source of truth consumed by every surface that needs "am I logged in, as
// whom"; the middleware gate is the coarse presence-only first filter and
// shares no state with it.
//
// SessionStore instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionStore struct {
	config   Config
	tokens   TokenStore
	identity IdentityClient
	audit    *internalaudit.Dispatcher
	metrics  *Metrics

	mu       sync.Mutex
	status   SessionStatus
	user     *Profile
	inflight *verifyFlight

	initOnce sync.Once
}

// verifyFlight collapses overlapping verification calls: the first caller
// performs the identity round-trip, later callers block on done and adopt
// the same settled snapshot.
type verifyFlight struct {
	done chan struct{}
	snap Snapshot
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *SessionStore) Close() {
	if s == nil {
		return
	}
	if s.audit != nil {
		s.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *SessionStore) AuditDropped() uint64 {
	if s == nil || s.audit == nil {
		return 0
	}
	return s.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *SessionStore) MetricsSnapshot() MetricsSnapshot {
	if s == nil || s.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return s.metrics.Snapshot()
}

// Metrics returns the store's metrics instance for sharing with middleware.
func (s *SessionStore) Metrics() *Metrics {
	if s == nil {
		return nil
	}
	return s.metrics
}

// Routes returns the route configuration the store was built with, for
// mounting the middleware gate against the same paths and cookie name.
func (s *SessionStore) Routes() RouteConfig {
	if s == nil {
		return RouteConfig{}
	}
	return s.config.Routes
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *SessionStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionStore) snapshotLocked() Snapshot {
	snap := Snapshot{Status: s.status}
	if s.user != nil {
		user := *s.user
		snap.User = &user
	}
	return snap
}

// Status describes the status operation and its observable behavior.
//
// Status does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *SessionStore) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CurrentUser returns the authenticated profile, or nil when the session is
// loading or unauthenticated.
func (s *SessionStore) CurrentUser() *Profile {
	return s.Snapshot().User
}

func (s *SessionStore) setState(status SessionStatus, user *Profile) {
	s.mu.Lock()
	s.status = status
	s.user = user
	s.mu.Unlock()
}

// Initialize runs the startup verification exactly once per store lifetime:
// no stored artifact settles Unauthenticated without any identity call; a
// stored artifact is presented to the identity service and discarded on any
// failure. Initialize never surfaces an error — diagnostics go to the audit
// pipeline and the state always settles.
//
// The store is observably [StatusLoading] only until this first verification
// settles; later CheckAuth calls keep the prior state visible while in
// flight.
func (s *SessionStore) Initialize(ctx context.Context) Snapshot {
	if s == nil {
		return Snapshot{Status: StatusUnauthenticated}
	}
	s.initOnce.Do(func() {
		s.CheckAuth(ctx)
	})
	return s.Snapshot()
}

// CheckAuth forces a re-validation of the stored credential artifact against
// the identity service. At most one verification is outstanding at a time;
// concurrent callers await the in-flight result rather than issuing duplicate
// identity calls. CheckAuth never surfaces an error: any failure discards the
// artifact and settles the state to [StatusUnauthenticated].
func (s *SessionStore) CheckAuth(ctx context.Context) Snapshot {
	if s == nil {
		return Snapshot{Status: StatusUnauthenticated}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if flight := s.inflight; flight != nil {
		s.mu.Unlock()
		s.metrics.Inc(MetricVerifyDeduplicated)
		select {
		case <-flight.done:
			return flight.snap
		case <-ctx.Done():
			// The caller gave up; the flight still settles on its own.
			return s.Snapshot()
		}
	}
	flight := &verifyFlight{done: make(chan struct{})}
	s.inflight = flight
	s.mu.Unlock()

	snap := s.verify(ctx)

	flight.snap = snap
	s.mu.Lock()
	s.inflight = nil
	s.mu.Unlock()
	close(flight.done)

	return snap
}

// verify performs one verification round: load artifact, present it, settle.
func (s *SessionStore) verify(ctx context.Context) Snapshot {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrCredentialAbsent) {
			s.metrics.Inc(MetricVerifySkipped)
			s.setState(StatusUnauthenticated, nil)
			s.emit(ctx, AuditEvent{EventType: eventVerify, Success: true, Metadata: map[string]string{"settled": "unauthenticated", "reason": "credential_absent"}})
			return s.Snapshot()
		}
		// Durable store unreachable: fail closed without touching the
		// artifact — it may still be valid once the store recovers.
		s.metrics.Inc(MetricVerifyTransportFailure)
		s.setState(StatusUnauthenticated, nil)
		s.emit(ctx, AuditEvent{EventType: eventVerify, Error: err.Error(), Metadata: map[string]string{"settled": "unauthenticated", "reason": "token_store_unavailable"}})
		return s.Snapshot()
	}

	start := time.Now()
	profile, err := s.identity.FetchUser(ctx, token)
	s.metrics.Observe(MetricVerifyLatency, time.Since(start))
	if err != nil {
		s.discardArtifact(ctx, err)
		s.setState(StatusUnauthenticated, nil)
		return s.Snapshot()
	}

	s.metrics.Inc(MetricVerifySuccess)
	s.setState(StatusAuthenticated, profile)
	s.emit(ctx, AuditEvent{EventType: eventVerify, UserID: profile.ID, Success: true, Metadata: map[string]string{"settled": "authenticated"}})
	return s.Snapshot()
}

// discardArtifact deletes the stored artifact after the identity service
// rejected it (or was unreachable — treated identically, fail closed).
func (s *SessionStore) discardArtifact(ctx context.Context, cause error) {
	if errors.Is(cause, ErrTransportFailure) {
		s.metrics.Inc(MetricVerifyTransportFailure)
	} else {
		s.metrics.Inc(MetricVerifyRejected)
	}
	s.emit(ctx, AuditEvent{EventType: eventArtifactDiscarded, Error: cause.Error()})

	if err := s.tokens.Clear(ctx); err != nil {
		s.emit(ctx, AuditEvent{EventType: eventArtifactClearFail, Error: err.Error()})
	}
}

// Login authenticates against the identity service. A rejected attempt
// returns a [*LoginError] carrying the service message and leaves session
// state and stored artifact unchanged. On acceptance the new artifact is
// persisted first, then the profile is fetched; a failed follow-up fetch
// surfaces an error without rolling back the stored artifact.
func (s *SessionStore) Login(ctx context.Context, identifier, secret string) (*LoginResult, error) {
	if s == nil {
		return nil, ErrStoreNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}

	reply, err := s.identity.Login(ctx, identifier, secret)
	if err != nil {
		s.metrics.Inc(MetricLoginFailure)
		s.emit(ctx, AuditEvent{EventType: eventLogin, Identifier: identifier, Error: err.Error()})
		return nil, err
	}

	if err := s.tokens.Save(ctx, reply.Token); err != nil {
		s.metrics.Inc(MetricLoginFailure)
		s.emit(ctx, AuditEvent{EventType: eventLogin, Identifier: identifier, Error: err.Error(), Metadata: map[string]string{"stage": "persist"}})
		return nil, err
	}

	profile, err := s.identity.FetchUser(ctx, reply.Token)
	if err != nil {
		// Artifact stored, profile not loaded: surfaced to the caller, not
		// rolled back. The next CheckAuth re-derives the truth.
		s.metrics.Inc(MetricLoginFailure)
		s.emit(ctx, AuditEvent{EventType: eventLogin, Identifier: identifier, Error: err.Error(), Metadata: map[string]string{"stage": "profile_fetch"}})
		return nil, err
	}

	s.metrics.Inc(MetricLoginSuccess)
	s.setState(StatusAuthenticated, profile)
	s.emit(ctx, AuditEvent{EventType: eventLogin, Identifier: identifier, UserID: profile.ID, Success: true})

	return &LoginResult{Token: reply.Token, User: *profile, Raw: reply.Raw}, nil
}

// Logout clears the stored credential artifact and settles the state to
// [StatusUnauthenticated]. It is unconditional and idempotent and never
// fails: a failed clear is audited while the state still settles.
func (s *SessionStore) Logout(ctx context.Context) {
	if s == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var userID string
	if u := s.CurrentUser(); u != nil {
		userID = u.ID
	}

	if err := s.tokens.Clear(ctx); err != nil {
		s.emit(ctx, AuditEvent{EventType: eventArtifactClearFail, UserID: userID, Error: err.Error()})
	}

	s.setState(StatusUnauthenticated, nil)
	s.metrics.Inc(MetricLogout)
	s.emit(ctx, AuditEvent{EventType: eventLogout, UserID: userID, Success: true})
}

func (s *SessionStore) emit(ctx context.Context, event AuditEvent) {
	if s.audit == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	s.audit.Emit(ctx, event)
}
