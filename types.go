package authfront

import (
	"encoding/json"
	"io"

	internalaudit "github.com/dkarlsn/authfront/internal/audit"
)

// SessionStatus represents the observable authentication state of the
// session store. Exactly one status holds at any observable instant.
type SessionStatus uint8

const (
	// StatusLoading is an exported constant or variable used by the session core.
	StatusLoading SessionStatus = iota
	// StatusAuthenticated is an exported constant or variable used by the session core.
	StatusAuthenticated
	// StatusUnauthenticated is an exported constant or variable used by the session core.
	StatusUnauthenticated
)

func (s SessionStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Profile is the typed user record returned by the identity service.
// It is validated at the service boundary; a payload that fails validation
// is a [ErrProfileInvalid] and never reaches session state.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Snapshot is a point-in-time view of the session state. User is non-nil
// only when Status is [StatusAuthenticated].
type Snapshot struct {
	Status SessionStatus
	User   *Profile
}

// LoginReply is the decoded success payload of the identity service's
// authentication endpoint. Raw preserves the full response body for callers
// that consume service-specific fields beyond the token.
type LoginReply struct {
	Token string
	Raw   json.RawMessage
}

// LoginResult is returned by [SessionStore.Login] on full success: the
// persisted credential artifact, the fetched profile, and the raw login
// response.
type LoginResult struct {
	Token string
	User  Profile
	Raw   json.RawMessage
}

// AuditEvent is a structured audit record emitted by the session store.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the store's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
