package authfront

import (
	"errors"
	"fmt"
)

var (
	// ErrCredentialAbsent is an exported constant or variable used by the session core.
	ErrCredentialAbsent = errors.New("credential artifact absent")
	// ErrCredentialRejected is an exported constant or variable used by the session core.
	ErrCredentialRejected = errors.New("credential artifact rejected")
	// ErrTransportFailure is an exported constant or variable used by the session core.
	ErrTransportFailure = errors.New("identity service unreachable")
	// ErrLoginRejected is an exported constant or variable used by the session core.
	ErrLoginRejected = errors.New("login rejected")
	// ErrProfileInvalid is an exported constant or variable used by the session core.
	ErrProfileInvalid = errors.New("profile payload invalid")
	// ErrTokenStoreUnavailable is an exported constant or variable used by the session core.
	ErrTokenStoreUnavailable = errors.New("token store unavailable")
	// ErrStoreNotReady is an exported constant or variable used by the session core.
	ErrStoreNotReady = errors.New("session store not ready")
)

// LoginError carries the identity service's human-readable rejection message
// for an explicit login attempt. It unwraps to [ErrLoginRejected] so callers
// can branch with errors.Is while still surfacing Message to the form.
type LoginError struct {
	Status  int
	Message string
}

func (e *LoginError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("login rejected (status %d)", e.Status)
	}
	return e.Message
}

func (e *LoginError) Unwrap() error { return ErrLoginRejected }
