package middleware

import (
	"net/http"
	"time"
)

// SetCredentialCookie writes the gate's presence cookie after a successful
// login. The cookie and the durable token store are independent copies of
// the credential artifact; calling this next to SessionStore.Login keeps
// them in lockstep.
func SetCredentialCookie(w http.ResponseWriter, name, token string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, cookie)
}

// ClearCredentialCookie expires the gate's presence cookie on logout.
func ClearCredentialCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
