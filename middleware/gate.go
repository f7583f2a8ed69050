package middleware

import (
	"net/http"
	"strings"

	authfront "github.com/dkarlsn/authfront"
)

// RouteClass is the protection class derived from a request path.
type RouteClass uint8

const (
	// RouteUnclassified is an exported constant or variable used by the admission gate.
	RouteUnclassified RouteClass = iota
	// RouteProtected is an exported constant or variable used by the admission gate.
	RouteProtected
	// RoutePublic is an exported constant or variable used by the admission gate.
	RoutePublic
)

// Decision is the total output space of the admission gate: pass the request
// through, or redirect it. The zero value is "continue".
type Decision struct {
	Location string
}

// Redirects reports whether the decision is a redirect.
func (d Decision) Redirects() bool { return d.Location != "" }

// Classify derives the protection class of path. A malformed or empty path
// never errors; it falls into [RouteUnclassified].
func Classify(routes authfront.RouteConfig, path string) RouteClass {
	switch {
	case path == routes.ProtectedRoot, strings.HasPrefix(path, routes.ProtectedRoot+"/"):
		return RouteProtected
	case path == routes.LoginPath:
		return RoutePublic
	default:
		return RouteUnclassified
	}
}

// Decide is the admission rule: a pure, total function of the request path
// and credential presence. It checks presence only — never validity; gate
// admission is not authorization.
func Decide(routes authfront.RouteConfig, path string, hasCredential bool) Decision {
	switch Classify(routes, path) {
	case RouteProtected:
		if !hasCredential {
			return Decision{Location: routes.LoginPath}
		}
	case RoutePublic:
		if hasCredential {
			return Decision{Location: routes.ProtectedRoot}
		}
	}
	return Decision{}
}

// Gate returns middleware enforcing the admission rule before the wrapped
// handler runs: no protected content is ever streamed ahead of the decision.
// Paths outside the protected root and the login path bypass the gate
// entirely. metrics may be nil.
func Gate(routes authfront.RouteConfig, metrics *authfront.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class := Classify(routes, r.URL.Path)
			if class == RouteUnclassified {
				next.ServeHTTP(w, r)
				return
			}

			decision := Decide(routes, r.URL.Path, hasCredentialCookie(r, routes.CookieName))
			if decision.Redirects() {
				if class == RouteProtected {
					metrics.Inc(authfront.MetricGateRedirectedLogin)
				} else {
					metrics.Inc(authfront.MetricGateRedirectedApp)
				}
				http.Redirect(w, r, decision.Location, http.StatusFound)
				return
			}

			metrics.Inc(authfront.MetricGateAdmitted)
			next.ServeHTTP(w, r)
		})
	}
}

func hasCredentialCookie(r *http.Request, name string) bool {
	cookie, err := r.Cookie(name)
	return err == nil && cookie.Value != ""
}
