package middleware

import (
	"context"
	"net/http"
	"strings"

	authfront "github.com/dkarlsn/authfront"
	"github.com/dkarlsn/authfront/jwt"
)

type claimsContextKey struct{}

// TokenVerifier is the cryptographic second tier behind the presence-only
// gate. [jwt.Manager] satisfies it.
type TokenVerifier interface {
	VerifyAccess(token string) (*jwt.Claims, error)
}

func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*jwt.Claims)
	return claims, ok
}

// Guard returns middleware that verifies the bearer artifact on every
// request and injects the verified claims into the request context. It must
// be mounted on every protected endpoint regardless of gate admission.
// metrics may be nil.
func Guard(verifier TokenVerifier, metrics *authfront.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				metrics.Inc(authfront.MetricGuardRejected)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				metrics.Inc(authfront.MetricGuardRejected)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.VerifyAccess(token)
			if err != nil {
				metrics.Inc(authfront.MetricGuardRejected)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			metrics.Inc(authfront.MetricGuardAllowed)
			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
