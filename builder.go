package authfront

import (
	"errors"
	"net/http"

	internalaudit "github.com/dkarlsn/authfront/internal/audit"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by authfront APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	redis      *redis.Client
	tokenStore TokenStore
	identity   IdentityClient
	httpClient *http.Client
	auditSink  AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithTokenStore overrides the durable credential store. Takes precedence
// over WithRedis.
func (b *Builder) WithTokenStore(store TokenStore) *Builder {
	b.tokenStore = store
	return b
}

// WithIdentityClient overrides the identity-service client. Takes precedence
// over the HTTP client built from [IdentityConfig].
func (b *Builder) WithIdentityClient(client IdentityClient) *Builder {
	b.identity = client
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*SessionStore, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	tokens := b.tokenStore
	if tokens == nil {
		if b.redis == nil {
			return nil, errors.New("token store required: provide WithRedis or WithTokenStore")
		}
		tokens = NewRedisTokenStore(b.redis, cfg.Token)
	}

	identity := b.identity
	if identity == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		client, err := NewHTTPIdentityClient(cfg.Identity, b.httpClient)
		if err != nil {
			return nil, err
		}
		identity = client
	} else if err := cfg.Routes.Validate(); err != nil {
		// A custom identity client makes Identity.BaseURL optional, but the
		// route and token sections still have to hold.
		return nil, err
	} else if cfg.Token.Key == "" {
		return nil, errors.New("token Key required")
	}

	store := &SessionStore{
		config:   cfg,
		tokens:   tokens,
		identity: identity,
		metrics:  NewMetrics(cfg.Metrics),
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink),
		status: StatusLoading,
	}

	b.built = true

	return store, nil
}
