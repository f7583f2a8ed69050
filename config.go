package authfront

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by authfront APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Identity IdentityConfig
	Token    TokenConfig
	Routes   RouteConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
IDENTITY SERVICE CONFIG
====================================
*/

// IdentityConfig defines a public type used by authfront APIs.
//
// IdentityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type IdentityConfig struct {
	BaseURL   string
	LoginPath string // default "/auth/login"
	UserPath  string // default "/user/getUser"
	Timeout   time.Duration
}

/*
====================================
TOKEN STORE CONFIG
====================================
*/

// TokenConfig defines a public type used by authfront APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	RedisPrefix string // default "afs"
	Key         string // default "currentUser"
}

/*
====================================
ROUTE CONFIG
====================================
*/

// RouteConfig defines a public type used by authfront APIs.
//
// RouteConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RouteConfig struct {
	ProtectedRoot string // default "/admin"
	LoginPath     string // default "/login"
	CookieName    string // default "accessToken"
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by authfront APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by authfront APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Identity: IdentityConfig{
			LoginPath: "/auth/login",
			UserPath:  "/user/getUser",
			Timeout:   10 * time.Second,
		},
		Token: TokenConfig{
			RedisPrefix: "afs",
			Key:         "currentUser",
		},
		Routes: RouteConfig{
			ProtectedRoot: "/admin",
			LoginPath:     "/login",
			CookieName:    "accessToken",
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if c.Identity.BaseURL == "" {
		return errors.New("identity BaseURL required")
	}
	if !strings.HasPrefix(c.Identity.LoginPath, "/") {
		return errors.New("identity LoginPath must begin with /")
	}
	if !strings.HasPrefix(c.Identity.UserPath, "/") {
		return errors.New("identity UserPath must begin with /")
	}
	if c.Identity.Timeout < 0 {
		return errors.New("identity Timeout must not be negative")
	}
	if c.Token.Key == "" {
		return errors.New("token Key required")
	}
	if err := c.Routes.Validate(); err != nil {
		return err
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit BufferSize must not be negative")
	}
	return nil
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *RouteConfig) Validate() error {
	if !strings.HasPrefix(r.ProtectedRoot, "/") || r.ProtectedRoot == "/" {
		return errors.New("routes ProtectedRoot must be a non-root path beginning with /")
	}
	if !strings.HasPrefix(r.LoginPath, "/") {
		return errors.New("routes LoginPath must begin with /")
	}
	if r.LoginPath == r.ProtectedRoot || strings.HasPrefix(r.LoginPath+"/", r.ProtectedRoot+"/") {
		return errors.New("routes LoginPath must not live under ProtectedRoot")
	}
	if r.CookieName == "" {
		return errors.New("routes CookieName required")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}
