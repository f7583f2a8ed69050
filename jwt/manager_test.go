package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"
)

func newHS256Manager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()

	m, err := NewManager(Config{
		AccessTTL:     ttl,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("test-signing-secret"),
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestHS256RoundTrip(t *testing.T) {
	m := newHS256Manager(t, 15*time.Minute)

	token, err := m.CreateAccess("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("CreateAccess: %v", err)
	}

	claims, err := m.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.UID != "user-1" || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestEd25519RoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	m, err := NewManager(Config{
		AccessTTL:     15 * time.Minute,
		SigningMethod: MethodEd25519,
		PrivateKey:    priv,
		PublicKey:     pub,
		Issuer:        "authfront-test",
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := m.CreateAccess("user-2", "")
	if err != nil {
		t.Fatalf("CreateAccess: %v", err)
	}

	claims, err := m.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.UID != "user-2" || claims.Issuer != "authfront-test" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := newHS256Manager(t, time.Nanosecond)

	token, err := m.CreateAccess("user-1", "")
	if err != nil {
		t.Fatalf("CreateAccess: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := m.VerifyAccess(token); err == nil {
		t.Fatal("expected expired token rejection")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	signer := newHS256Manager(t, 15*time.Minute)

	other, err := NewManager(Config{
		AccessTTL:     15 * time.Minute,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("different-secret"),
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := signer.CreateAccess("user-1", "")
	if err != nil {
		t.Fatalf("CreateAccess: %v", err)
	}

	if _, err := other.VerifyAccess(token); err == nil {
		t.Fatal("expected signature rejection")
	}
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	edSigner, err := NewManager(Config{
		AccessTTL:     15 * time.Minute,
		SigningMethod: MethodEd25519,
		PrivateKey:    priv,
		PublicKey:     pub,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	hsVerifier := newHS256Manager(t, 15*time.Minute)

	token, err := edSigner.CreateAccess("user-1", "")
	if err != nil {
		t.Fatalf("CreateAccess: %v", err)
	}

	if _, err := hsVerifier.VerifyAccess(token); err == nil {
		t.Fatal("expected algorithm mismatch rejection")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newHS256Manager(t, 15*time.Minute)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.VerifyAccess(garbage); err == nil {
			t.Fatalf("expected rejection for %q", garbage)
		}
	}
}

func TestVerifyChecksIssuerAndAudience(t *testing.T) {
	signer, err := NewManager(Config{
		AccessTTL:     15 * time.Minute,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("shared-secret"),
		Issuer:        "issuer-a",
		Audience:      "frontend",
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	verifier, err := NewManager(Config{
		AccessTTL:     15 * time.Minute,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("shared-secret"),
		Issuer:        "issuer-b",
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := signer.CreateAccess("user-1", "")
	if err != nil {
		t.Fatalf("CreateAccess: %v", err)
	}

	if _, err := signer.VerifyAccess(token); err != nil {
		t.Fatalf("self-verification failed: %v", err)
	}
	if _, err := verifier.VerifyAccess(token); err == nil {
		t.Fatal("expected issuer mismatch rejection")
	}
}

func TestNewManagerValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero ttl", Config{SigningMethod: MethodHS256, PrivateKey: []byte("k")}},
		{"excessive leeway", Config{AccessTTL: time.Minute, Leeway: 3 * time.Minute, SigningMethod: MethodHS256, PrivateKey: []byte("k")}},
		{"hs256 without key", Config{AccessTTL: time.Minute, SigningMethod: MethodHS256}},
		{"ed25519 without public key", Config{AccessTTL: time.Minute, SigningMethod: MethodEd25519}},
		{"unknown method", Config{AccessTTL: time.Minute, SigningMethod: "rs256", PrivateKey: []byte("k")}},
		{"excessive max future iat", Config{AccessTTL: time.Minute, SigningMethod: MethodHS256, PrivateKey: []byte("k"), MaxFutureIAT: 25 * time.Hour}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewManager(tc.cfg); err == nil {
				t.Fatal("expected configuration rejection")
			}
		})
	}
}
