package authfront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// IdentityClient is the request/response boundary to the external identity
// service. The session core never looks inside the credential artifact; the
// service's verdict on a presented artifact is final.
type IdentityClient interface {
	Login(ctx context.Context, identifier, secret string) (*LoginReply, error)
	FetchUser(ctx context.Context, token string) (*Profile, error)
}

// HTTPIdentityClient defines a public type used by authfront APIs.
//
// HTTPIdentityClient instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HTTPIdentityClient struct {
	baseURL   string
	loginPath string
	userPath  string
	client    *http.Client
}

const maxIdentityResponseBytes = 1 << 20

// NewHTTPIdentityClient creates an [HTTPIdentityClient] from cfg. When
// httpClient is nil a client bounded by cfg.Timeout is constructed; the
// timeout turns a hung identity service into a transport failure rather
// than an unbounded wait.
func NewHTTPIdentityClient(cfg IdentityConfig, httpClient *http.Client) (*HTTPIdentityClient, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid identity BaseURL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("identity BaseURL must be http or https, got %q", cfg.BaseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/auth/login"
	}
	userPath := cfg.UserPath
	if userPath == "" {
		userPath = "/user/getUser"
	}
	return &HTTPIdentityClient{
		baseURL:   strings.TrimRight(base.String(), "/"),
		loginPath: loginPath,
		userPath:  userPath,
		client:    httpClient,
	}, nil
}

type loginRequestBody struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type loginResponseBody struct {
	Token string `json:"token"`
}

type failureResponseBody struct {
	Message string `json:"message"`
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *HTTPIdentityClient) Login(ctx context.Context, identifier, secret string) (*LoginReply, error) {
	payload, err := json.Marshal(loginRequestBody{Identifier: identifier, Secret: secret})
	if err != nil {
		return nil, fmt.Errorf("%w: encode login request: %v", ErrTransportFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.loginPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIdentityResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure failureResponseBody
		// A malformed failure body still carries the status; the message
		// falls back to empty.
		_ = json.Unmarshal(body, &failure)
		return nil, &LoginError{Status: resp.StatusCode, Message: failure.Message}
	}

	var success loginResponseBody
	if err := json.Unmarshal(body, &success); err != nil {
		return nil, fmt.Errorf("%w: decode login response: %v", ErrTransportFailure, err)
	}
	if success.Token == "" {
		return nil, fmt.Errorf("%w: login response missing token", ErrTransportFailure)
	}

	return &LoginReply{Token: success.Token, Raw: json.RawMessage(body)}, nil
}

// FetchUser describes the fetchuser operation and its observable behavior.
//
// FetchUser may return an error when input validation, dependency calls, or security checks fail.
// FetchUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *HTTPIdentityClient) FetchUser(ctx context.Context, token string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.userPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIdentityResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Any non-success is "artifact invalid"; the reason is not inspected.
		return nil, fmt.Errorf("%w: status %d", ErrCredentialRejected, resp.StatusCode)
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %v", ErrTransportFailure, err)
	}
	if err := validateProfile(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func validateProfile(p *Profile) error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrProfileInvalid)
	}
	if p.Email == "" {
		return fmt.Errorf("%w: missing email", ErrProfileInvalid)
	}
	return nil
}
