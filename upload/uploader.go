package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Config defines a public type used by authfront APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Endpoint string // media-storage HTTP endpoint
	Preset   string // fixed upload preset identifier sent with every file
	Timeout  time.Duration
}

// Uploader posts a file plus the configured preset identifier to the
// media-storage endpoint and returns the resulting secure URL. One shot:
// no retry, no chunking, no progress reporting.
type Uploader struct {
	endpoint string
	preset   string
	client   *http.Client
}

const maxUploadResponseBytes = 1 << 20

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(cfg Config, httpClient *http.Client) (*Uploader, error) {
	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid upload endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, fmt.Errorf("upload endpoint must be http or https, got %q", cfg.Endpoint)
	}
	if cfg.Preset == "" {
		return nil, errors.New("upload preset required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Uploader{
		endpoint: endpoint.String(),
		preset:   cfg.Preset,
		client:   httpClient,
	}, nil
}

type uploadResponseBody struct {
	SecureURL string `json:"secure_url"`
}

// Upload describes the upload operation and its observable behavior.
//
// Upload may return an error when input validation, dependency calls, or security checks fail.
// Upload does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (u *Uploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("read upload payload: %w", err)
	}
	if err := form.WriteField("upload_preset", u.preset); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxUploadResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload rejected: status %d", resp.StatusCode)
	}

	var decoded uploadResponseBody
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if decoded.SecureURL == "" {
		return "", errors.New("upload response missing secure_url")
	}

	return decoded.SecureURL, nil
}
