package insights

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrFetchFailed matches every error returned by Client.Fetch.
var ErrFetchFailed = errors.New("failed to load insights")

// FetchError describes why the insights request failed
type FetchError struct {
	Role   string
	Status int // 0 when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to load insights for %q (status %d): %v", e.Role, e.Status, e.Err)
	}
	return fmt.Sprintf("failed to load insights for %q: %v", e.Role, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// Fetcher loads the insights payload for a role
type Fetcher interface {
	Fetch(ctx context.Context, role string) (*Payload, []byte, error)
}

// Client calls the insights endpoint over HTTP
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a client for endpoint. A zero timeout falls back to 30s.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Fetch performs a single GET <endpoint>?role=<role>. It returns the decoded
// payload together with the raw body so the caller can persist it verbatim.
func (c *Client) Fetch(ctx context.Context, role string) (*Payload, []byte, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, nil, &FetchError{Role: role, Err: fmt.Errorf("invalid endpoint: %w", err)}
	}
	q := u.Query()
	q.Set("role", role)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil, &FetchError{Role: role, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, &FetchError{Role: role, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &FetchError{Role: role, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &FetchError{Role: role, Status: resp.StatusCode, Err: fmt.Errorf("API error: %s", http.StatusText(resp.StatusCode))}
	}

	payload, err := DecodePayload(body)
	if err != nil {
		return nil, nil, &FetchError{Role: role, Status: resp.StatusCode, Err: err}
	}

	log.Debug().
		Str("role", role).
		Int("questions", len(payload.Questions)).
		Dur("took", time.Since(start)).
		Msg("📥 Insights fetched")

	return payload, body, nil
}
