package holidaze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://v2.api.noroff.dev"

// getRetries is the extra-attempt budget for idempotent reads on transport
// failure. Writes are never retried: a duplicated POST /bookings would create
// a duplicate reservation upstream.
const getRetries = 2

var ErrMissingAPIKey = errors.New("holidaze: API key is not configured")

// APIError carries an upstream failure to the caller. Status 0 means the
// request never produced an HTTP response (transport failure); any other
// value is the upstream status code, with the human-readable messages
// extracted from the response body.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return "holidaze: network error: " + strings.Join(e.Messages, "; ")
	}
	return fmt.Sprintf("holidaze: upstream status %d: %s", e.Status, strings.Join(e.Messages, "; "))
}

// Client talks to the upstream Holidaze v2 API. Every request carries the
// X-Noroff-API-Key header; protected calls additionally carry the caller's
// bearer token.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New builds a Client. An empty API key is a hard configuration error and is
// reported before any request is attempted.
func New(baseURL, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// envelope is the upstream success body; every endpoint wraps its payload in
// a data field, lists additionally carry meta.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta *ListMeta       `json:"meta"`
}

type errorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Status string `json:"status"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, dest any) (*ListMeta, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("holidaze: encode request: %w", err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += getRetries
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("holidaze: build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Noroff-API-Key", c.apiKey)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return c.decode(resp, dest)
	}

	return nil, &APIError{Status: 0, Messages: []string{"Network error. Please check your connection.", lastErr.Error()}}
}

func (c *Client) decode(resp *http.Response, dest any) (*ListMeta, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: 0, Messages: []string{"Network error. Please check your connection.", err.Error()}}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, apiErrorFrom(resp.StatusCode, raw)
	}

	if dest == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Messages: []string{"Unexpected response from the booking service."}}
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Messages: []string{"Unexpected response from the booking service."}}
	}
	return env.Meta, nil
}

// apiErrorFrom extracts the upstream message list, falling back to a generic
// message when the body is unparseable.
func apiErrorFrom(status int, raw []byte) *APIError {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Errors) > 0 {
		msgs := make([]string, 0, len(body.Errors))
		for _, e := range body.Errors {
			if e.Message != "" {
				msgs = append(msgs, e.Message)
			}
		}
		if len(msgs) > 0 {
			return &APIError{Status: status, Messages: msgs}
		}
	}
	return &APIError{Status: status, Messages: []string{fmt.Sprintf("HTTP %d", status)}}
}
