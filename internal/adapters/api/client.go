package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"resizer/internal/core/domain"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 10 << 20
)

// Client is a JSON client for the backend API. Every request carries an
// X-Request-ID, and a bearer token when one is provided.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type serverMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends payload (if any) as JSON and returns the status and body. A
// non-2xx status yields a *domain.RemoteError carrying the server's message,
// or fallback when the body has none.
func (c *Client) do(ctx context.Context, method, path, token string, payload any,
	fallback string) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		payloadBuf := new(bytes.Buffer)
		if err := json.NewEncoder(payloadBuf).Encode(payload); err != nil {
			return 0, nil, fmt.Errorf("error encoding request: %w", err)
		}
		body = payloadBuf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("error creating request: %w", err)
	}

	requestID, err := uuid.NewV4()
	if err != nil {
		return 0, nil, fmt.Errorf("error creating request id: %w", err)
	}

	req.Header.Set("X-Request-ID", requestID.String())
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	l := log.With().
		Str("method", method).
		Str("path", path).
		Str("requestId", requestID.String()).
		Logger()

	start := time.Now()

	res, err := c.client.Do(req)
	if err != nil {
		l.Warn().Err(err).Dur("duration", time.Since(start)).Msg("api request failed")
		return 0, nil, fmt.Errorf("error executing request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("error reading response: %w", err)
	}

	l.Debug().Int("status", res.StatusCode).Dur("duration", time.Since(start)).Msg("api request completed")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return res.StatusCode, data, &domain.RemoteError{
			Status:  res.StatusCode,
			Message: messageFrom(data, fallback),
		}
	}

	return res.StatusCode, data, nil
}

func messageFrom(body []byte, fallback string) string {
	var msg serverMessage
	if err := json.Unmarshal(body, &msg); err == nil {
		if m := strings.TrimSpace(msg.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(msg.Error); m != "" {
			return m
		}
	}

	return fallback
}
