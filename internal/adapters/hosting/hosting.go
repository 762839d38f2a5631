package hosting

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

	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 60 * time.Second

	maxResponseBytes = 10 << 20

	uploadFailed = "Upload failed"

	maxExcerptRunes = 200
)

// Uploader posts data URIs to the image hosting endpoint.
type Uploader struct {
	endpoint string
	client   *http.Client
}

func NewUploader(endpoint string, timeout time.Duration) *Uploader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Uploader{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type uploadRequest struct {
	File    string                `json:"file"`
	Options *domain.UploadOptions `json:"options,omitempty"`
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     string `json:"error"`
}

// Upload returns the secure URL of the hosted image. A response without one
// is a *domain.RemoteError carrying the endpoint's error text.
func (u *Uploader) Upload(ctx context.Context, dataURI string, opts domain.UploadOptions) (string, error) {
	payload := uploadRequest{File: dataURI}
	if opts.Format != "" {
		payload.Options = &opts
	}

	payloadBuf := new(bytes.Buffer)
	if err := json.NewEncoder(payloadBuf).Encode(payload); err != nil {
		return "", fmt.Errorf("error encoding upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, payloadBuf)
	if err != nil {
		log.Error().Err(err).Msg("error creating POST request for image host")
		return "", err
	}

	req.Header.Add("Content-Type", "application/json")

	res, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error executing upload request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("error reading upload response: %w", err)
	}

	raw := strings.TrimSpace(string(body))

	var result uploadResponse
	if raw != "" {
		if err := json.Unmarshal(body, &result); err != nil {
			log.Warn().Err(err).Int("status", res.StatusCode).Msg("malformed upload response")
			return "", &domain.RemoteError{
				Status:  res.StatusCode,
				Message: fmt.Sprintf("%s (non-JSON response): %s", uploadFailed, excerpt(raw)),
			}
		}
	}

	log.Debug().Int("status", res.StatusCode).Str("secureUrl", result.SecureURL).Msg("image host response")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		message := strings.TrimSpace(result.Error)
		if message == "" {
			message = uploadFailed
		}
		return "", &domain.RemoteError{Status: res.StatusCode, Message: message}
	}

	if result.SecureURL == "" {
		return "", &domain.RemoteError{Status: res.StatusCode, Message: uploadFailed + ": missing image URL"}
	}

	return result.SecureURL, nil
}

// excerpt shortens a response body for display.
func excerpt(raw string) string {
	runes := []rune(raw)
	if len(runes) <= maxExcerptRunes {
		return raw
	}

	return string(runes[:maxExcerptRunes])
}
