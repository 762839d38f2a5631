package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"resizer/internal/core/domain"
	"strings"

	"github.com/rs/zerolog/log"
)

func (c *Client) Submit(ctx context.Context, token string,
	req domain.TransformationRequest) (domain.TransformationResult, error) {
	_, body, err := c.do(ctx, http.MethodPost, "/resize/resizeImg", token, req, "Resize failed")
	if err != nil {
		return domain.TransformationResult{}, err
	}

	var result domain.TransformationResult
	if err := json.Unmarshal(body, &result); err != nil {
		// Treated as a response without an image url by the caller.
		log.Warn().Err(err).Msg("malformed resize response")
		return domain.TransformationResult{}, nil
	}

	return result, nil
}

// ListJobs fetches the user's jobs. A response whose data field is not an
// array yields an empty list, and records that cannot be decoded are skipped.
func (c *Client) ListJobs(ctx context.Context, token, userID string) ([]domain.JobRecord, error) {
	_, body, err := c.do(ctx, http.MethodGet, "/resize/all/"+url.PathEscape(userID), token, nil,
		"Failed to fetch resizes")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Warn().Err(err).Msg("malformed job list response")
		return nil, nil
	}

	var raw []json.RawMessage
	if !bytes.HasPrefix(bytes.TrimSpace(envelope.Data), []byte("[")) ||
		json.Unmarshal(envelope.Data, &raw) != nil {
		log.Warn().Msg("job list data is not an array")
		return nil, nil
	}

	records := make([]domain.JobRecord, 0, len(raw))
	for i, item := range raw {
		var r jobRecord
		if err := json.Unmarshal(item, &r); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping malformed job record")
			continue
		}

		record := r.toDomain()
		if record.ID == "" {
			log.Warn().Int("index", i).Msg("skipping job record without id")
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

func (c *Client) DeleteJob(ctx context.Context, token, jobID string) error {
	_, _, err := c.do(ctx, http.MethodDelete, "/resize/"+url.PathEscape(jobID), token, nil,
		"Failed to delete resize")

	return err
}

type jobRecord struct {
	MongoID         flexString `json:"_id"`
	ID              flexString `json:"id"`
	UserID          flexString `json:"userId"`
	ImageLink       string     `json:"imageLink"`
	ResizedImageURL string     `json:"resizedImageUrl"`
	ImageFormat     string     `json:"imageFormat"`
	OutputFormat    string     `json:"outputFormat"`
	Width           flexString `json:"width"`
	Height          flexString `json:"height"`
	CreatedAt       string     `json:"createdAt"`
}

func (r jobRecord) toDomain() domain.JobRecord {
	id := strings.TrimSpace(string(r.MongoID))
	if id == "" {
		id = strings.TrimSpace(string(r.ID))
	}

	return domain.JobRecord{
		ID:              id,
		UserID:          string(r.UserID),
		ImageLink:       r.ImageLink,
		ResizedImageURL: r.ResizedImageURL,
		ImageFormat:     r.ImageFormat,
		OutputFormat:    r.OutputFormat,
		Width:           string(r.Width),
		Height:          string(r.Height),
		CreatedAt:       r.CreatedAt,
	}
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("want string or number, got %s", b)
	}

	*f = flexString(n.String())

	return nil
}
