package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const createdAtLayout = "Jan 2, 2006 • 15:04"

// NewJob turns a service record into the dashboard display model. Dates are
// rendered in loc.
func NewJob(r JobRecord, loc *time.Location) Job {
	source := r.ImageLink
	if source == "" {
		source = r.ResizedImageURL
	}

	return Job{
		ID:               r.ID,
		FileName:         FileNameFromURL(source),
		TargetDimensions: fmt.Sprintf("%s × %s", pixels(r.Width), pixels(r.Height)),
		OutputFormat:     strings.ToUpper(strings.TrimSpace(r.OutputFormat)),
		CreatedAt:        FormatCreatedAt(r.CreatedAt, loc),
		// The list endpoint only reports finished jobs.
		Status:      StatusReady,
		ResizedURL:  r.ResizedImageURL,
		OriginalURL: r.ImageLink,
	}
}

// FileNameFromURL returns the last path segment of a URL without its query
// string, falling back to "image".
func FileNameFromURL(raw string) string {
	p, _, _ := strings.Cut(raw, "?")
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}

	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}

	if p == "" {
		return FallbackName
	}

	return p
}

// FormatCreatedAt renders an ISO-8601 timestamp as "Mon D, YYYY • HH:MM".
// Unparsable input is returned unchanged.
func FormatCreatedAt(iso string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(iso))
	if err != nil {
		return iso
	}

	if loc == nil {
		loc = time.Local
	}

	return t.In(loc).Format(createdAtLayout)
}

// MatchesFilter reports whether a job matches a free-text query on its file
// name or id and a status filter.
func (j Job) MatchesFilter(query string, status JobStatus) bool {
	q := strings.ToLower(query)
	matchesSearch := strings.Contains(strings.ToLower(j.FileName), q) ||
		strings.Contains(strings.ToLower(j.ID), q)
	matchesStatus := status == "" || status == StatusAll || status == j.Status

	return matchesSearch && matchesStatus
}

func pixels(v string) string {
	return strings.TrimSuffix(strings.TrimSpace(v), "px")
}

// ParseStatusFilter maps user input onto a status filter, case-insensitively.
func ParseStatusFilter(raw string) (JobStatus, error) {
	for _, s := range []JobStatus{StatusAll, StatusReady, StatusProcessing, StatusFailed} {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s, nil
		}
	}

	if strings.TrimSpace(raw) == "" {
		return StatusAll, nil
	}

	return "", fmt.Errorf("unknown status %q, want one of All, Ready, Processing, Failed", raw)
}
