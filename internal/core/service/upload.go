package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"resizer/internal/core/domain"
	"resizer/internal/core/port"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// UploadManager turns a local file into a hosted image URL. At most one
// upload is in flight; starting another cancels the previous one.
type UploadManager struct {
	host     port.ImageHost
	notifier port.Notifier
	maxBytes int64

	mutex  sync.Mutex
	state  domain.UploadState
	hosted string
}

func NewUploadManager(host port.ImageHost, notifier port.Notifier, maxBytes int64) *UploadManager {
	if maxBytes <= 0 {
		maxBytes = domain.MaxUploadBytes
	}

	return &UploadManager{
		host:     host,
		notifier: notifier,
		maxBytes: maxBytes,
		state:    domain.UploadIdle{},
	}
}

// Start validates and uploads file. It returns domain.ErrUploadAborted when
// the upload is cancelled or superseded before it completes.
func (m *UploadManager) Start(ctx context.Context, file domain.SourceFile, opts domain.UploadOptions) (string, error) {
	l := log.With().
		Str("file", file.Name).
		Str("mimeType", file.MimeType).
		Int64("bytes", file.Size()).
		Logger()

	if err := m.validate(file); err != nil {
		l.Debug().Err(err).Msg("rejected upload")
		return "", err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("error creating upload id: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inFlight := domain.UploadInFlight{ID: id.String(), Cancel: cancel}

	m.mutex.Lock()
	if previous, ok := m.state.(domain.UploadInFlight); ok {
		l.Info().Str("previous", previous.ID).Msg("cancelling previous upload")
		previous.Cancel()
	}
	m.hosted = ""
	m.state = inFlight
	m.mutex.Unlock()

	l = l.With().Str("uploadId", inFlight.ID).Logger()
	l.Info().Msg("uploading image")

	url, err := m.host.Upload(ctx, dataURI(file), opts)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	current, ok := m.state.(domain.UploadInFlight)
	superseded := !ok || current.ID != inFlight.ID

	if superseded || (err != nil && errors.Is(ctx.Err(), context.Canceled)) {
		l.Info().Bool("superseded", superseded).Msg("upload aborted")
		if !superseded {
			m.state = domain.UploadAborted{}
		}
		return "", domain.ErrUploadAborted
	}

	if err != nil {
		l.Error().Err(err).Msg("upload failed")
		m.state = domain.UploadFailed{Err: err}
		m.notifier.Notify(domain.UserMessage(err), domain.Error)
		return "", fmt.Errorf("upload failed: %w", err)
	}

	m.state = domain.UploadSucceeded{URL: url}
	m.hosted = url
	l.Info().Str("url", url).Msg("image uploaded")
	m.notifier.Notify("Image uploaded successfully", domain.Success)

	return url, nil
}

// Cancel aborts the in-flight upload. It is a no-op when nothing is in
// flight and reports whether an upload was cancelled.
func (m *UploadManager) Cancel() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	inFlight, ok := m.state.(domain.UploadInFlight)
	if !ok {
		return false
	}

	inFlight.Cancel()

	return true
}

func (m *UploadManager) State() domain.UploadState {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.state
}

// HostedImage returns the URL of the last successful upload, or "".
func (m *UploadManager) HostedImage() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.hosted
}

// Clear cancels any in-flight upload and forgets the hosted image.
func (m *UploadManager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if inFlight, ok := m.state.(domain.UploadInFlight); ok {
		inFlight.Cancel()
	}

	m.state = domain.UploadIdle{}
	m.hosted = ""
}

func (m *UploadManager) validate(file domain.SourceFile) error {
	if !strings.HasPrefix(strings.ToLower(file.MimeType), "image/") {
		return domain.ErrNotImage
	}

	if file.Size() > m.maxBytes {
		return domain.ErrFileTooLarge
	}

	return nil
}

func dataURI(file domain.SourceFile) string {
	return "data:" + file.MimeType + ";base64," + base64.StdEncoding.EncodeToString(file.Data)
}
