package service

import (
	"context"
	"errors"
	"fmt"
	"resizer/internal/core/domain"
	"resizer/internal/core/port"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const missingResultURL = "Resize completed but no image URL received"

// Transformer submits transformation requests. A second submission while one
// is pending is rejected rather than queued.
type Transformer struct {
	service  port.ResizeService
	notifier port.Notifier
	saver    port.ResultSaver
	now      func() time.Time
	mutex    sync.Mutex
	busy     bool
}

func NewTransformer(service port.ResizeService, notifier port.Notifier, saver port.ResultSaver) *Transformer {
	return &Transformer{service: service, notifier: notifier, saver: saver, now: time.Now}
}

func (t *Transformer) Submit(ctx context.Context, identity domain.Identity,
	req domain.TransformationRequest) (domain.TransformationResult, error) {
	if !t.acquire() {
		return domain.TransformationResult{}, domain.ErrSubmitInProgress
	}
	defer t.release()

	l := log.With().
		Str("userId", req.UserID).
		Str("imageLink", req.ImageLink).
		Str("width", req.Width).
		Str("height", req.Height).
		Str("outputFormat", req.OutputFormat).
		Logger()

	l.Info().Msg("submitting resize")

	result, err := t.service.Submit(ctx, identity.AccessToken, req)
	if err != nil {
		l.Error().Err(err).Msg("resize failed")
		t.notifier.Notify(domain.UserMessage(err), domain.Error)
		return domain.TransformationResult{}, fmt.Errorf("error resizing image: %w", err)
	}

	if !result.Success || result.ResizedImageURL == "" {
		l.Warn().Interface("result", result).Msg("resize response without image url")
		t.notifier.Notify(missingResultURL, domain.Error)
		return domain.TransformationResult{}, &domain.RemoteError{Message: missingResultURL}
	}

	message := result.Message
	if message == "" {
		message = "Image resized successfully"
	}

	l.Info().Str("resizedImageUrl", result.ResizedImageURL).Msg("resize finished")
	t.notifier.Notify(message, domain.Success)

	return result, nil
}

// Download saves the resized image at url into dir as
// resized-image-<unix millis>.<format>.
func (t *Transformer) Download(ctx context.Context, url, dir, format string) (string, error) {
	if t.saver == nil {
		return "", errors.New("downloads are not configured")
	}

	name := domain.ResultFileName(format, t.now())

	path, err := t.saver.SaveResult(ctx, url, dir, name)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to download result")
		t.notifier.Notify("Failed to download image", domain.Error)
		return "", fmt.Errorf("error downloading result: %w", err)
	}

	log.Info().Str("path", path).Msg("downloaded result")

	return path, nil
}

// Busy reports whether a submission is pending.
func (t *Transformer) Busy() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.busy
}

func (t *Transformer) acquire() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.busy {
		return false
	}

	t.busy = true

	return true
}

func (t *Transformer) release() {
	t.mutex.Lock()
	t.busy = false
	t.mutex.Unlock()
}
