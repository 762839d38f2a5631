package handler

import (
	"context"
	"errors"
	"fmt"
	"resizer/internal/core/domain"
	"resizer/internal/core/port"
	"resizer/internal/core/service"
	"strings"

	"github.com/rs/zerolog/log"
)

type Uploads interface {
	Start(ctx context.Context, file domain.SourceFile, opts domain.UploadOptions) (string, error)
}

type Transformations interface {
	Submit(ctx context.Context, identity domain.Identity, req domain.TransformationRequest) (domain.TransformationResult, error)
	Download(ctx context.Context, url, dir, format string) (string, error)
}

// UploadInput is everything the upload page collects.
type UploadInput struct {
	Path         string
	Width        string
	Height       string
	Preset       string
	AspectLocked bool
	Crop         domain.CropInput
	Rotate       int
	Filter       string
	Format       string
	DownloadDir  string
}

type UploadOutcome struct {
	HostedURL string
	Natural   *domain.Size
	Request   domain.TransformationRequest
	Result    domain.TransformationResult
	SavedPath string
}

// UploadView drives a single upload: read, host, probe, build, submit and
// optionally download.
type UploadView struct {
	auth        service.Authorizer
	uploads     Uploads
	probe       port.ImageProbe
	transformer Transformations
	presets     *domain.PresetRegistry
	read        func(path string) (domain.SourceFile, error)
}

func NewUploadView(auth service.Authorizer, uploads Uploads, probe port.ImageProbe, transformer Transformations,
	presets *domain.PresetRegistry, read func(path string) (domain.SourceFile, error)) *UploadView {
	return &UploadView{
		auth:        auth,
		uploads:     uploads,
		probe:       probe,
		transformer: transformer,
		presets:     presets,
		read:        read,
	}
}

func (v *UploadView) Run(ctx context.Context, in UploadInput) (UploadOutcome, error) {
	var outcome UploadOutcome

	identity, err := v.auth.Require()
	if err != nil {
		return outcome, err
	}

	if strings.TrimSpace(identity.UserID) == "" {
		return outcome, domain.ErrNotAuthenticated
	}

	form := domain.DimensionForm{AspectLocked: in.AspectLocked}
	form.SetWidth(in.Width)
	form.SetHeight(in.Height)

	if in.Preset != "" {
		preset, err := v.presets.Get(in.Preset)
		if err != nil {
			return outcome, &domain.ValidationError{Message: fmt.Sprintf("Unknown preset %q", in.Preset)}
		}
		form.SelectPreset(preset)
	}

	// Any natural size decides whether the form can resolve at all, so a
	// hopeless form fails before the upload.
	if _, ok := form.Resolve(&domain.Size{Width: 1, Height: 1}); !ok {
		return outcome, domain.ErrDimensionsRequired
	}

	if err := domain.ValidateOptions(in.Rotate, in.Filter); err != nil {
		return outcome, err
	}

	src, err := v.read(in.Path)
	if err != nil {
		return outcome, err
	}

	l := log.With().Str("file", src.Name).Str("userId", identity.UserID).Logger()

	hosted, err := v.uploads.Start(ctx, src, domain.UploadOptions{Format: domain.UploadFormat(in.Format)})
	if err != nil {
		return outcome, err
	}
	outcome.HostedURL = hosted

	if _, isPreset := form.Preset(); in.AspectLocked && !isPreset {
		natural, err := v.probe.NaturalSize(ctx, hosted)
		if err != nil {
			l.Warn().Err(err).Msg("natural size unknown")
		} else {
			outcome.Natural = &natural
		}
	}

	var dimensions *domain.Size
	if size, ok := form.Resolve(outcome.Natural); ok {
		dimensions = &size
	}

	req, err := domain.BuildRequest(domain.RequestInput{
		ImageLink:    hosted,
		ImageFormat:  domain.FormatFromName(src.Name),
		Dimensions:   dimensions,
		AspectLocked: in.AspectLocked,
		Crop:         in.Crop,
		Rotate:       in.Rotate,
		Filter:       in.Filter,
		OutputFormat: in.Format,
		UserID:       identity.UserID,
	})
	if err != nil {
		return outcome, err
	}
	outcome.Request = req

	result, err := v.transformer.Submit(ctx, identity, req)
	if err != nil {
		return outcome, err
	}
	outcome.Result = result

	if in.DownloadDir == "" {
		return outcome, nil
	}

	path, err := v.transformer.Download(ctx, result.ResizedImageURL, in.DownloadDir, req.OutputFormat)
	if err != nil {
		return outcome, err
	}
	outcome.SavedPath = path

	return outcome, nil
}

// IsAborted reports whether err is a cancelled upload rather than a failure.
func IsAborted(err error) bool {
	return errors.Is(err, domain.ErrUploadAborted)
}
