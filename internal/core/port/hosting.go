package port

import (
	"context"
	"resizer/internal/core/domain"
)

type ImageHost interface {
	// Upload stores a base64 data URI with the hosting service and returns the hosted image URL.
	Upload(ctx context.Context, dataURI string, opts domain.UploadOptions) (string, error)
}

type ImageProbe interface {
	// NaturalSize returns the pixel dimensions of the image at url.
	NaturalSize(ctx context.Context, url string) (domain.Size, error)
}

type ResultSaver interface {
	// SaveResult downloads the image at url into dir/name and returns the local path.
	SaveResult(ctx context.Context, url, dir, name string) (string, error)
}
