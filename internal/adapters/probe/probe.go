package probe

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"resizer/internal/adapters/file"
	"resizer/internal/core/domain"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// Prober learns the natural size of an image from its header.
type Prober struct {
	download func(ctx context.Context, url string) ([]byte, error)
}

func NewProber() *Prober {
	return &Prober{download: file.DownloadFile}
}

// NaturalSize downloads the image at url and decodes its dimensions.
func (p *Prober) NaturalSize(ctx context.Context, url string) (domain.Size, error) {
	data, err := p.download(ctx, url)
	if err != nil {
		return domain.Size{}, fmt.Errorf("error downloading image: %w", err)
	}

	return Size(data)
}

// Size decodes the dimensions of an encoded JPEG, PNG, GIF, WebP or BMP image.
func Size(data []byte) (domain.Size, error) {
	mimeType := mimetype.Detect(data).String()
	reader := bytes.NewReader(data)

	var (
		cfg image.Config
		err error
	)

	switch mimeType {
	case "image/jpeg":
		cfg, err = jpeg.DecodeConfig(reader)
	case "image/png":
		cfg, err = png.DecodeConfig(reader)
	case "image/gif":
		cfg, err = gif.DecodeConfig(reader)
	case "image/webp":
		cfg, err = webp.DecodeConfig(reader)
	case "image/bmp":
		cfg, err = bmp.DecodeConfig(reader)
	default:
		return domain.Size{}, fmt.Errorf("unsupported image type: %s", mimeType)
	}

	if err != nil {
		return domain.Size{}, fmt.Errorf("error decoding %s header: %w", mimeType, err)
	}

	log.Debug().Str("mimeType", mimeType).Int("width", cfg.Width).Int("height", cfg.Height).Msg("probed image")

	return domain.Size{Width: cfg.Width, Height: cfg.Height}, nil
}
