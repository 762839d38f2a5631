package file

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"resizer/internal/core/domain"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// maxDownloadBytes caps downloads of hosted and resized images.
const maxDownloadBytes = 50 << 20

// ReadSource reads a local file for upload. The media type is sniffed from
// the content, not taken from the extension. Files over maxBytes fail with
// domain.ErrFileTooLarge before they are loaded; maxBytes <= 0 disables the
// check.
func ReadSource(path string, maxBytes int64) (domain.SourceFile, error) {
	f, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("error reading file %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return domain.SourceFile{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		err = fmt.Errorf("error reading file %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return domain.SourceFile{}, err
	}

	if maxBytes > 0 && info.Size() > maxBytes {
		log.Debug().Str("path", path).Int64("bytes", info.Size()).Msg("source file over upload limit")
		return domain.SourceFile{}, domain.ErrFileTooLarge
	}

	var reader io.Reader = f
	if maxBytes > 0 {
		// The file may grow between Stat and the read.
		reader = io.LimitReader(f, maxBytes+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		err = fmt.Errorf("error reading file %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return domain.SourceFile{}, err
	}

	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return domain.SourceFile{}, domain.ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	log.Debug().Str("path", path).Str("mimeType", mtype.String()).Int("bytes", len(data)).Msg("read source file")

	return domain.SourceFile{
		Name:     filepath.Base(path),
		MimeType: mtype.String(),
		Data:     data,
	}, nil
}

// DownloadFile returns the byte content of a file on a provided URL.
func DownloadFile(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code on download: %d", res.StatusCode)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, maxDownloadBytes))
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	return buf, nil
}

// SaveFile writes data to dir/name, creating dir if needed, and returns the
// path.
func SaveFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		err = fmt.Errorf("error creating directory %w", err)
		log.Error().Err(err).Str("dir", dir).Send()
		return "", err
	}

	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		err = fmt.Errorf("error creating file %w", err)
		log.Error().Err(err).Send()
		return "", err
	}

	defer f.Close()

	if _, err := f.Write(data); err != nil {
		err = fmt.Errorf("error writing file %w", err)
		log.Error().Err(err).Send()
		return "", err
	}

	log.Debug().Str("path", f.Name()).Int("bytes", len(data)).Msg("created file")

	return f.Name(), nil
}

// Saver downloads remote images to the local filesystem.
type Saver struct{}

func NewSaver() *Saver {
	return &Saver{}
}

func (s *Saver) SaveResult(ctx context.Context, url, dir, name string) (string, error) {
	data, err := DownloadFile(ctx, url)
	if err != nil {
		return "", err
	}

	return SaveFile(dir, name, data)
}
