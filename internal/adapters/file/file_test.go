package file

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"resizer/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 4, 3))))

	return buf.Bytes()
}

func TestReadSource(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  []byte
		wantMime string
	}{
		{
			name:     "png",
			fileName: "photo.png",
			content:  pngBytes(t),
			wantMime: "image/png",
		},
		{
			name:     "png with misleading extension",
			fileName: "photo.txt",
			content:  pngBytes(t),
			wantMime: "image/png",
		},
		{
			name:     "pdf",
			fileName: "doc.pdf",
			content:  []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"),
			wantMime: "application/pdf",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.fileName)
			require.NoError(t, os.WriteFile(path, tc.content, 0o600))

			src, err := ReadSource(path, domain.MaxUploadBytes)
			require.NoError(t, err)
			assert.Equal(t, tc.fileName, src.Name)
			assert.Equal(t, tc.wantMime, src.MimeType)
			assert.Equal(t, tc.content, src.Data)
		})
	}
}

func TestReadSourceMissing(t *testing.T) {
	_, err := ReadSource(filepath.Join(t.TempDir(), "missing.png"), domain.MaxUploadBytes)
	require.Error(t, err)
}

func TestReadSourceOverLimit(t *testing.T) {
	content := pngBytes(t)
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	_, err := ReadSource(path, int64(len(content)-1))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	src, err := ReadSource(path, int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, content, src.Data)

	src, err = ReadSource(path, 0)
	require.NoError(t, err)
	assert.Equal(t, content, src.Data)
}

func TestDownloadFile(t *testing.T) {
	tests := []struct {
		name       string
		inputBytes []byte
		status     int
		wantErr    bool
	}{
		{
			name:       "success",
			inputBytes: []byte("test\n"),
			status:     http.StatusOK,
			wantErr:    false,
		},
		{
			name:       "not found",
			inputBytes: []byte("not found"),
			status:     http.StatusNotFound,
			wantErr:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, err := w.Write(tc.inputBytes)
				assert.NoError(t, err)
			}))
			defer srv.Close()

			res, err := DownloadFile(t.Context(), srv.URL)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.inputBytes, res)
			}
		})
	}
}

func TestSaveFile(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		fileName string
		wantSize int64
	}{
		{
			name:     "success",
			content:  []byte("test\n"),
			fileName: "resized-image-1.jpg",
			wantSize: 5,
		},
		{
			name:     "empty file",
			content:  []byte(""),
			fileName: "resized-image-2.png",
			wantSize: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nested", "out")

			path, err := SaveFile(dir, tc.fileName, tc.content)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tc.fileName), path)

			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSize, stat.Size())
		})
	}
}

func TestSaverSaveResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()

	path, err := NewSaver().SaveResult(t.Context(), srv.URL+"/r.jpg", dir, "resized-image-42.jpg")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
	assert.Equal(t, filepath.Join(dir, "resized-image-42.jpg"), path)
}
