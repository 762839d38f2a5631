package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

var Filters = []string{NoFilter, "grayscale", "sepia", "blur", "sharpen", "invert"}

// CropInput holds the crop fields as typed by the user.
type CropInput struct {
	Enabled bool
	Left    string
	Top     string
	Width   string
	Height  string
}

type RequestInput struct {
	ImageLink    string
	ImageFormat  string
	Dimensions   *Size
	AspectLocked bool
	Crop         CropInput
	Rotate       int
	Filter       string
	OutputFormat string
	UserID       string
}

// BuildRequest assembles the canonical transformation request. It performs
// no I/O and returns a *ValidationError when the input cannot be sent.
func BuildRequest(in RequestInput) (TransformationRequest, error) {
	if strings.TrimSpace(in.ImageLink) == "" {
		return TransformationRequest{}, ErrImageRequired
	}

	if strings.TrimSpace(in.UserID) == "" {
		return TransformationRequest{}, ErrNotAuthenticated
	}

	if in.Dimensions == nil || in.Dimensions.Width <= 0 || in.Dimensions.Height <= 0 {
		return TransformationRequest{}, ErrDimensionsRequired
	}

	rotate, err := normalizeRotation(in.Rotate)
	if err != nil {
		return TransformationRequest{}, err
	}

	filter, err := normalizeFilter(in.Filter)
	if err != nil {
		return TransformationRequest{}, err
	}

	sourceFormat := NormalizeFormat(in.ImageFormat)

	return TransformationRequest{
		ImageLink:         in.ImageLink,
		ImageFormat:       sourceFormat,
		ManageAspectRatio: in.AspectLocked,
		Size:              CustomSize,
		Width:             fmt.Sprintf("%dpx", in.Dimensions.Width),
		Height:            fmt.Sprintf("%dpx", in.Dimensions.Height),
		OutputFormat:      ResolveOutputFormat(in.OutputFormat, sourceFormat),
		UserID:            strings.TrimSpace(in.UserID),
		Rotate:            rotate,
		Crop:              buildCrop(in.Crop),
		Filter:            filter,
	}, nil
}

// NormalizeFormat lower-cases a format and strips a leading dot, defaulting
// to jpg.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if f == "" {
		return DefaultFormat
	}

	return f
}

// ResolveOutputFormat maps the "original" sentinel to the source format.
func ResolveOutputFormat(output, source string) string {
	f := strings.ToLower(strings.TrimSpace(output))
	switch f {
	case "":
		return DefaultFormat
	case OriginalFormat:
		return NormalizeFormat(source)
	default:
		return f
	}
}

// FormatFromName returns the lower-cased extension of a file name, or "".
func FormatFromName(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// UploadFormat is the format override sent to the hosting service: the
// output format, unless the original format is kept.
func UploadFormat(output string) string {
	f := strings.ToLower(strings.TrimSpace(output))
	if f == OriginalFormat {
		return ""
	}

	return f
}

// ValidateOptions checks the rotation and filter a request would carry, so
// callers can reject them before anything is uploaded.
func ValidateOptions(rotate int, filter string) error {
	if _, err := normalizeRotation(rotate); err != nil {
		return err
	}

	_, err := normalizeFilter(filter)

	return err
}

func normalizeRotation(deg int) (int, error) {
	r := ((deg % 360) + 360) % 360
	if r%90 != 0 {
		return 0, &ValidationError{Message: "Rotation must be one of 0, 90, 180 or 270 degrees"}
	}

	return r, nil
}

func normalizeFilter(filter string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" || f == NoFilter {
		return "", nil
	}

	if !slices.Contains(Filters, f) {
		return "", &ValidationError{Message: fmt.Sprintf("Unknown filter %q", filter)}
	}

	return f, nil
}

func buildCrop(in CropInput) *Crop {
	if !in.Enabled {
		return nil
	}

	fields := []string{in.Left, in.Top, in.Width, in.Height}
	if !slices.ContainsFunc(fields, func(s string) bool { return strings.TrimSpace(s) != "" }) {
		return nil
	}

	return &Crop{
		Left:   cropValue(in.Left),
		Top:    cropValue(in.Top),
		Width:  cropValue(in.Width),
		Height: cropValue(in.Height),
	}
}

func cropValue(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0
	}

	return v
}

// ResultFileName names a downloaded result: resized-image-<unix millis>.<format>.
func ResultFileName(format string, now time.Time) string {
	return fmt.Sprintf("resized-image-%d.%s", now.UnixMilli(), NormalizeFormat(format))
}
