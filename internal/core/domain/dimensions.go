package domain

import (
	"math"
	"strconv"
	"strings"
)

// ResolveDimensions computes the final target size. A preset overrides the
// typed values. With the aspect ratio locked and only one side given, the
// other side is derived from the natural size. It returns false when either
// side is still unknown.
func ResolveDimensions(width, height string, preset *Preset, aspectLocked bool, natural *Size) (Size, bool) {
	if preset != nil {
		width = strconv.Itoa(preset.Width)
		height = strconv.Itoa(preset.Height)
	}

	w, wok := parseDimension(width)
	h, hok := parseDimension(height)

	if aspectLocked && natural != nil && natural.Width > 0 && natural.Height > 0 {
		switch {
		case wok && !hok:
			h, hok = scale(w, natural.Height, natural.Width)
		case hok && !wok:
			w, wok = scale(h, natural.Width, natural.Height)
		}
	}

	if !wok || !hok {
		return Size{}, false
	}

	return Size{Width: w, Height: h}, true
}

func parseDimension(raw string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}

	if f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}

	return int(f), true
}

func scale(v, num, den int) (int, bool) {
	r := int(math.Round(float64(v) * float64(num) / float64(den)))
	if r <= 0 {
		return 0, false
	}

	return r, true
}

// DimensionForm holds the dimension inputs as typed by the user. A nil
// preset means the dimensions are free-form.
type DimensionForm struct {
	Width        string
	Height       string
	AspectLocked bool
	preset       *Preset
}

func (f *DimensionForm) SelectPreset(p Preset) {
	f.preset = &p
	f.Width = strconv.Itoa(p.Width)
	f.Height = strconv.Itoa(p.Height)
}

// SetWidth records a manual edit and drops any preset association.
func (f *DimensionForm) SetWidth(v string) {
	f.Width = v
	f.preset = nil
}

// SetHeight records a manual edit and drops any preset association.
func (f *DimensionForm) SetHeight(v string) {
	f.Height = v
	f.preset = nil
}

func (f *DimensionForm) Preset() (Preset, bool) {
	if f.preset == nil {
		return Preset{}, false
	}

	return *f.preset, true
}

func (f *DimensionForm) Reset() {
	*f = DimensionForm{}
}

func (f *DimensionForm) Resolve(natural *Size) (Size, bool) {
	return ResolveDimensions(f.Width, f.Height, f.preset, f.AspectLocked, natural)
}
