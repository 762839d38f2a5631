package domain

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

type PresetRegistry struct {
	presets map[string]Preset
	order   []string
}

// NewPresetRegistry returns a registry holding the built-in presets.
func NewPresetRegistry() *PresetRegistry {
	r := &PresetRegistry{}
	for _, p := range []Preset{
		{Label: "1920x1080", Width: 1920, Height: 1080},
		{Label: "1280x720", Width: 1280, Height: 720},
		{Label: "1080x1080", Width: 1080, Height: 1080},
		{Label: "800x600", Width: 800, Height: 600},
	} {
		r.Register(p)
	}

	return r
}

func (r *PresetRegistry) Register(p Preset) {
	if r.presets == nil {
		r.presets = make(map[string]Preset)
	}

	key := presetKey(p.Label)
	if _, ok := r.presets[key]; !ok {
		r.order = append(r.order, key)
	}

	log.Debug().Str("preset", p.Label).Msg("adding preset to registry")
	r.presets[key] = p
}

func (r *PresetRegistry) Get(label string) (Preset, error) {
	if r.presets == nil {
		return Preset{}, errors.New("can't fetch preset, registry not initialized")
	}

	p, ok := r.presets[presetKey(label)]
	if !ok {
		return Preset{}, errors.New("preset not found")
	}

	return p, nil
}

func (r *PresetRegistry) List() []Preset {
	presets := make([]Preset, len(r.order))
	for i, label := range r.order {
		presets[i] = r.presets[label]
	}

	return presets
}

func presetKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// ParsePreset reads a "WIDTHxHEIGHT" label into a preset.
func ParsePreset(label string) (Preset, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(label)), "x")
	if !ok {
		return Preset{}, errors.New("preset must look like 1920x1080")
	}

	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return Preset{}, errors.New("preset width must be a positive integer")
	}

	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return Preset{}, errors.New("preset height must be a positive integer")
	}

	return Preset{Label: strconv.Itoa(width) + "x" + strconv.Itoa(height), Width: width, Height: height}, nil
}
