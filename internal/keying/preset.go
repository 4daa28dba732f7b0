package keying

import (
	"fmt"
	"strings"
)

// Preset is a named shortcut that populates a ChannelRange.
type Preset int

const (
	// PresetWhite keys out light backgrounds.
	PresetWhite Preset = iota
	// PresetBlack keys out dark backgrounds.
	PresetBlack
	// PresetCustom carries no range; the caller supplies all six bounds.
	PresetCustom
)

var presetNames = map[Preset]string{
	PresetWhite:  "White",
	PresetBlack:  "Black",
	PresetCustom: "Custom",
}

var presetRanges = map[Preset]ChannelRange{
	PresetWhite: NewChannelRange(150, 150, 150, 256, 256, 256),
	PresetBlack: NewChannelRange(0, 0, 0, 50, 50, 50),
}

// String returns the display name of the preset.
func (p Preset) String() string {
	if name, ok := presetNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

// Range returns the bounds the preset stands for. The second result is false
// for PresetCustom and for unknown values.
func (p Preset) Range() (ChannelRange, bool) {
	r, ok := presetRanges[p]
	return r, ok
}

// Presets lists every preset in display order.
func Presets() []Preset {
	return []Preset{PresetWhite, PresetBlack, PresetCustom}
}

// ParsePreset looks a preset up by name, ignoring case and surrounding
// whitespace. Unknown names yield an error wrapping ErrInvalidRange.
func ParsePreset(name string) (Preset, error) {
	want := strings.TrimSpace(name)
	for _, p := range Presets() {
		if strings.EqualFold(p.String(), want) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown preset %q", ErrInvalidRange, name)
}

// ResolveRange starts from the preset's bounds and applies overrides with
// Override. PresetCustom has no bounds of its own, so all six overrides are
// required.
func ResolveRange(p Preset, overrides [6]*string) (ChannelRange, error) {
	base, ok := p.Range()
	if !ok && p != PresetCustom {
		return ChannelRange{}, fmt.Errorf("%w: unknown preset %v", ErrInvalidRange, p)
	}
	if p == PresetCustom {
		for i, text := range overrides {
			if text == nil {
				return ChannelRange{}, fmt.Errorf("%w: custom preset requires %s", ErrInvalidRange, rangeFieldNames[i])
			}
		}
	}
	return base.Override(overrides)
}
