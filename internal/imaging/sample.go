package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/chroma-key-mcp/internal/keying"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = fully opaque
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a sampled pixel in several representations.
type ColorResult struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Hex  string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// SampleColor reads the pixel at (x, y). Coordinates are 0-based from the
// top-left corner of the image bounds.
func SampleColor(img *image.NRGBA, x, y int) (*ColorResult, error) {
	if img == nil {
		return nil, keying.ErrNoImageLoaded
	}
	px, err := pixelAt(img, x, y)
	if err != nil {
		return nil, err
	}

	c := colorful.Color{
		R: float64(px.R) / 255.0,
		G: float64(px.G) / 255.0,
		B: float64(px.B) / 255.0,
	}
	h, s, l := c.Hsl()

	return &ColorResult{
		X:    x,
		Y:    y,
		Hex:  strings.ToUpper(c.Hex()),
		RGBA: RGBAColor{R: px.R, G: px.G, B: px.B, A: px.A},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}, nil
}

// SuggestRange builds a ChannelRange centred on the colour at (x, y),
// extending tolerance in both directions on every channel. The bounds are
// left unclamped; the keying predicate compares plain integers.
func SuggestRange(img *image.NRGBA, x, y, tolerance int) (keying.ChannelRange, error) {
	if img == nil {
		return keying.ChannelRange{}, keying.ErrNoImageLoaded
	}
	if tolerance < 0 {
		return keying.ChannelRange{}, fmt.Errorf("%w: tolerance %d must not be negative", keying.ErrInvalidRange, tolerance)
	}
	px, err := pixelAt(img, x, y)
	if err != nil {
		return keying.ChannelRange{}, err
	}

	r, g, b := int(px.R), int(px.G), int(px.B)
	return keying.NewChannelRange(
		r-tolerance, g-tolerance, b-tolerance,
		r+tolerance, g+tolerance, b+tolerance,
	), nil
}

// RangeFromHex builds a ChannelRange from two "#RRGGBB" colours, the lower
// and upper corners of the box.
func RangeFromHex(minHex, maxHex string) (keying.ChannelRange, error) {
	lo, err := colorful.Hex(minHex)
	if err != nil {
		return keying.ChannelRange{}, fmt.Errorf("%w: min colour %q: %w", keying.ErrInvalidRange, minHex, err)
	}
	hi, err := colorful.Hex(maxHex)
	if err != nil {
		return keying.ChannelRange{}, fmt.Errorf("%w: max colour %q: %w", keying.ErrInvalidRange, maxHex, err)
	}

	lr, lg, lb := lo.RGB255()
	hr, hg, hb := hi.RGB255()
	return keying.NewChannelRange(
		int(lr), int(lg), int(lb),
		int(hr), int(hg), int(hb),
	), nil
}

func pixelAt(img *image.NRGBA, x, y int) (color.NRGBA, error) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return color.NRGBA{}, fmt.Errorf("coordinates (%d,%d) outside image bounds %v", x, y, img.Rect)
	}
	return img.NRGBAAt(x, y), nil
}
