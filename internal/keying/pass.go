package keying

import (
	"fmt"
	"image"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Mode selects what a matched pixel becomes.
type Mode int

const (
	// ModeWhiteout writes (255,255,255,0) over every matched pixel.
	ModeWhiteout Mode = iota
	// ModePreserveColor keeps the matched pixel's RGB and sets alpha to 0.
	ModePreserveColor
)

// String returns the mode's wire name.
func (m Mode) String() string {
	switch m {
	case ModeWhiteout:
		return "whiteout"
	case ModePreserveColor:
		return "preserve_color"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "whiteout" or "preserve_color" (case-insensitive, '-'
// and '_' interchangeable). The empty string selects ModeWhiteout.
func ParseMode(s string) (Mode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "", "whiteout":
		return ModeWhiteout, nil
	case "preserve_color", "preserve":
		return ModePreserveColor, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidMode, s)
	}
}

// Options controls a transparency pass.
type Options struct {
	Mode    Mode // what matched pixels become
	Workers int  // goroutines to use; <= 0 means GOMAXPROCS
}

// Stats summarises a completed pass.
type Stats struct {
	Matched int `json:"matched_pixels"`
	Total   int `json:"total_pixels"`
}

// Apply returns a copy of src in which every pixel inside rng has been made
// transparent using ModeWhiteout.
//
// The result has exactly the bounds of src. An empty source (zero width or
// height) yields an empty result. A nil source yields ErrNoImageLoaded.
func Apply(src *image.NRGBA, rng ChannelRange) (*image.NRGBA, error) {
	dst, _, err := ApplyWithOptions(src, rng, Options{})
	return dst, err
}

// ApplyWithOptions is Apply with an explicit mode and worker count. It also
// reports how many pixels matched.
func ApplyWithOptions(src *image.NRGBA, rng ChannelRange, opts Options) (*image.NRGBA, Stats, error) {
	if src == nil {
		return nil, Stats{}, ErrNoImageLoaded
	}
	if opts.Mode != ModeWhiteout && opts.Mode != ModePreserveColor {
		return nil, Stats{}, fmt.Errorf("%w: unsupported mode %v", ErrInvalidMode, opts.Mode)
	}

	bounds := src.Rect
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewNRGBA(bounds)
	if w <= 0 || h <= 0 {
		return dst, Stats{}, nil
	}

	bands := splitRows(h, opts.Workers)
	matched := make([]int, len(bands))

	var g errgroup.Group
	for i, b := range bands {
		g.Go(func() error {
			matched[i] = keyRows(dst, src, w, b.start, b.end, rng, opts.Mode)
			return nil
		})
	}
	// keyRows never fails; Wait is the join point.
	_ = g.Wait()

	stats := Stats{Total: w * h}
	for _, n := range matched {
		stats.Matched += n
	}
	return dst, stats, nil
}

type rowBand struct {
	start, end int
}

// splitRows divides [0, rows) into contiguous bands, one per worker, never
// using more workers than rows.
func splitRows(rows, workers int) []rowBand {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, rows)
	if workers < 1 {
		return nil
	}

	chunk := (rows + workers - 1) / workers
	bands := make([]rowBand, 0, workers)
	for start := 0; start < rows; start += chunk {
		bands = append(bands, rowBand{start: start, end: min(start+chunk, rows)})
	}
	return bands
}

// keyRows processes rows [y0, y1) relative to the buffer origin and returns
// the number of matched pixels.
func keyRows(dst, src *image.NRGBA, w, y0, y1 int, rng ChannelRange, mode Mode) int {
	n := 0
	for y := y0; y < y1; y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+w*4 : y*src.Stride+w*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+w*4 : y*dst.Stride+w*4]
		for i := 0; i < len(s); i += 4 {
			r, g, b, a := s[i], s[i+1], s[i+2], s[i+3]
			if !rng.Contains(r, g, b) {
				d[i], d[i+1], d[i+2], d[i+3] = r, g, b, a
				continue
			}
			n++
			if mode == ModePreserveColor {
				d[i], d[i+1], d[i+2], d[i+3] = r, g, b, 0
			} else {
				d[i], d[i+1], d[i+2], d[i+3] = 255, 255, 255, 0
			}
		}
	}
	return n
}
