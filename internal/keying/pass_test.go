package keying

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	whiteRange, _ = PresetWhite.Range()
	blackRange, _ = PresetBlack.Range()
)

// newBuffer builds an NRGBA buffer from a row-major list of pixels.
func newBuffer(w, h int, px ...color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range px {
		img.SetNRGBA(i%w, i/w, c)
	}
	return img
}

// randomBuffer fills a buffer with reproducible noise, alpha included.
func randomBuffer(w, h int, seed int64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rnd := rand.New(rand.NewSource(seed))
	rnd.Read(img.Pix)
	return img
}

func TestApply_WhitePresetScenario(t *testing.T) {
	src := newBuffer(2, 1,
		color.NRGBA{255, 255, 255, 255},
		color.NRGBA{10, 10, 10, 255},
	)

	got, err := Apply(src, whiteRange)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{255, 255, 255, 0}, got.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{10, 10, 10, 255}, got.NRGBAAt(1, 0))
}

func TestApply_BlackPresetScenario(t *testing.T) {
	src := newBuffer(2, 1,
		color.NRGBA{0, 0, 0, 255},
		color.NRGBA{51, 51, 51, 255},
	)

	got, err := Apply(src, blackRange)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{255, 255, 255, 0}, got.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{51, 51, 51, 255}, got.NRGBAAt(1, 0))
}

func TestApply_DoesNotMutateSource(t *testing.T) {
	src := randomBuffer(32, 17, 1)
	before := append([]byte(nil), src.Pix...)

	_, err := Apply(src, NewChannelRange(0, 0, 0, 255, 255, 255))
	require.NoError(t, err)
	assert.Equal(t, before, src.Pix)
}

func TestApply_NilSource(t *testing.T) {
	got, err := Apply(nil, whiteRange)
	assert.ErrorIs(t, err, ErrNoImageLoaded)
	assert.Nil(t, got)
}

func TestApply_PreservesDimensions(t *testing.T) {
	sizes := []int{0, 1, 100}
	for _, w := range sizes {
		for _, h := range sizes {
			src := image.NewNRGBA(image.Rect(0, 0, w, h))
			got, err := Apply(src, whiteRange)
			require.NoError(t, err, "%dx%d", w, h)
			assert.Equal(t, w, got.Bounds().Dx(), "width for %dx%d", w, h)
			assert.Equal(t, h, got.Bounds().Dy(), "height for %dx%d", w, h)
		}
	}
}

func TestApply_EmptyImage(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 0, 0),
		image.Rect(0, 0, 5, 0),
		image.Rect(0, 0, 0, 5),
	} {
		got, _, err := ApplyWithOptions(image.NewNRGBA(r), whiteRange, Options{Workers: 4})
		require.NoError(t, err)
		assert.Empty(t, got.Pix)
		assert.Equal(t, r, got.Bounds())
	}
}

func TestApply_NoMatchIsByteIdentical(t *testing.T) {
	src := randomBuffer(64, 48, 2)
	// Nothing can be above 255 on red.
	rng := NewChannelRange(256, 0, 0, 300, 255, 255)

	got, stats, err := ApplyWithOptions(src, rng, Options{})
	require.NoError(t, err)
	assert.Equal(t, src.Pix, got.Pix)
	assert.Equal(t, 0, stats.Matched)
	assert.Equal(t, 64*48, stats.Total)
}

func TestApply_InvertedChannelMatchesNothing(t *testing.T) {
	src := randomBuffer(40, 40, 3)
	rng := NewChannelRange(200, 0, 0, 50, 255, 255)

	got, err := Apply(src, rng)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, got.Pix)
}

func TestApply_FullRangeClearsEverything(t *testing.T) {
	src := randomBuffer(10, 10, 4)

	got, stats, err := ApplyWithOptions(src, NewChannelRange(0, 0, 0, 255, 255, 255), Options{})
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Matched)
	for i := 0; i < len(got.Pix); i += 4 {
		require.Equal(t, []byte{255, 255, 255, 0}, got.Pix[i:i+4], "pixel %d", i/4)
	}
}

func TestApply_PixelwiseAgainstOracle(t *testing.T) {
	src := randomBuffer(50, 30, 5)
	rng := NewChannelRange(40, 0, 100, 200, 180, 255)

	got, err := Apply(src, rng)
	require.NoError(t, err)

	for y := 0; y < 30; y++ {
		for x := 0; x < 50; x++ {
			in := src.NRGBAAt(x, y)
			want := in
			if rng.Contains(in.R, in.G, in.B) {
				want = color.NRGBA{255, 255, 255, 0}
			}
			require.Equal(t, want, got.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	tests := []struct {
		name         string
		rng          ChannelRange
		whiteInRange bool
	}{
		{"white re-matches", whiteRange, true},
		{"white outside range", blackRange, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.whiteInRange, tt.rng.Contains(255, 255, 255))

			src := randomBuffer(33, 21, 6)
			once, err := Apply(src, tt.rng)
			require.NoError(t, err)
			twice, err := Apply(once, tt.rng)
			require.NoError(t, err)
			assert.Equal(t, once.Pix, twice.Pix)
		})
	}
}

func TestApply_PreserveColorMode(t *testing.T) {
	src := newBuffer(3, 1,
		color.NRGBA{250, 240, 230, 200},
		color.NRGBA{10, 10, 10, 255},
		color.NRGBA{160, 170, 180, 0},
	)

	got, stats, err := ApplyWithOptions(src, whiteRange, Options{Mode: ModePreserveColor})
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{250, 240, 230, 0}, got.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{10, 10, 10, 255}, got.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{160, 170, 180, 0}, got.NRGBAAt(2, 0))
	assert.Equal(t, Stats{Matched: 2, Total: 3}, stats)
}

func TestApply_UnsupportedMode(t *testing.T) {
	_, _, err := ApplyWithOptions(image.NewNRGBA(image.Rect(0, 0, 1, 1)), whiteRange, Options{Mode: Mode(7)})
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestApply_WorkerCountDoesNotChangeOutput(t *testing.T) {
	src := randomBuffer(37, 101, 7)
	rng := NewChannelRange(0, 50, 0, 180, 255, 120)

	want, wantStats, err := ApplyWithOptions(src, rng, Options{Workers: 1})
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 3, 8, 101, 500} {
		got, stats, err := ApplyWithOptions(src, rng, Options{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, want.Pix, got.Pix, "workers=%d", workers)
		assert.Equal(t, wantStats, stats, "workers=%d", workers)
	}
}

func TestApply_SubImage(t *testing.T) {
	parent := randomBuffer(20, 20, 8)
	// Force a recognisable block inside the sub-image.
	for y := 6; y < 8; y++ {
		for x := 5; x < 9; x++ {
			parent.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}
	sub := parent.SubImage(image.Rect(5, 6, 15, 16)).(*image.NRGBA)

	got, err := Apply(sub, blackRange)
	require.NoError(t, err)
	assert.Equal(t, sub.Bounds(), got.Bounds())

	for y := 6; y < 16; y++ {
		for x := 5; x < 15; x++ {
			in := sub.NRGBAAt(x, y)
			want := in
			if blackRange.Contains(in.R, in.G, in.B) {
				want = color.NRGBA{255, 255, 255, 0}
			}
			require.Equal(t, want, got.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
	assert.Equal(t, color.NRGBA{255, 255, 255, 0}, got.NRGBAAt(5, 6))
}

func TestSplitRows(t *testing.T) {
	tests := []struct {
		rows, workers int
		want          []rowBand
	}{
		{0, 4, nil},
		{1, 4, []rowBand{{0, 1}}},
		{10, 1, []rowBand{{0, 10}}},
		{10, 3, []rowBand{{0, 4}, {4, 8}, {8, 10}}},
		{4, 4, []rowBand{{0, 1}, {1, 2}, {2, 3}, {3, 4}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitRows(tt.rows, tt.workers), "rows=%d workers=%d", tt.rows, tt.workers)
	}

	// Bands always tile the rows exactly once.
	for rows := 1; rows < 40; rows++ {
		for workers := 1; workers < 12; workers++ {
			next := 0
			for _, b := range splitRows(rows, workers) {
				require.Equal(t, next, b.start)
				require.Greater(t, b.end, b.start)
				next = b.end
			}
			require.Equal(t, rows, next)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModeWhiteout},
		{"whiteout", ModeWhiteout},
		{"Preserve_Color", ModePreserveColor},
		{"preserve-color", ModePreserveColor},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMode("feather")
	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.NotErrorIs(t, err, ErrInvalidRange)

	assert.Equal(t, "whiteout", ModeWhiteout.String())
	assert.Equal(t, "preserve_color", ModePreserveColor.String())
}
