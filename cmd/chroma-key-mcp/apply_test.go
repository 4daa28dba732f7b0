package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/chroma-key-mcp/internal/imaging"
	"github.com/ironsheep/chroma-key-mcp/internal/keying"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplyFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("apply", pflag.ContinueOnError)
	addApplyFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestRangeFromFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want keying.ChannelRange
	}{
		{"default is white", nil, keying.NewChannelRange(150, 150, 150, 256, 256, 256)},
		{"black", []string{"--preset", "Black"}, keying.NewChannelRange(0, 0, 0, 50, 50, 50)},
		{"override", []string{"--preset", "black", "--max-g", "90"}, keying.NewChannelRange(0, 0, 0, 50, 90, 50)},
		{"custom", []string{
			"--preset", "custom",
			"--min-r", "1", "--min-g", "2", "--min-b", "3",
			"--max-r", "4", "--max-g", "5", "--max-b", "6",
		}, keying.NewChannelRange(1, 2, 3, 4, 5, 6)},
		{"hex corners", []string{"--min-hex", "#00A000", "--max-hex", "#60FF60"}, keying.NewChannelRange(0, 160, 0, 96, 255, 96)},
		{"bound wins over hex", []string{
			"--preset", "custom", "--min-hex", "#000000", "--max-hex", "#101010", "--max-g", "256",
		}, keying.NewChannelRange(0, 0, 0, 16, 256, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rangeFromFlags(newApplyFlags(t, tt.args...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRangeFromFlags_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"--preset", "green"},
		{"--min-r", "abc"},
		{"--preset", "custom", "--min-r", "0"},
		{"--min-hex", "#000000"},
		{"--min-hex", "#000000", "--max-hex", "white"},
	} {
		_, err := rangeFromFlags(newApplyFlags(t, args...))
		assert.ErrorIs(t, err, keying.ErrInvalidRange, "args %v", args)
	}
}

func runApplyCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := &cobra.Command{Use: "apply", RunE: runApply, SilenceUsage: true, SilenceErrors: true}
	addApplyFlags(cmd.Flags())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunApply(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	src.SetNRGBA(1, 0, color.NRGBA{10, 10, 10, 255})

	in := filepath.Join(dir, "in.png")
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	out := filepath.Join(dir, "out.png")
	stdout, err := runApplyCommand(t, "-i", in, "-o", out, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 of 2 pixels transparent")

	got, err := imaging.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 255, 255, 0}, got.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{10, 10, 10, 255}, got.NRGBAAt(1, 0))

	_, err = runApplyCommand(t, "-i", in, "-o", out, "--preserve-color", "--preset", "black")
	require.NoError(t, err)
	got, err = imaging.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, got.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{10, 10, 10, 0}, got.NRGBAAt(1, 0))

	_, err = runApplyCommand(t, "-i", filepath.Join(dir, "missing.png"), "-o", out)
	assert.ErrorIs(t, err, keying.ErrIO)

	_, err = runApplyCommand(t, "-i", in, "-o", filepath.Join(dir, "out.jpg"))
	assert.ErrorIs(t, err, keying.ErrEncode)
}
