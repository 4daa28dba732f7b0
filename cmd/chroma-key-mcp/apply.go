package main

import (
	"fmt"

	"github.com/ironsheep/chroma-key-mcp/internal/imaging"
	"github.com/ironsheep/chroma-key-mcp/internal/keying"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Key out a background and write the result as PNG",
	Example: `  chroma-key-mcp apply -i logo.jpg -o logo.png
  chroma-key-mcp apply -i scan.png -o out.png --preset black --max-r 60
  chroma-key-mcp apply -i shot.png -o out.png --min-hex "#00A000" --max-hex "#60FF60"
  chroma-key-mcp apply -i shot.png -o out.png --preset custom \
      --min-r 0 --min-g 150 --min-b 0 --max-r 80 --max-g 256 --max-b 80`,
	RunE: runApply,
}

// boundFlags are the six threshold flags in ResolveRange order.
var boundFlags = [6]string{"min-r", "min-g", "min-b", "max-r", "max-g", "max-b"}

func init() {
	addApplyFlags(applyCmd.Flags())
	applyCmd.MarkFlagRequired("input")
	applyCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(applyCmd)
}

func addApplyFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", "", "Input image (png, jpeg, gif, bmp, tiff, webp)")
	fs.StringP("output", "o", "", "Output PNG file")
	fs.String("preset", "white", "Threshold preset: white, black or custom")
	for _, name := range boundFlags {
		// Kept as strings so that non-integers report as an invalid range.
		fs.String(name, "", "Override the preset's "+name+" bound")
	}
	fs.String("min-hex", "", "Lower range corner as #RRGGBB (replaces the preset)")
	fs.String("max-hex", "", "Upper range corner as #RRGGBB (replaces the preset)")
	fs.Bool("preserve-color", false, "Zero alpha on matched pixels but keep their RGB")
	fs.Int("workers", 0, "Goroutines for the pass (0 = one per CPU)")
}

// rangeFromFlags resolves the range from the flags. Bound flags win over
// --min-hex/--max-hex, which win over --preset.
func rangeFromFlags(flags *pflag.FlagSet) (keying.ChannelRange, error) {
	var overrides [6]*string
	for i, name := range boundFlags {
		if !flags.Changed(name) {
			continue
		}
		v, _ := flags.GetString(name)
		overrides[i] = &v
	}

	if flags.Changed("min-hex") || flags.Changed("max-hex") {
		minHex, _ := flags.GetString("min-hex")
		maxHex, _ := flags.GetString("max-hex")
		base, err := imaging.RangeFromHex(minHex, maxHex)
		if err != nil {
			return keying.ChannelRange{}, err
		}
		return base.Override(overrides)
	}

	presetName, _ := flags.GetString("preset")
	preset, err := keying.ParsePreset(presetName)
	if err != nil {
		return keying.ChannelRange{}, err
	}
	return keying.ResolveRange(preset, overrides)
}

func runApply(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	preserve, _ := cmd.Flags().GetBool("preserve-color")
	workers, _ := cmd.Flags().GetInt("workers")

	rng, err := rangeFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	opts := keying.Options{Mode: keying.ModeWhiteout, Workers: workers}
	if preserve {
		opts.Mode = keying.ModePreserveColor
	}

	src, err := imaging.LoadFile(inputPath)
	if err != nil {
		return err
	}

	out, stats, err := keying.ApplyWithOptions(src, rng, opts)
	if err != nil {
		return err
	}

	if err := imaging.SavePNG(out, outputPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Keyed %dx%d with %s (%s): %d of %d pixels transparent\n",
		out.Bounds().Dx(), out.Bounds().Dy(), rng, opts.Mode, stats.Matched, stats.Total)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", outputPath)
	return nil
}
