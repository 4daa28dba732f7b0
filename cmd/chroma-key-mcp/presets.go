package main

import (
	"fmt"

	"github.com/ironsheep/chroma-key-mcp/internal/keying"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in threshold presets",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, p := range keying.Presets() {
			if r, ok := p.Range(); ok {
				fmt.Fprintf(out, "%-7s %s\n", p, r)
			} else {
				fmt.Fprintf(out, "%-7s all six bounds supplied by flags\n", p)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
