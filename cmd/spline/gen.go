package main

import (
	"fmt"

	xmath "github.com/drakos74/free-spline/internal/math"
	"github.com/drakos74/free-spline/internal/storage/file/json"
	"github.com/spf13/cobra"
)

var (
	genNu   int
	genNv   int
	genOut  string
	genWing = xmath.DefaultWing()
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate the samples of a synthetic wing",
	Long:  "Sample the upper and lower surface of a tapered, swept wing with a symmetric four digit profile.",
	Args:  cobra.NoArgs,
	RunE:  runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().IntVar(&genNu, "nu", 41, "Number of chordwise samples")
	genCmd.Flags().IntVar(&genNv, "nv", 11, "Number of spanwise samples")
	genCmd.Flags().Float64Var(&genWing.Chord, "chord", genWing.Chord, "Root chord")
	genCmd.Flags().Float64Var(&genWing.Span, "span", genWing.Span, "Span")
	genCmd.Flags().Float64Var(&genWing.Thickness, "thickness", genWing.Thickness, "Thickness to chord ratio")
	genCmd.Flags().Float64Var(&genWing.Taper, "taper", genWing.Taper, "Chord reduction at the tip, relative to the root")
	genCmd.Flags().Float64Var(&genWing.Sweep, "sweep", genWing.Sweep, "LE sweep, as x offset per unit span")
	genCmd.Flags().StringVarP(&genOut, "out", "o", "samples.json", "Output file")
}

func runGen(cmd *cobra.Command, args []string) error {
	if genNu < 2 || genNv < 2 {
		return fmt.Errorf("need at least 2x2 samples but got %dx%d", genNu, genNv)
	}
	samples := genWing.Samples(genNu, genNv)
	if err := json.Capture(samples, genOut); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %dx%d samples of %d surfaces to %s\n", genNu, genNv, samples.Len(), genOut)
	return nil
}
