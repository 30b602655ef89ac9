package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	evalKey  stored
	evalSurf int
	evalU    []float64
	evalV    []float64
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a fitted surface",
	Long:  "Evaluate a stored surface and its jacobian at the given parameter pairs.",
	Args:  cobra.NoArgs,
	RunE:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalKey.flags(evalCmd)
	evalCmd.Flags().IntVar(&evalSurf, "surface", 0, "Index of the surface")
	evalCmd.Flags().Float64SliceVarP(&evalU, "u", "u", []float64{0}, "Chordwise parameters")
	evalCmd.Flags().Float64SliceVarP(&evalV, "v", "v", []float64{0}, "Spanwise parameters")
}

func runEval(cmd *cobra.Command, args []string) error {
	s, err := evalKey.load()
	if err != nil {
		return err
	}
	if err := surfaceIndex(s, evalSurf); err != nil {
		return err
	}
	points, err := s.ValueV(evalSurf, evalU, evalV)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, p := range points {
		j := s.Jacobian(evalSurf, evalU[i], evalV[i])
		fmt.Fprintf(out, "u=%f v=%f x=%v\n", evalU[i], evalV[i], p)
		fmt.Fprintf(out, "  du=[%f %f %f] dv=[%f %f %f]\n", j[0][0], j[1][0], j[2][0], j[0][1], j[1][1], j[2][1])
	}
	return nil
}
