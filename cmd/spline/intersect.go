package main

import (
	"fmt"

	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/surface"
	"github.com/spf13/cobra"
)

var (
	intersectKey    stored
	intersectSurf   int
	intersectOrigin []float64
	intersectDir    []float64
	intersectU0     float64
	intersectV0     float64
	intersectTrace  bool
)

var intersectCmd = &cobra.Command{
	Use:   "intersect",
	Short: "Intersect a fitted surface with a ray",
	Long:  "Find where the ray origin + s*dir meets a stored surface, starting the newton iteration at (u0,v0).",
	Args:  cobra.NoArgs,
	RunE:  runIntersect,
}

func init() {
	rootCmd.AddCommand(intersectCmd)
	intersectKey.flags(intersectCmd)
	intersectCmd.Flags().IntVar(&intersectSurf, "surface", 0, "Index of the surface")
	intersectCmd.Flags().Float64SliceVar(&intersectOrigin, "origin", []float64{0.5, 1, 1}, "Origin of the ray, as x,y,z")
	intersectCmd.Flags().Float64SliceVar(&intersectDir, "dir", []float64{0, 0, -1}, "Direction of the ray, as x,y,z")
	intersectCmd.Flags().Float64Var(&intersectU0, "u0", 0.5, "Initial chordwise parameter")
	intersectCmd.Flags().Float64Var(&intersectV0, "v0", 0.5, "Initial spanwise parameter")
	intersectCmd.Flags().BoolVar(&intersectTrace, "trace", false, "Print every newton step")
}

func runIntersect(cmd *cobra.Command, args []string) error {
	origin, err := vec3("origin", intersectOrigin)
	if err != nil {
		return err
	}
	dir, err := vec3("dir", intersectDir)
	if err != nil {
		return err
	}
	s, err := intersectKey.load()
	if err != nil {
		return err
	}
	if err := surfaceIndex(s, intersectSurf); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := make([]surface.IntersectOption, 0)
	if intersectTrace {
		opts = append(opts, surface.Observe(func(step surface.Step) {
			fmt.Fprintf(out, "%2d u=%f v=%f s=%f update=%v halved=%v\n",
				step.Iteration, step.U, step.V, step.S, step.Update, step.Halved)
		}))
	}

	x, err := s.FindIntersection(intersectSurf, model.Point(origin).Vec(), model.Point(dir).Vec(), intersectU0, intersectV0, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "u=%f v=%f s=%f point=%v iterations=%d converged=%v\n",
		x.U, x.V, x.S, x.Point, x.Iterations, x.Converged)
	return nil
}
