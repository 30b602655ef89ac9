package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/drakos74/free-spline/internal/model"
)

const (
	OrigData     = "orig_data"
	Interpolated = "interpolated"
	ControlPts   = "control_pts"
)

// WriteTecplot writes the samples, the fitted surfaces evaluated at the sample coordinates
// and the control points as tecplot point zones, one zone per surface and kind.
func WriteTecplot(w io.Writer, s Source) error {
	bw := bufio.NewWriter(w)
	samples := s.Samples()
	if samples.Len() != s.Len() {
		return fmt.Errorf("expected %d sampled patches but got %d: %w", s.Len(), samples.Len(), model.ShapeErr)
	}

	for _, p := range samples.Patches {
		fmt.Fprint(bw, "VARIABLES = \"X\", \"Y\",\"Z\"\n")
		zone(bw, OrigData, p.Nu(), p.Nv(), func(i, j int) model.Point {
			return p.X[i][j]
		})
	}

	for surf, p := range samples.Patches {
		zone(bw, Interpolated, p.Nu(), p.Nv(), func(i, j int) model.Point {
			return s.Value(surf, p.U[i], p.V[j])
		})
	}

	for surf := 0; surf < s.Len(); surf++ {
		g := s.Control(surf)
		if len(g) == 0 {
			continue
		}
		zone(bw, ControlPts, len(g), len(g[0]), func(i, j int) model.Point {
			return g[i][j]
		})
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write tecplot zones: %w", err)
	}
	return nil
}

// zone writes a single zone, with i running fastest.
func zone(w io.Writer, name string, ni, nj int, point func(i, j int) model.Point) {
	fmt.Fprintf(w, "Zone T=%s I=%d J = %d\n", name, ni, nj)
	fmt.Fprint(w, "DATAPACKING=POINT\n")
	for j := 0; j < nj; j++ {
		for i := 0; i < ni; i++ {
			p := point(i, j)
			fmt.Fprintf(w, "%f %f %f \n", p[model.X], p[model.Y], p[model.Z])
		}
	}
}

// SaveTecplot writes the tecplot file at the given path.
func SaveTecplot(path string, s Source) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create tecplot file '%s': %w", path, err)
	}
	defer f.Close()
	return WriteTecplot(f, s)
}
