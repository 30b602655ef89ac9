package export

import (
	"fmt"

	"github.com/drakos74/free-spline/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Section plots the chordwise section of every surface at the spanwise sample column j:
// the samples and the fitted surface evaluated at n points along u.
func Section(s Source, j, n int) (*plot.Plot, error) {
	samples := s.Samples()
	if j < 0 || j >= samples.Nv() {
		return nil, fmt.Errorf("section %d outside of %d spanwise samples: %w", j, samples.Nv(), model.ShapeErr)
	}

	if n < 2 {
		n = 2
	}

	p := plot.New()
	p.Title.Text = "Section"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	for surf, patch := range samples.Patches {
		pts := make(plotter.XYs, patch.Nu())
		for i := range patch.U {
			pts[i].X = patch.X[i][j][model.X]
			pts[i].Y = patch.X[i][j][model.Y]
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("could not plot samples of surface %d: %w", surf, err)
		}
		scatter.GlyphStyle.Color = plotutil.Color(surf)

		fitted := make(plotter.XYs, n)
		v := patch.V[j]
		for i := 0; i < n; i++ {
			x := s.Value(surf, float64(i)/float64(n-1), v)
			fitted[i].X = x[model.X]
			fitted[i].Y = x[model.Y]
		}
		line, err := plotter.NewLine(fitted)
		if err != nil {
			return nil, fmt.Errorf("could not plot surface %d: %w", surf, err)
		}
		line.Color = plotutil.Color(surf)

		p.Add(scatter, line)
		p.Legend.Add(fmt.Sprintf("surface %d", surf), line)
	}
	return p, nil
}

// Planform plots the control net of every surface projected on the x-z plane.
func Planform(s Source) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Control net"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Z"

	for surf := 0; surf < s.Len(); surf++ {
		for i, row := range s.Control(surf) {
			pts := make(plotter.XYs, len(row))
			for j, c := range row {
				pts[j].X = c[model.X]
				pts[j].Y = c[model.Z]
			}
			line, points, err := plotter.NewLinePoints(pts)
			if err != nil {
				return nil, fmt.Errorf("could not plot control row %d of surface %d: %w", i, surf, err)
			}
			line.Color = plotutil.Color(surf)
			points.GlyphStyle.Color = plotutil.Color(surf)
			p.Add(line, points)
		}
	}
	return p, nil
}

// SavePNG saves the plot as a png image.
func SavePNG(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("could not save plot '%s': %w", path, err)
	}
	return nil
}
