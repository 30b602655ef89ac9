package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drakos74/free-spline/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flat is a source whose surfaces are z = surf over the unit square.
type flat struct {
	samples model.Samples
	control []model.Grid
}

func newFlat() flat {
	u := []float64{0, 1}
	v := []float64{0, 0.5, 1}
	f := flat{}
	for s := 0; s < 2; s++ {
		x := model.NewGrid(len(u), len(v))
		for i := range u {
			for j := range v {
				x[i][j] = model.Point{u[i], v[j], float64(s)}
			}
		}
		f.samples.Patches = append(f.samples.Patches, model.Patch{U: u, V: v, X: x})
		f.control = append(f.control, x)
	}
	return f
}

func (f flat) Len() int {
	return len(f.control)
}

func (f flat) Samples() model.Samples {
	return f.samples
}

func (f flat) Control(surf int) model.Grid {
	return f.control[surf]
}

func (f flat) Value(surf int, u, v float64) model.Point {
	return model.Point{u, v, float64(surf) + 0.5}
}

func TestWriteTecplot(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTecplot(&buf, newFlat())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	// 2 surfaces x 3 zones x (2 header lines + 6 points) + 2 variable lines
	require.Len(t, lines, 50)

	assert.Equal(t, `VARIABLES = "X", "Y","Z"`, lines[0])
	assert.Equal(t, "Zone T=orig_data I=2 J = 3", lines[1])
	assert.Equal(t, "DATAPACKING=POINT", lines[2])
	// i runs fastest
	assert.Equal(t, "0.000000 0.000000 0.000000 ", lines[3])
	assert.Equal(t, "1.000000 0.000000 0.000000 ", lines[4])
	assert.Equal(t, "0.000000 0.500000 0.000000 ", lines[5])
	assert.Equal(t, `VARIABLES = "X", "Y","Z"`, lines[9])
	assert.Equal(t, "0.000000 0.000000 1.000000 ", lines[12])

	assert.Equal(t, "Zone T=interpolated I=2 J = 3", lines[18])
	assert.Equal(t, "1.000000 1.000000 0.500000 ", lines[25])
	assert.Equal(t, "Zone T=interpolated I=2 J = 3", lines[26])
	assert.Equal(t, "0.000000 0.000000 1.500000 ", lines[28])

	assert.Equal(t, "Zone T=control_pts I=2 J = 3", lines[34])
	assert.Equal(t, "Zone T=control_pts I=2 J = 3", lines[42])
	assert.Equal(t, "1.000000 1.000000 1.000000 ", lines[49])
}

func TestWriteTecplot_Mismatch(t *testing.T) {
	f := newFlat()
	f.samples.Patches = f.samples.Patches[:1]
	err := WriteTecplot(&bytes.Buffer{}, f)
	assert.ErrorIs(t, err, model.ShapeErr)
}

func TestSaveTecplot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surface.dat")
	require.NoError(t, SaveTecplot(path, newFlat()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "VARIABLES"))
}

func TestPlots(t *testing.T) {
	dir := t.TempDir()

	section, err := Section(newFlat(), 1, 10)
	require.NoError(t, err)
	require.NoError(t, SavePNG(section, filepath.Join(dir, "section.png")))

	planform, err := Planform(newFlat())
	require.NoError(t, err)
	require.NoError(t, SavePNG(planform, filepath.Join(dir, "planform.png")))

	for _, name := range []string{"section.png", "planform.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	_, err = Section(newFlat(), 3, 10)
	assert.ErrorIs(t, err, model.ShapeErr)
}
