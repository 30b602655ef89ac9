package surface

import (
	"testing"

	xmath "github.com/drakos74/free-spline/internal/math"
	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/storage"
	"github.com/drakos74/free-spline/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_SaveAndLoad(t *testing.T) {

	type test struct {
		shard storage.Shard
	}

	dir := t.TempDir()
	tests := map[string]test{
		"mock": {
			shard: storage.MockShard(),
		},
		"local": {
			shard: json.LocalShard(),
		},
		"blob": {
			shard: func(shard string) (storage.Persistence, error) {
				return json.NewJsonBlob(storage.SurfaceDir, shard, false).WithPath(dir), nil
			},
		},
	}

	s, err := New(xmath.DefaultWing().Samples(9, 5), interpolateConfig(), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store, err := tt.shard("wing")
			require.NoError(t, err)

			k := storage.NewKey("wing", string(Interpolate))
			require.NoError(t, s.Save(store, k))

			loaded, err := Load(store, k, WithLogger(zerolog.Nop()))
			require.NoError(t, err)

			assert.Equal(t, s.Len(), loaded.Len())
			assert.Equal(t, s.Config(), loaded.Config())
			assert.Equal(t, s.Report().RMS, loaded.Report().RMS)
			assert.Equal(t, s.Samples(), loaded.Samples())
			for i := 0; i < s.Len(); i++ {
				assert.Equal(t, s.Control(i), loaded.Control(i))
				for _, u := range []float64{0, 0.3, 1} {
					assert.Equal(t, s.Value(i, u, 0.7), loaded.Value(i, u, 0.7))
				}
			}

			_, err = Load(store, storage.NewKey("wing", "other"))
			assert.ErrorIs(t, err, storage.NotFoundErr)
		})
	}
}

func TestFromState_Invalid(t *testing.T) {
	s, err := New(xmath.DefaultWing().Samples(9, 5), interpolateConfig(), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	state := s.State()
	state.Control = state.Control[:1]
	_, err = FromState(state)
	assert.ErrorIs(t, err, model.ShapeErr)

	state = s.State()
	state.Control = []model.Grid{state.Control[0][:3], state.Control[1]}
	_, err = FromState(state)
	assert.ErrorIs(t, err, model.ShapeErr)

	_, err = FromState(State{})
	assert.ErrorIs(t, err, model.ShapeErr)
}
