package json

import (
	"path/filepath"
	"testing"

	"github.com/drakos74/free-spline/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Event struct {
	Name  string  `json:"name"`
	ID    string  `json:"id"`
	Index int     `json:"index"`
	RMS   float64 `json:"rms"`
}

func newEvent(i int) Event {
	return Event{
		Name:  "test",
		ID:    uuid.New().String(),
		Index: i,
		RMS:   float64(i) / 10,
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	ev := newEvent(1)
	err := Save(filepath.Join(dir, "nested"), "event", ev)
	require.NoError(t, err)

	var loaded Event
	err = Load(filepath.Join(dir, "nested"), "event", &loaded)
	require.NoError(t, err)
	assert.Equal(t, ev, loaded)

	err = Load(dir, "missing", &loaded)
	assert.ErrorIs(t, err, storage.NotFoundErr)

	err = Capture("not an event", filepath.Join(dir, "bad.json"))
	require.NoError(t, err)
	err = Load(dir, "bad", &loaded)
	assert.ErrorIs(t, err, storage.CouldNotLoadErr)
}

func TestShards(t *testing.T) {

	type test struct {
		shard storage.Shard
	}

	dir := t.TempDir()
	tests := map[string]test{
		"blob": {
			shard: func(shard string) (storage.Persistence, error) {
				return NewJsonBlob("table", shard, true).WithPath(dir), nil
			},
		},
		"local": {
			shard: LocalShard(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := tt.shard("shard")
			require.NoError(t, err)

			k := storage.NewKey("wing", "lms")
			ev := newEvent(3)
			require.NoError(t, s.Store(k, ev))

			var loaded Event
			require.NoError(t, s.Load(k, &loaded))
			assert.Equal(t, ev, loaded)

			err = s.Load(storage.NewKey("wing", "lms"), &loaded)
			assert.ErrorIs(t, err, storage.NotFoundErr)
		})
	}
}

func TestEvents_Add(t *testing.T) {
	registry := NewEventRegistry("processor").WithRoot(t.TempDir()).WithHash(1)

	k := storage.K{
		Name:  "wing",
		Label: "lms",
	}

	events := make([]Event, 0)
	for i := 0; i < 10; i++ {
		ev := newEvent(i)
		events = append(events, ev)
		err := registry.Add(k, ev)
		assert.NoError(t, err)
	}
	// a second run appends to its own file
	ev := newEvent(10)
	events = append(events, ev)
	require.NoError(t, registry.WithHash(2).Add(k, ev))

	var loaded []Event
	err := registry.GetAll(k, &loaded)
	require.NoError(t, err)
	assert.Equal(t, events, loaded)

	err = registry.GetAll(storage.K{Name: "wing", Label: "other"}, &loaded)
	assert.ErrorIs(t, err, storage.NotFoundErr)

	err = registry.GetAll(k, loaded)
	assert.Error(t, err)
}
