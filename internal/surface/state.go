package surface

import (
	"fmt"

	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/spline"
	"github.com/drakos74/free-spline/internal/storage"
	"github.com/rs/zerolog/log"
)

// State is the persisted form of a fitted surface.
type State struct {
	Config  Config          `json:"config"`
	Tensors []spline.Tensor `json:"tensors"`
	Control []model.Grid    `json:"control"`
	Samples model.Samples   `json:"samples"`
	Report  Report          `json:"report"`
}

// State returns the persisted form of the surface.
func (s *Surface) State() State {
	return State{
		Config:  s.config,
		Tensors: s.tensors,
		Control: s.control,
		Samples: s.samples,
		Report:  s.report,
	}
}

// FromState restores a fitted surface.
func FromState(state State, opts ...Option) (*Surface, error) {
	if len(state.Tensors) == 0 || len(state.Tensors) != len(state.Control) {
		return nil, fmt.Errorf("expected one control grid per tensor but got %d tensors and %d grids: %w", len(state.Tensors), len(state.Control), model.ShapeErr)
	}
	for i, t := range state.Tensors {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid tensor %d: %w", i, err)
		}
		g := state.Control[i]
		if len(g) != t.Nu() {
			return nil, fmt.Errorf("control grid %d has %d rows instead of %d: %w", i, len(g), t.Nu(), model.ShapeErr)
		}
		for r, row := range g {
			if len(row) != t.Nv() {
				return nil, fmt.Errorf("control grid %d row %d has %d points instead of %d: %w", i, r, len(row), t.Nv(), model.ShapeErr)
			}
		}
	}

	s := &Surface{
		logger:  log.Logger,
		config:  state.Config,
		samples: state.Samples,
		tensors: state.Tensors,
		control: state.Control,
		report:  state.Report,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.split()
	return s, nil
}

// Save stores the surface under the given key.
func (s *Surface) Save(store storage.Persistence, key storage.Key) error {
	if err := store.Store(key, s.State()); err != nil {
		return fmt.Errorf("could not store surface '%s': %w", key.Path(), err)
	}
	s.logger.Info().Str("key", key.Path()).Msg("stored surface")
	return nil
}

// Load restores the surface stored under the given key.
func Load(store storage.Persistence, key storage.Key, opts ...Option) (*Surface, error) {
	var state State
	if err := store.Load(key, &state); err != nil {
		return nil, fmt.Errorf("could not load surface '%s': %w", key.Path(), err)
	}
	return FromState(state, opts...)
}
