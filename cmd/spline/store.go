package main

import (
	"fmt"

	"github.com/drakos74/free-spline/internal/storage"
	"github.com/drakos74/free-spline/internal/storage/file/json"
	"github.com/drakos74/free-spline/internal/surface"
	"github.com/spf13/cobra"
)

// stored identifies a fitted surface in the blob storage.
type stored struct {
	name  string
	id    string
	label string
	file  string
}

func (s *stored) flags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.name, "name", "wing", "Name of the stored surface")
	cmd.Flags().StringVar(&s.id, "id", "", "Run id of the stored surface")
	cmd.Flags().StringVar(&s.label, "label", string(surface.LMS), "Label of the stored surface, i.e. the fit type")
	cmd.Flags().StringVar(&s.file, "state", "", "Load the surface from a state file instead of the storage")
}

func (s *stored) key() storage.Key {
	return storage.Key{
		ID:    s.id,
		Name:  s.name,
		Label: s.label,
	}
}

// load restores the surface from the state file if one is given, from the storage otherwise.
func (s *stored) load() (*surface.Surface, error) {
	if s.file != "" {
		var state surface.State
		if err := json.Read(s.file, &state); err != nil {
			return nil, fmt.Errorf("could not read state '%s': %w", s.file, err)
		}
		return surface.FromState(state)
	}
	if s.id == "" {
		return nil, fmt.Errorf("either --state or --id is required")
	}
	store, err := json.BlobShard(storage.SurfaceDir)(s.name)
	if err != nil {
		return nil, err
	}
	return surface.Load(store, s.key())
}

func surfaceIndex(s *surface.Surface, surf int) error {
	if surf < 0 || surf >= s.Len() {
		return fmt.Errorf("surface %d out of range [0,%d)", surf, s.Len())
	}
	return nil
}

func vec3(name string, v []float64) ([3]float64, error) {
	var p [3]float64
	if len(v) != 3 {
		return p, fmt.Errorf("--%s expects x,y,z but got %d values", name, len(v))
	}
	copy(p[:], v)
	return p, nil
}
