package storage

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	SurfaceDir  = "surfaces"
	RegistryDir = "registry"
	ReportPath  = "reports"
)

var (
	DefaultDir = "file-storage"
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

// EventRegistry creates a new registry for the given path.
type EventRegistry func(path string) (Registry, error)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for a fitted surface.
type Key struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// NewKey creates a key with a fresh run id.
func NewKey(name, label string) Key {
	return Key{
		ID:    uuid.New().String(),
		Name:  name,
		Label: label,
	}
}

// K is a simplified key for storage
type K struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

func (k Key) Path() string {
	return fmt.Sprintf("%s_%s_%s", k.Name, k.ID, k.Label)
}

// K drops the run id of the key.
func (k Key) K() K {
	return K{
		Name:  k.Name,
		Label: k.Label,
	}
}

// Registry appends items one by one.
type Registry interface {
	Add(key K, value interface{}) error
	GetAll(key K, values interface{}) error
}

type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
