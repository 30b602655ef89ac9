package json

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"time"

	"github.com/drakos74/free-spline/internal/storage"
)

const (
	filename = "%d.events.log"
)

// Registry appends json events to a log file per key,
// one file per registry hash.
type Registry struct {
	hash int64
	root string
}

// NewEventRegistry creates a new registry under the default storage dir.
func NewEventRegistry(path string) *Registry {
	return &Registry{
		hash: time.Now().Unix(),
		root: filepath.Join(storage.DefaultDir, storage.RegistryDir, path),
	}
}

// EventRegistry creates a new registry generator
func EventRegistry(parent string) storage.EventRegistry {
	return func(p string) (storage.Registry, error) {
		if p == "" {
			return NewEventRegistry(parent), nil
		}
		return NewEventRegistry(filepath.Join(parent, p)), nil
	}
}

func (e *Registry) WithHash(h int64) *Registry {
	e.hash = h
	return e
}

// WithRoot overrides the directory of the registry.
func (e *Registry) WithRoot(root string) *Registry {
	e.root = root
	return e
}

func (e *Registry) dir(k storage.K) string {
	return filepath.Join(e.root, k.Name, k.Label)
}

func (e *Registry) Add(key storage.K, value interface{}) error {
	dir := e.dir(key)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not make dir: %s: %w", dir, err)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode value '%+v': %w", value, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, fmt.Sprintf(filename, e.hash)), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer f.Close()

	if _, err = f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("could not write log file for '%+v': %w", key, err)
	}
	return nil
}

// GetAll decodes all events of the key, for all hashes, into the slice values points to.
func (e *Registry) GetAll(key storage.K, values interface{}) error {
	vv := reflect.ValueOf(values)
	if vv.Kind() != reflect.Ptr || vv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("only accepting slice pointers as placeholder for the results: %T", values)
	}
	t := vv.Elem().Type().Elem()

	files, err := filepath.Glob(filepath.Join(e.dir(key), "*.events.log"))
	if err != nil {
		return fmt.Errorf("could not list events for '%+v': %w", key, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no events for '%+v': %w", key, storage.NotFoundErr)
	}
	sort.Strings(files)

	elems := reflect.MakeSlice(vv.Elem().Type(), 0, 10)
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open log file '%s': %w", file, err)
		}
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			instance := reflect.New(t)
			if err := json.Unmarshal(line, instance.Interface()); err != nil {
				f.Close()
				return fmt.Errorf("could not decode event '%s': %v: %w", string(line), err, storage.CouldNotLoadErr)
			}
			elems = reflect.Append(elems, instance.Elem())
		}
		f.Close()
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("could not read log file '%s': %w", file, err)
		}
	}

	vv.Elem().Set(elems)
	return nil
}
