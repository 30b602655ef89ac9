package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/free-spline/internal/storage"
)

const extension = ".json"

// Save saves the given json struct into the given path with the provided filename.
func Save(filePath string, fileName string, value interface{}) error {
	// check if filepath exists
	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a directory: %s", filePath)
	}

	p := filepath.Join(filePath, fileName+extension)
	return Capture(value, p)
}

// Load loads the payload from the given filePath and fileName.
func Load(filePath string, fileName string, value interface{}) error {
	p := filepath.Join(filePath, fileName+extension)
	return Read(p, value)
}

// Capture captures the given payload as a json in the given file.
func Capture(payload interface{}, fileName string) error {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal payload for '%s': %w", fileName, err)
	}

	err = os.WriteFile(fileName, b, 0644)
	if err != nil {
		return fmt.Errorf("could not write file '%s': %w", fileName, err)
	}
	return nil
}

// Read decodes the json file into the given value.
func Read(fileName string, value interface{}) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("could not read file '%s' %s: %w", fileName, err.Error(), storage.NotFoundErr)
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("could not unmarshal '%s': %v: %w", fileName, err, storage.CouldNotLoadErr)
	}
	return nil
}
