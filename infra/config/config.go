package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Path is the directory of the default config files.
var Path = "infra/config"

// Load decodes the json config file into v.
func Load(file string, v interface{}) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not load config '%s': %w", file, err)
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		return fmt.Errorf("could not unmarshal config '%s': %w", file, err)
	}

	log.Info().Str("file", file).Msg("loaded config")
	return nil
}

// MustLoad loads the default config for the given key
func MustLoad(key string, v interface{}) {
	err := Load(filepath.Join(Path, fmt.Sprintf("%s.json", key)), v)
	if err != nil {
		panic(err.Error())
	}
}
