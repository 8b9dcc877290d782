package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const path = "infra/config"

// Load loads the config for the given key from the given directory.
// Keys missing from the file leave the corresponding fields of v untouched.
func Load(dir, key string, v interface{}) error {
	p := filepath.Join(dir, fmt.Sprintf("%s.json", key))
	b, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not load config for %s: %w", key, err)
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		return fmt.Errorf("could not unmarshal the config for %s: %w", key, err)
	}
	return nil
}

// MustLoad loads the config for the given key
func MustLoad(key string, v interface{}) {
	err := Load(path, key, v)
	if err != nil {
		panic(err.Error())
	}
	log.Info().Str("config", key).Msg("loaded default config")
}
