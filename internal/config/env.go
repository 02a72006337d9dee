package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds settings taken from the environment.
type Env struct {
	ConfigPath    string `env:"FOLIO_CONFIG"`
	DBPath        string `env:"FOLIO_DB"`
	ContentPath   string `env:"FOLIO_CONTENT"`
	LogPath       string `env:"FOLIO_LOG"`
	ReducedMotion bool   `env:"FOLIO_REDUCED_MOTION"`
}

// LoadEnv parses FOLIO_* variables. Values from the dotenv file at dotenvPath
// fill in whatever the process environment leaves unset; a missing file is ignored.
func LoadEnv(dotenvPath string) (Env, error) {
	vars := map[string]string{}
	if dotenvPath != "" {
		fileVars, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for k, v := range env.ToMap(os.Environ()) {
		vars[k] = v
	}
	var cfg Env
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
