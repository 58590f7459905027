// Package config reads defaults from the environment and an optional .env
// file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables.
const (
	EnvConverter = "PBRPACK_CONVERTER"
	EnvSize      = "PBRPACK_SIZE"
	EnvSettings  = "PBRPACK_SETTINGS"
	EnvVariants  = "PBRPACK_VARIANTS"
)

// Config holds defaults which apply when neither a flag nor a saved setting
// gives a value.
type Config struct {
	ConverterPath string
	Size          int
	SettingsPath  string   // Empty means the default location.
	Variants      []string // Variant codes.
}

// LoadDotEnv loads variables from the given files, or ".env" if none are
// given. Missing files are ignored. Variables already set are not changed.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "could not load %s", f)
		}
	}
	return nil
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		ConverterPath: getenv(EnvConverter, ""),
		SettingsPath:  getenv(EnvSettings, ""),
		Variants:      getenvCSV(EnvVariants, nil),
	}
	if s := getenv(EnvSize, ""); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return cfg, errors.Errorf("invalid %s: %q", EnvSize, s)
		}
		cfg.Size = n
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvCSV(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
