// Package config builds one Config from four layers (highest precedence
// last):
//
//  1. built-in defaults (Default),
//  2. an optional `.env` file next to the YAML file or in the working dir,
//  3. a YAML file,
//  4. environment variables prefixed MEMOBENCH_, where `__` maps to "."
//     (MEMOBENCH_RANGESUM__CACHE_SIZE -> rangesum.cache_size).
//
// Command-line flags are applied by the caller on top of the result.
//
// Logs go through the global sugared logger (zap.S()) so they surface once
// the CLI has installed its logger and stay silent before that.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix marks environment overrides.
const EnvPrefix = "MEMOBENCH_"

// DefaultPath is tried when Load gets an empty path.
var DefaultPath = filepath.Join("conf", "memobench.yaml")

var validate = validator.New()

// Load merges the layers and validates the result. An empty path falls
// back to DefaultPath when that file exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	// .env is optional; existing variables win over it.
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))
	_ = godotenv.Load(".env")

	k := koanf.New(".")

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", path, "err", err)
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
		zap.S().Debugw("config yaml loaded", "file", path)
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("config: env overlay: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	zap.S().Debugw("config loaded",
		"seed", cfg.Seed,
		"parallel", cfg.Parallel,
		"report", cfg.Report.Format,
	)
	return &cfg, nil
}

// Validate checks struct tags. The CLI calls it again after applying flags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// envKey maps MEMOBENCH_RANGESUM__CACHE_SIZE to rangesum.cache_size.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}
