package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvFfmpeg     = "SEGCUT_FFMPEG"
	EnvFfprobe    = "SEGCUT_FFPROBE"
	EnvBinDir     = "SEGCUT_BIN_DIR"
	EnvVideoCodec = "SEGCUT_VIDEO_CODEC"
	EnvAudioCodec = "SEGCUT_AUDIO_CODEC"
	EnvDB         = "SEGCUT_DB"
	EnvLogLevel   = "SEGCUT_LOG_LEVEL"
	EnvNoHistory  = "SEGCUT_NO_HISTORY"
)

// Load builds the configuration with priority: environment > file > defaults.
// An empty path searches the standard locations; a missing file there is not
// an error. Command-line flags are applied on top by the caller.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Find()
	}

	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg = fileCfg
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML file over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Find returns the first existing config file in the standard locations,
// or "" when there is none.
func Find() string {
	locations := []string{"segcut.yaml", "segcut.yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		locations = append(locations,
			filepath.Join(dir, "segcut", "config.yaml"),
			filepath.Join(dir, "segcut", "config.yml"),
		)
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from SEGCUT_* environment variables that are set.
func (c *Config) ApplyEnv() error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvFfmpeg, &c.Ffmpeg},
		{EnvFfprobe, &c.Ffprobe},
		{EnvBinDir, &c.BinDir},
		{EnvVideoCodec, &c.VideoCodec},
		{EnvAudioCodec, &c.AudioCodec},
		{EnvDB, &c.DBPath},
		{EnvLogLevel, &c.LogLevel},
	}
	for _, s := range strs {
		if v, ok := os.LookupEnv(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvNoHistory); ok && v != "" {
		off, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvNoHistory, v, err)
		}
		c.History = !off
	}
	return nil
}
