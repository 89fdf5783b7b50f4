// Package config loads segcut settings from a YAML file and the environment.
package config

import (
	"os"
	"path/filepath"
)

// Config holds all segcut settings.
type Config struct {
	// Tool resolution
	Ffmpeg  string `yaml:"ffmpeg"`  // explicit ffmpeg binary, wins over every other location
	Ffprobe string `yaml:"ffprobe"` // explicit ffprobe binary
	BinDir  string `yaml:"bin_dir"` // directory holding a bundled ffmpeg/ffprobe pair

	// Re-encode fallback codecs
	VideoCodec string `yaml:"video_codec"`
	AudioCodec string `yaml:"audio_codec"`

	// Cut history
	History bool   `yaml:"history"`
	DBPath  string `yaml:"db_path"`

	// Logging
	LogLevel string `yaml:"log_level"` // trace, debug, info, warn, error, off
	LogJSON  bool   `yaml:"log_json"`
}

// Default returns the configuration used when no file or environment sets a value.
func Default() *Config {
	return &Config{
		VideoCodec: "libx264",
		AudioCodec: "aac",
		History:    true,
		DBPath:     defaultDBPath(),
		LogLevel:   "warn",
	}
}

// defaultDBPath returns ~/.local/share/segcut/history.db, or a path in the
// working directory when no home directory is known.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "segcut-history.db"
	}
	return filepath.Join(home, ".local", "share", "segcut", "history.db")
}

// LogLevels returns the accepted log_level values.
func LogLevels() []string {
	return []string{"trace", "debug", "info", "warn", "error", "off"}
}
