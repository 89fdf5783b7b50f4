package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/user/segcut/deps"
)

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errors []string

	for _, bin := range []struct{ name, path string }{{"ffmpeg", c.Ffmpeg}, {"ffprobe", c.Ffprobe}} {
		if bin.path == "" {
			continue
		}
		if _, err := os.Stat(bin.path); err != nil {
			errors = append(errors, fmt.Sprintf("%s binary does not exist: %s", bin.name, bin.path))
		}
	}

	switch {
	case c.Ffmpeg != "" && c.Ffprobe == "":
		if sib := deps.Sibling(c.Ffmpeg, "ffprobe"); !exists(sib) {
			errors = append(errors, fmt.Sprintf("ffprobe is not set and not found next to ffmpeg (%s); set ffmpeg and ffprobe together", sib))
		}
	case c.Ffprobe != "" && c.Ffmpeg == "":
		if sib := deps.Sibling(c.Ffprobe, "ffmpeg"); !exists(sib) {
			errors = append(errors, fmt.Sprintf("ffmpeg is not set and not found next to ffprobe (%s); set ffmpeg and ffprobe together", sib))
		}
	}

	if c.BinDir != "" {
		if info, err := os.Stat(c.BinDir); err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("bin_dir is not a directory: %s", c.BinDir))
		}
	}

	if strings.TrimSpace(c.VideoCodec) == "" {
		errors = append(errors, "video_codec is required")
	}
	if strings.TrimSpace(c.AudioCodec) == "" {
		errors = append(errors, "audio_codec is required")
	}

	if c.History && c.DBPath == "" {
		errors = append(errors, "db_path is required when history is enabled")
	}

	if !slices.Contains(LogLevels(), strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log_level '%s', must be one of: %s",
			c.LogLevel, strings.Join(LogLevels(), ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
