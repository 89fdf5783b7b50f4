package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/segcut/deps"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.VideoCodec != "libx264" || cfg.AudioCodec != "aac" {
		t.Errorf("codecs = %s/%s; want libx264/aac", cfg.VideoCodec, cfg.AudioCodec)
	}
	if !cfg.History {
		t.Error("history should be on by default")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %s; want warn", cfg.LogLevel)
	}
	if !strings.HasSuffix(cfg.DBPath, "history.db") {
		t.Errorf("db path = %s", cfg.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segcut.yaml")
	content := "video_codec: libx265\nhistory: false\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.VideoCodec != "libx265" || cfg.History || cfg.LogLevel != "debug" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.AudioCodec != "aac" {
		t.Errorf("unset field should keep default, got %s", cfg.AudioCodec)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("history: [unterminated"), 0644)
	if _, err := LoadFile(path); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvFfmpeg, "/opt/ff/ffmpeg")
	t.Setenv(EnvAudioCodec, "libopus")
	t.Setenv(EnvNoHistory, "1")
	t.Setenv(EnvLogLevel, "")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Ffmpeg != "/opt/ff/ffmpeg" || cfg.AudioCodec != "libopus" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.History {
		t.Error("SEGCUT_NO_HISTORY=1 should disable history")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("empty env value should not override, got %q", cfg.LogLevel)
	}

	t.Setenv(EnvNoHistory, "maybe")
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected error for non-boolean SEGCUT_NO_HISTORY")
	}
}

func TestLoadPriority(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "segcut.yaml")
	os.WriteFile(path, []byte("video_codec: libx265\naudio_codec: mp3\n"), 0644)
	t.Setenv(EnvVideoCodec, "h264_nvenc")
	t.Chdir(dir)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.VideoCodec != "h264_nvenc" {
		t.Errorf("env should win over file, got %s", cfg.VideoCodec)
	}
	if cfg.AudioCodec != "mp3" {
		t.Errorf("file should win over default, got %s", cfg.AudioCodec)
	}
}

func TestFindInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	if got := Find(); got != "" {
		t.Errorf("Find() = %q; want none", got)
	}
	os.WriteFile(filepath.Join(dir, "segcut.yaml"), []byte("{}"), 0644)
	if got := Find(); got != "segcut.yaml" {
		t.Errorf("Find() = %q; want segcut.yaml", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.BinDir = "/opt/ffmpeg/bin"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if *got != *cfg {
		t.Errorf("got %+v; want %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		errorText []string
	}{
		{"valid", func(*Config) {}, nil},
		{"missing ffmpeg", func(c *Config) { c.Ffmpeg = "/does/not/exist/ffmpeg" }, []string{"ffmpeg binary does not exist"}},
		{"bin dir", func(c *Config) { c.BinDir = "/does/not/exist" }, []string{"bin_dir is not a directory"}},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, []string{"invalid log_level 'loud'"}},
		{"history without db", func(c *Config) { c.DBPath = "" }, []string{"db_path is required"}},
		{"history off without db", func(c *Config) { c.History = false; c.DBPath = "" }, nil},
		{
			"collects all",
			func(c *Config) { c.VideoCodec = ""; c.AudioCodec = " " },
			[]string{"video_codec is required", "audio_codec is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if len(tt.errorText) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			for _, text := range tt.errorText {
				if !strings.Contains(err.Error(), text) {
					t.Errorf("error %q missing %q", err.Error(), text)
				}
			}
		})
	}
}

func TestValidateHalfSetToolPair(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := filepath.Join(dir, "ffmpeg-custom")
	if err := os.WriteFile(ffmpeg, nil, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Ffmpeg = ffmpeg
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "set ffmpeg and ffprobe together") {
		t.Fatalf("err = %v; want half-set pair rejected", err)
	}

	if err := os.WriteFile(deps.Sibling(ffmpeg, "ffprobe"), nil, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("ffprobe next to ffmpeg should be accepted: %v", err)
	}
}
