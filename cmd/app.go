package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/user/segcut/clip"
	"github.com/user/segcut/config"
	"github.com/user/segcut/db"
	"github.com/user/segcut/deps"
	"github.com/user/segcut/probe"
	"github.com/user/segcut/segment"
)

// appContext holds what every command needs: settings, logger and tools.
type appContext struct {
	cfg        *config.Config
	configPath string
	logger     hclog.Logger
	tools      *deps.Toolchain
}

func newAppContext(cmd *cobra.Command) (*appContext, error) {
	path := rootFlags.configPath
	if path == "" {
		path = config.Find()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(cfg)
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}

	tools := deps.NewToolchain(deps.DefaultResolvers(deps.Options{
		Ffmpeg:  cfg.Ffmpeg,
		Ffprobe: cfg.Ffprobe,
		BinDir:  cfg.BinDir,
	})...)

	return &appContext{cfg: cfg, configPath: path, logger: logger, tools: tools}, nil
}

// applyFlags copies explicitly set root flags over file and environment values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = rootFlags.logLevel
	}
	if flags.Changed("ffmpeg") {
		cfg.Ffmpeg = rootFlags.ffmpeg
	}
	if flags.Changed("ffprobe") {
		cfg.Ffprobe = rootFlags.ffprobe
	}
	if flags.Changed("bin-dir") {
		cfg.BinDir = rootFlags.binDir
	}
	if flags.Changed("no-history") && rootFlags.noHistory {
		cfg.History = false
	}
}

func newLogger(cfg *config.Config) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "segcut",
		Level:      hclog.LevelFromString(cfg.LogLevel),
		Output:     os.Stderr,
		JSONFormat: cfg.LogJSON,
	})
}

func (a *appContext) prober() *probe.Prober {
	a.logResolution()
	return probe.New(a.tools.Ffprobe(), probe.WithLogger(a.logger))
}

func (a *appContext) cutter() *clip.Cutter {
	return clip.NewCutter(a.tools.Ffmpeg(), a.prober(),
		clip.WithLogger(a.logger),
		clip.WithCodecs(a.cfg.VideoCodec, a.cfg.AudioCodec),
	)
}

func (a *appContext) logResolution() {
	tools, err := a.tools.Resolve()
	if err != nil {
		a.logger.Warn("ffmpeg/ffprobe not resolved", "error", err)
		return
	}
	a.logger.Debug("resolved tools", "ffmpeg", tools.Ffmpeg, "ffprobe", tools.Ffprobe, "source", tools.Source)
}

// openHistory returns nil when history is disabled. Failing to open the
// database only disables history for this run.
func (a *appContext) openHistory() *sql.DB {
	if !a.cfg.History {
		return nil
	}
	database, err := db.Open(a.cfg.DBPath)
	if err != nil {
		a.logger.Warn("history disabled", "path", a.cfg.DBPath, "error", err)
		return nil
	}
	return database
}

// resolveVideo returns the absolute path of an existing regular file.
func resolveVideo(videoPath string) (string, error) {
	absPath, err := filepath.Abs(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("video file not found: %s", absPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a video file: %s", absPath)
	}
	return absPath, nil
}

// probeDuration returns the media duration, or an unknown duration and the
// reason when probing fails. Probing failures never stop a command.
func (a *appContext) probeDuration(ctx context.Context, path string) (segment.MediaDuration, error) {
	seconds, err := a.prober().Duration(ctx, path)
	if err != nil {
		return segment.MediaDuration{}, err
	}
	return segment.KnownDuration(seconds), nil
}
