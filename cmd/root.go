package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var Version = "0.1.0"

// errInterrupted is returned by commands stopped by SIGINT/SIGTERM.
var errInterrupted = errors.New("interrupted")

var rootFlags struct {
	configPath string
	logLevel   string
	ffmpeg     string
	ffprobe    string
	binDir     string
	noHistory  bool
}

// app is set up by the root PersistentPreRunE before any command runs.
var app *appContext

var rootCmd = &cobra.Command{
	Use:   "segcut",
	Short: "Cut segments out of a video with ffmpeg",
	Long: `segcut cuts one or more time ranges out of a video file with ffmpeg.
Each range is written next to the input as <name>_segment_<n>.<ext>.

Features:
  - Fast stream-copy cutting with automatic re-encode fallback
  - Interactive segment editor with live length display
  - mpv preview of a range before cutting
  - History of past batches stored in SQLite`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAppContext(cmd)
		if err != nil {
			return err
		}
		app = a
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("segcut version %s\n", Version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.configPath, "config", "", "config file (default: ./segcut.yaml or ~/.config/segcut/config.yaml)")
	flags.StringVar(&rootFlags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	flags.StringVar(&rootFlags.ffmpeg, "ffmpeg", "", "path to the ffmpeg binary")
	flags.StringVar(&rootFlags.ffprobe, "ffprobe", "", "path to the ffprobe binary")
	flags.StringVar(&rootFlags.binDir, "bin-dir", "", "directory containing ffmpeg and ffprobe")
	flags.BoolVar(&rootFlags.noHistory, "no-history", false, "do not record batches in the history database")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context; an interrupted run exits with status 130.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	if errors.Is(err, errInterrupted) || ctx.Err() != nil {
		stop()
		os.Exit(130)
	}
	os.Exit(1)
}
