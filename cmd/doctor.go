package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/segcut/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that ffmpeg and ffprobe can be found, report where they were found, and check for mpv.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking dependencies...")
		fmt.Fprintln(out)

		allGood := true

		if tools, err := app.tools.Resolve(); err != nil {
			fmt.Fprintln(out, "✗ ffmpeg/ffprobe: NOT FOUND")
			fmt.Fprintf(out, "  %s\n  Install from: %s\n", deps.FfmpegInstallHint, deps.FfmpegInstallURL)
			allGood = false
		} else {
			fmt.Fprintf(out, "✓ ffmpeg: %s (%s)\n", tools.Ffmpeg, tools.Source)
			fmt.Fprintf(out, "✓ ffprobe: %s (%s)\n", tools.Ffprobe, tools.Source)
		}

		if err := deps.CheckMpv(); err != nil {
			fmt.Fprintln(out, "✗ mpv: NOT FOUND (optional, used by preview)")
			fmt.Fprintf(out, "  Install from: %s\n", deps.MpvInstallURL)
		} else {
			fmt.Fprintln(out, "✓ mpv: OK")
		}

		fmt.Fprintln(out)
		if app.configPath != "" {
			fmt.Fprintf(out, "Config: %s\n", app.configPath)
		}
		if app.cfg.History {
			fmt.Fprintf(out, "History: %s\n", app.cfg.DBPath)
		} else {
			fmt.Fprintln(out, "History: disabled")
		}

		if !allGood {
			return fmt.Errorf("ffmpeg and ffprobe are required to cut videos")
		}
		fmt.Fprintln(out, "All required dependencies are installed!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
