package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/user/segcut/pkg/timeutil"
)

var probeCmd = &cobra.Command{
	Use:   "probe <video-file>",
	Short: "Print the duration of a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}

		res, err := app.prober().Probe(cmd.Context(), absPath)
		if err != nil {
			return fmt.Errorf("Duration unknown: %w", err)
		}
		seconds, err := res.Duration()
		if err != nil {
			return fmt.Errorf("Duration unknown: could not determine video duration")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", filepath.Base(absPath))
		fmt.Fprintf(out, "  Duration: %s (%s seconds)\n", timeutil.FormatTimeDisplay(seconds), timeutil.FormatFFmpeg(seconds))
		if res.Format.FormatName != "" {
			fmt.Fprintf(out, "  Format:   %s\n", res.Format.FormatName)
		}
		for _, s := range res.Streams {
			fmt.Fprintf(out, "  Stream %d: %s %s\n", s.Index, s.CodecType, s.CodecName)
		}
		if !res.HasVideo() {
			fmt.Fprintln(out, "  (no video stream)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
