package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/segcut/mpv"
	"github.com/user/segcut/pkg/timeutil"
)

var previewLoop bool

var previewCmd = &cobra.Command{
	Use:   "preview <video-file> <start> <end>",
	Short: "Play a range of a video in mpv",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		start, err := timeutil.ParseStrict(args[1])
		if err != nil {
			return fmt.Errorf("invalid start: %w", err)
		}
		end, err := timeutil.ParseStrict(args[2])
		if err != nil {
			return fmt.Errorf("invalid end: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Previewing %s - %s\n", timeutil.FormatTimeInput(start), timeutil.FormatTimeInput(end))
		return mpv.Preview(cmd.Context(), absPath, start, end, previewLoop)
	},
}

func init() {
	previewCmd.Flags().BoolVar(&previewLoop, "loop", false, "repeat the range until mpv is closed")
	rootCmd.AddCommand(previewCmd)
}
