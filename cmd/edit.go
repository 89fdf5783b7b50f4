package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/segcut/mpv"
	"github.com/user/segcut/segment"
	"github.com/user/segcut/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <video-file>",
	Short: "Build a list of segments interactively, then cut them",
	Long: `Open an interactive editor for the segments of a video. Segments can be
added, edited, removed and previewed in mpv; choosing "Cut video" validates
them and runs the batch with a progress view.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Detecting duration...")
		duration, probeErr := app.probeDuration(cmd.Context(), absPath)
		if probeErr != nil {
			app.logger.Warn("duration unknown", "error", probeErr)
		}

		session := segment.NewSession(absPath, duration)
		preview := func(seg segment.Segment) error {
			return mpv.Preview(cmd.Context(), absPath, seg.StartSeconds(), seg.EndSeconds(), true)
		}

		segments, err := tui.NewEditor(session, nil, cmd.OutOrStdout(), preview).Run()
		if err != nil {
			return err
		}
		if segments == nil {
			return nil
		}
		return runBatch(cmd.Context(), cmd.OutOrStdout(), absPath, duration, segments, true)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
