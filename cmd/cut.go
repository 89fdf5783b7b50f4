package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/segcut/pkg/timeutil"
	"github.com/user/segcut/segment"
)

var cutFlags struct {
	segments   []string
	fromFile   string
	tui        bool
	videoCodec string
	audioCodec string
}

var cutCmd = &cobra.Command{
	Use:   "cut <video-file>",
	Short: "Cut one or more segments out of a video",
	Long: `Cut one or more time ranges out of a video. Each range is given as START-END
with times as H:MM:SS, MM:SS or seconds, e.g.:

  segcut cut match.mp4 -s 0:01:00-0:02:30 -s 45:00-47:15

Segments are validated against the video duration, then cut in order. The
first failure stops the batch; segments already written are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("video-codec") {
			app.cfg.VideoCodec = cutFlags.videoCodec
		}
		if cmd.Flags().Changed("audio-codec") {
			app.cfg.AudioCodec = cutFlags.audioCodec
		}

		ranges := cutFlags.segments
		if cutFlags.fromFile != "" {
			fileRanges, err := readRangeFile(cutFlags.fromFile)
			if err != nil {
				return err
			}
			ranges = append(ranges, fileRanges...)
		}
		if len(ranges) == 0 {
			return fmt.Errorf("please add at least one segment to cut (use --segment START-END)")
		}

		duration, probeErr := app.probeDuration(cmd.Context(), absPath)
		if probeErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Duration unknown: %v\n", probeErr)
		}

		session := segment.NewSession(absPath, duration)
		for _, r := range ranges {
			start, end, err := parseRange(r)
			if err != nil {
				return err
			}
			session.Add(start, end)
		}

		segments, err := session.Validate()
		if err != nil {
			return err
		}
		return runBatch(cmd.Context(), cmd.OutOrStdout(), absPath, duration, segments, cutFlags.tui)
	},
}

// parseRange splits "START-END" (or "START END") and checks both times.
func parseRange(text string) (string, string, error) {
	text = strings.TrimSpace(text)
	start, end, ok := strings.Cut(text, "-")
	if !ok {
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return "", "", fmt.Errorf("invalid segment %q: expected START-END", text)
		}
		start, end = fields[0], fields[1]
	}
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)

	for _, t := range []string{start, end} {
		if _, err := timeutil.ParseStrict(t); err != nil {
			return "", "", fmt.Errorf("invalid segment %q: %w", text, err)
		}
	}
	return start, end, nil
}

// readRangeFile reads one range per line. Blank lines and lines starting
// with # are skipped.
func readRangeFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open segment file: %w", err)
	}
	defer f.Close()

	var ranges []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ranges = append(ranges, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read segment file: %w", err)
	}
	return ranges, nil
}

func init() {
	cutCmd.Flags().StringArrayVarP(&cutFlags.segments, "segment", "s", nil, "segment to cut as START-END (repeatable)")
	cutCmd.Flags().StringVar(&cutFlags.fromFile, "from-file", "", "read segments from a file, one START-END per line")
	cutCmd.Flags().BoolVar(&cutFlags.tui, "tui", false, "show the interactive progress view")
	cutCmd.Flags().StringVar(&cutFlags.videoCodec, "video-codec", "", "video codec for the re-encode fallback (default libx264)")
	cutCmd.Flags().StringVar(&cutFlags.audioCodec, "audio-codec", "", "audio codec for the re-encode fallback (default aac)")

	rootCmd.AddCommand(cutCmd)
}
