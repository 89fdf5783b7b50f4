package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/user/segcut/db"
	"github.com/user/segcut/pkg/timeutil"
)

var historyFlags struct {
	limit int
	cuts  bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent cut batches",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(app.cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer database.Close()

		batches, err := db.SelectRecentBatches(database, historyFlags.limit)
		if err != nil {
			return err
		}
		if len(batches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No batches recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tINPUT\tDURATION\tSEGMENTS\tSTATUS")
		for _, b := range batches {
			duration := "unknown"
			if b.Duration != nil {
				duration = timeutil.FormatTimeDisplay(*b.Duration)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
				b.ID, humanize.Time(b.StartedAt), filepath.Base(b.InputPath), duration, b.SegmentCount, b.Status)

			if !historyFlags.cuts {
				continue
			}
			cuts, err := db.SelectCutsByBatch(database, b.ID)
			if err != nil {
				return err
			}
			for _, c := range cuts {
				detail := c.Error
				if c.Status == "succeeded" {
					detail = fmt.Sprintf("%s %s %s", filepath.Base(c.OutputPath), c.Mode, humanize.Bytes(uint64(c.Filesize)))
				}
				fmt.Fprintf(w, "\t  #%d\t%s-%s\t\t\t%s %s\n", c.SegmentNumber,
					timeutil.FormatTimeInput(c.StartSeconds), timeutil.FormatTimeInput(c.EndSeconds), c.Status, detail)
			}
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 10, "number of batches to show")
	historyCmd.Flags().BoolVar(&historyFlags.cuts, "cuts", false, "show the cuts of each batch")
	rootCmd.AddCommand(historyCmd)
}
