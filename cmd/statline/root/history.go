package root

import (
	"context"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"statline/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded totals after each toggle",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var since time.Time
			if days > 0 {
				since = time.Now().UTC().AddDate(0, 0, -days)
			}
			snaps, err := svc.Snapshots(ctx, since)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), snaps)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetTitle(ui.Heading(ui.IconChart, "Totals history"))
			tw.AppendHeader(statHeader("Recorded"))
			for _, s := range snaps {
				tw.AppendRow(appendTotals(table.Row{s.RecordedAt.Local().Format("2006-01-02 15:04")}, s.Totals))
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Look back this many days (0 for all)")

	return cmd
}
