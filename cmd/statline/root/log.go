package root

import (
	"context"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"statline/internal/engine"
	"statline/internal/ui"
)

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the progress log, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.State(ctx)
			if err != nil {
				return err
			}
			entries := st.Log
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), entries)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetTitle(ui.Heading(ui.IconScroll, "Progress log"))
			tw.AppendHeader(statHeader("When", "Task", "Status"))
			for _, e := range entries {
				row := table.Row{e.Timestamp.Local().Format("2006-01-02 15:04"), e.TaskName, ui.StatusText(string(e.Status))}
				tw.AppendRow(appendDeltas(row, e.StatDelta))
			}
			tw.AppendFooter(appendDeltas(table.Row{"", "net", ""}, st.Log.NetDelta()))
			tw.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n entries")

	return cmd
}

// statHeader appends one column per stat after the leading columns.
func statHeader(lead ...any) table.Row {
	row := table.Row(lead)
	for _, s := range engine.AllStats {
		row = append(row, ui.StatLabel(string(s)))
	}
	return row
}

func appendDeltas(row table.Row, v engine.StatVector) table.Row {
	for _, s := range engine.AllStats {
		row = append(row, ui.Delta(v.Get(s)))
	}
	return row
}

func appendTotals(row table.Row, v engine.StatVector) table.Row {
	for _, s := range engine.AllStats {
		row = append(row, v.Get(s))
	}
	return row
}
