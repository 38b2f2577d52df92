package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"statline/internal/engine"
	"statline/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show current stat totals",
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
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), st.Totals)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Stats"))
			for _, s := range engine.AllStats {
				v := st.Totals.Get(s)
				fmt.Fprintf(out, "%-18s %s %3d\n", ui.StatLabel(string(s)), ui.StatBar(v, 20), v)
			}
			fmt.Fprintln(out, "")

			if last, ok := st.Log.Newest(); ok {
				fmt.Fprintf(out, "%s %s %s (%s)\n", ui.Key.Render("Last:"), last.TaskName, ui.StatusText(string(last.Status)), last.Timestamp.Local().Format("Jan 02 15:04"))
			} else {
				fmt.Fprintln(out, ui.Muted.Render("No progress recorded yet."))
			}
			fmt.Fprintln(out, ui.LabelValue("Log", fmt.Sprintf("%d/%d entries", len(st.Log), engine.MaxLogEntries)))
			return nil
		},
	}

	return cmd
}
