package root

import (
	"context"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"statline/internal/engine"
	"statline/internal/storage"
	"statline/internal/ui"
)

func newListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var tasks []storage.Task
			if status != "" {
				st, err := engine.ParseTaskStatus(status)
				if err != nil {
					return err
				}
				tasks, err = svc.TaskRepo().ListByStatus(ctx, string(st))
				if err != nil {
					return err
				}
			} else {
				tasks, err = svc.ListTasks(ctx)
				if err != nil {
					return err
				}
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), tasks)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetTitle(ui.Heading(ui.IconTask, "Tasks"))
			tw.AppendHeader(table.Row{"ID", "Title", "Category", "Tags", "Status"})
			for _, t := range tasks {
				tw.AppendRow(table.Row{t.ID, t.Title, t.Category, strings.Join(t.Tags, ", "), ui.StatusText(t.Status)})
			}
			if len(tasks) == 0 {
				tw.AppendFooter(table.Row{"", ui.Muted.Render("no tasks yet; try `statline add`")})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (pending|in_progress|completed|skipped)")

	return cmd
}
