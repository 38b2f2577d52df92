package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"statline/internal/engine"
	"statline/internal/ui"
)

func newAddCmd() *cobra.Command {
	var category string
	var tags []string
	var notes string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				Title:    strings.Join(args, " "),
				Category: category,
				Tags:     engine.ParseTags(tags...),
				Notes:    notes,
			})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Added task #%d", ui.IconPlus, res.TaskID)))
			if res.Preview.IsZero() {
				fmt.Fprintln(out, ui.Muted.Render("Completing it will not change any stat under the current rules."))
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", ui.Key.Render("On completion:"), deltaLine(res.Preview))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (e.g. fitness, learning, planning, recovery, execution)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag (repeatable or comma-separated)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

// deltaLine renders the non-zero dimensions of v, or a muted "no change".
func deltaLine(v engine.StatVector) string {
	var parts []string
	for _, s := range engine.AllStats {
		if n := v.Get(s); n != 0 {
			parts = append(parts, fmt.Sprintf("%s %s", ui.StatLabel(string(s)), ui.Delta(n)))
		}
	}
	if len(parts) == 0 {
		return ui.Muted.Render("no change")
	}
	return strings.Join(parts, "  ")
}
