package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"statline/internal/engine"
	"statline/internal/ui"
)

func newStartCmd() *cobra.Command {
	return newSetStatusCmd("start <id>", "Mark a task in progress", engine.TaskInProgress)
}

func newSkipCmd() *cobra.Command {
	return newSetStatusCmd("skip <id>", "Mark a task skipped", engine.TaskSkipped)
}

func newSetStatusCmd(use, short string, status engine.TaskStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  taskIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := parseTaskID(args[0])
			if err := svc.SetTaskStatus(ctx, id, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d is now %s\n", id, ui.StatusText(string(status)))
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task that is not completed",
		Args:    taskIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := parseTaskID(args[0])
			if err := svc.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Deleted #%d", id)))
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	var category string
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's category and tags",
		Long:  "Change a task's category and tags. A completed task keeps the delta it applied; undo rolls back that delta, not a rescore.",
		Args:  taskIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := parseTaskID(args[0])
			t, err := svc.GetTask(ctx, id)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("category") {
				category = t.Category
			}
			newTags := t.Tags
			if cmd.Flags().Changed("tag") {
				newTags = engine.ParseTags(tags...)
			}
			if err := svc.UpdateTaskClassification(ctx, id, category, newTags); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("Updated #%d", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "New tags (replaces the existing ones)")

	return cmd
}
