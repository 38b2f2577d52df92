package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"statline/internal/engine"
	"statline/internal/ui"
)

func taskIDArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}

func parseTaskID(arg string) int64 {
	id, _ := strconv.ParseInt(arg, 10, 64)
	return id
}

type toggleFunc func(svc *engine.Service, ctx context.Context, id int64) (*engine.ToggleResult, error)

func newDoCmd() *cobra.Command {
	return newToggleLikeCmd("do <id>", "Complete a task and apply its stat delta", (*engine.Service).CompleteTask)
}

func newUndoCmd() *cobra.Command {
	return newToggleLikeCmd("undo <id>", "Un-complete a task and roll back the delta it applied", (*engine.Service).UncompleteTask)
}

func newToggleCmd() *cobra.Command {
	return newToggleLikeCmd("toggle <id>", "Flip a task between completed and pending", (*engine.Service).ToggleTask)
}

func newToggleLikeCmd(use, short string, run toggleFunc) *cobra.Command {
	cmd := &cobra.Command{
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

			res, err := run(svc, ctx, parseTaskID(args[0]))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), res)
			}
			printToggle(cmd, res)
			return nil
		},
	}
	return cmd
}

func printToggle(cmd *cobra.Command, res *engine.ToggleResult) {
	out := cmd.OutOrStdout()
	if res.Completed {
		fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Completed #%d %s", ui.IconDone, res.TaskID, res.Title)))
	} else {
		fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s Undid #%d %s", ui.IconUndo, res.TaskID, res.Title)))
	}
	fmt.Fprintf(out, "%s %s\n", ui.Key.Render("Applied:"), deltaLine(res.Applied))
	if len(res.Saturated) > 0 {
		names := make([]string, 0, len(res.Saturated))
		for _, s := range res.Saturated {
			names = append(names, ui.StatLabel(string(s)))
		}
		fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s capped at %d-%d: %s", ui.IconWarn, engine.StatMin, engine.StatMax, strings.Join(names, ", "))))
	}
}
