package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"statline/internal/engine"
	"statline/internal/ui"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the scoring rules in effect",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rt, err := svc.Rules(ctx)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), rulesView(rt))
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetTitle(ui.Heading(ui.IconRules, "Scoring rules"))
			tw.AppendHeader(statHeader("Kind", "Name"))
			for _, name := range rt.CategoryNames() {
				v, _ := rt.Category(name)
				tw.AppendRow(appendTotals(table.Row{"category", name}, v))
			}
			tw.AppendSeparator()
			for _, name := range rt.TagNames() {
				v, _ := rt.Tag(name)
				tw.AppendRow(appendTotals(table.Row{"tag", name}, v))
			}
			tw.Render()
			return nil
		},
	}

	cmd.AddCommand(newRulesSetCmd(), newRulesUnsetCmd())
	return cmd
}

func newRulesSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <category|tag> <name> <stat=value>...",
		Short: "Store a rule override (affects future completions only)",
		Example: "  statline rules set tag heavy power=5 stamina=2\n" +
			"  statline rules set category reading intelligence=4 skills=1",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := engine.ParseRuleKind(args[0])
			if err != nil {
				return err
			}
			delta, err := parseAssignments(args[2:])
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.SetRule(ctx, kind, args[1], delta); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: %s\n", ui.Good.Render("Set"), kind, args[1], deltaLine(delta))
			return nil
		},
	}
}

func newRulesUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <category|tag> <name>",
		Short: "Remove a stored rule override",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := engine.ParseRuleKind(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			removed, err := svc.DeleteRule(ctx, kind, args[1])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no stored %s rule named %q", kind, args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render("Removed"), kind, args[1])
			return nil
		},
	}
}

// parseAssignments reads "stat=value" pairs into a vector. Unmentioned stats stay zero.
func parseAssignments(args []string) (engine.StatVector, error) {
	v := engine.Zero()
	for _, a := range args {
		key, val, ok := strings.Cut(a, "=")
		if !ok {
			return v, errors.New("expected stat=value, got " + strconv.Quote(a))
		}
		s, err := engine.ParseStat(key)
		if err != nil {
			return v, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return v, fmt.Errorf("%s: value must be an integer", s)
		}
		v = v.With(s, n)
	}
	return v, nil
}

type ruleTableView struct {
	Categories map[string]engine.StatVector `json:"categories"`
	Tags       map[string]engine.StatVector `json:"tags"`
}

func rulesView(rt engine.RuleTable) ruleTableView {
	out := ruleTableView{Categories: map[string]engine.StatVector{}, Tags: map[string]engine.StatVector{}}
	for _, n := range rt.CategoryNames() {
		out.Categories[n], _ = rt.Category(n)
	}
	for _, n := range rt.TagNames() {
		out.Tags[n], _ = rt.Tag(n)
	}
	return out
}
