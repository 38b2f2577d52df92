package root

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"statline/internal/engine"
	"statline/internal/ui"
)

const dateLayout = "2006-01-02"

func newTrendCmd() *cobra.Command {
	var period string
	var from string
	var to string
	var tz string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Sum logged deltas per day, week or month",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePeriod(period)
			if err != nil {
				return err
			}
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("invalid --tz: %w", err)
			}
			opts := engine.BucketOptions{Location: loc}
			if opts.From, err = parseDate(from, loc); err != nil {
				return err
			}
			if opts.To, err = parseDate(to, loc); err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			series, err := svc.Series(ctx, p, opts)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), series.Buckets)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetTitle(ui.Heading(ui.IconChart, fmt.Sprintf("Trend by %s", p)))
			tw.AppendHeader(statHeader("Period"))
			for _, b := range series.Buckets {
				tw.AppendRow(appendDeltas(table.Row{bucketLabel(b)}, b.Totals))
			}
			if len(series.Buckets) == 0 {
				tw.AppendFooter(table.Row{ui.Muted.Render("no entries in range")})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", string(engine.PeriodDay), "Bucket size (day|week|month)")
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD); defaults to the oldest entry")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD); defaults to the newest entry")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "IANA time zone for period boundaries (e.g. Local, Europe/Berlin)")

	return cmd
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	// Year 1 collides with the zero time, which means "unset".
	if t.Year() < 2 {
		return time.Time{}, fmt.Errorf("invalid date %q (year must be 2 or later)", s)
	}
	return t, nil
}

func bucketLabel(b engine.StatTimeSeriesBucket) string {
	switch b.Period {
	case engine.PeriodWeek:
		return "week of " + b.PeriodStart.Format(dateLayout)
	case engine.PeriodMonth:
		return b.PeriodStart.Format("2006-01")
	default:
		return b.PeriodStart.Format(dateLayout)
	}
}
