package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"statline/internal/config"
	"statline/internal/server"
	"statline/internal/ui"
)

func newServeCmd() *cobra.Command {
	var tz string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API, health check and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("invalid --tz: %w", err)
			}

			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			handler, err := server.New(server.Config{
				Service:  a.svc,
				Metrics:  a.metrics,
				Logger:   a.log,
				Location: loc,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%s serving on http://%s (ctrl+c to stop)", ui.IconInfo, a.cfg.ListenAddr)))
			return server.Serve(ctx, a.cfg.ListenAddr, handler, a.log)
		},
	}

	cmd.Flags().String(config.KeyListenAddr, "", "listen address (default 127.0.0.1:8787)")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "IANA time zone for trend period boundaries")
	_ = settings.BindPFlag(config.KeyListenAddr, cmd.Flags().Lookup(config.KeyListenAddr))

	return cmd
}
