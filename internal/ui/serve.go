package ui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brendondgr/Mango-Apps/internal/logger"
	"github.com/brendondgr/Mango-Apps/internal/web"
)

func (a *App) serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar JSON API",
		Long: `Serve the schedule and calendar API over HTTP, including PDF printing
and iCalendar export. Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen == "" {
				listen = a.config.Server.Listen
			}
			if err := a.ensureService(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := web.NewServer(a.svc,
				web.WithLogger(logger.Logger),
				web.WithPrintHours(a.config.Export.StartHour, a.config.Export.EndHour),
			)
			fmt.Fprintf(a.out, "Listening on http://%s\n", listen)
			return srv.ListenAndServe(ctx, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (default from config)")
	return cmd
}
