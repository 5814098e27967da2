package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/sitepress"
	"github.com/eringen/sitepress/logger"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the content and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sitepress.LoadConfig(root.configFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			log, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			app, err := sitepress.New(cfg, log)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.Start(ctx); err != nil {
				log.Error("server stopped", zap.Error(err))
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides config (e.g. :8080)")
	return cmd
}
