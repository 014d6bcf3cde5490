package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bantamhq/studiodash/internal/gateway"
	"github.com/bantamhq/studiodash/internal/logging"
)

func newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the same-origin gateway",
		Long: `Start an HTTP gateway that forwards the dashboard API routes to the backend,
so a browser page served from the same origin can reach it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Gateway.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Gateway.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := setupLogging(cfg, "stderr"); err != nil {
				return err
			}

			addr := cfg.GatewayAddr()
			logging.L().Info("starting gateway", zap.String("address", addr), zapBackend(cfg))

			srv := gateway.NewServer(newClient(cfg), logging.Named("gateway"))
			if err := srv.Run(cmd.Context(), addr); err != nil {
				return fmt.Errorf("gateway: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")

	return cmd
}
