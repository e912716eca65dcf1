/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/easytables/pkg/api"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the tables and start the REST API server",
		Long: `Load every table, then serve read-only lookups over HTTP until
interrupted. Requests under /api/v1 need the X-API-Key header.

Examples:
  easytables serve
  easytables serve --port 9000 --bind 0.0.0.0
  easytables serve --api-key mysecretkey`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			c, err := requireContainer()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("bind") {
				cfg.Bind, _ = cmd.Flags().GetString("bind")
			}
			if cmd.Flags().Changed("api-key") {
				cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
			}
			if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
				return errors.New("no API key configured (run 'easytables init' or pass --api-key)")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m, err := c.LoadTables(ctx, cfg)
			if err != nil {
				return err
			}

			cmd.Printf("🚀 Starting EasyTables server on %s:%d\n", cfg.Bind, cfg.Port)
			cmd.Printf("📊 Metrics available at: http://%s:%d/metrics\n", cfg.Bind, cfg.Port)

			starter := c.GetServerFactory().CreateServerStarter()
			return starter.StartServer(ctx, m, api.ServerConfig{
				Port:   cfg.Port,
				Bind:   cfg.Bind,
				APIKey: cfg.Security.APIKey,
			})
		},
	}

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("api-key", "", "API key for client authentication (default from config)")
	return serveCmd
}
