package main

import (
	"fmt"
	"net/http"

	"github.com/filmstash/filmstash/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API exposing the catalog operations.

Endpoints:
  GET  /api/v1/health      - health check
  GET  /api/v1/search?q=   - fuzzy search, returns file references
  POST /api/v1/files       - catalog an uploaded file
  POST /api/v1/delete      - fuzzy delete

Examples:
  filmstash serve                  # listen on the configured address
  filmstash serve --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			res, cleanup, err := buildResolver(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			if addr == "" {
				addr = cfg.API.Addr
			}

			server := api.NewServer(res, cfg, log)
			fmt.Printf("Starting filmstash API server on %s\n", addr)
			return http.ListenAndServe(addr, server.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (overrides config)")

	return cmd
}
