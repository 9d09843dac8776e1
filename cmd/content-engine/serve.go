// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve article generation over HTTP",
	Long: `Serve exposes the pipeline over HTTP:

  POST /api/v1/articles      request JSON in, article JSON out
  GET  /api/v1/articles/:id  archived article by id or slug
  POST /api/v1/humanize      {"text": "...", "style": "..."} in, {"text": "..."} out
  GET  /healthz              liveness

Articles are archived when archive.enabled is set. The server stops
gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, w, err := setup()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	var store server.Archive
	if cfg.Archive.Enabled {
		s, err := openArchive(cfg.Archive)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	return server.New(cfg.Server, w, store, logger).Run(cmd.Context())
}
