package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/strata/internal/api"
)

var (
	servePort   int
	serveReport string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the latest report over HTTP",
	Long: `Start a read-only HTTP server exposing the most recent report.

Examples:
  # Serve the default report location
  strata serve

  # Serve a specific report on a specific port
  strata serve --report /data/out/report.json --port 9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", cfg.Port, "listen port")
	serveCmd.Flags().StringVar(&serveReport, "report", cfg.ReportPath, "report JSON file to serve")
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := api.NewServer(servePort, serveReport, slog.Default())
	return srv.Start()
}
