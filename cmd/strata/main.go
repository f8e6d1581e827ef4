package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/strata/internal/config"
)

// cfg seeds every flag default, so env vars configure the defaults and
// flags override them.
var cfg = config.Load()

func main() {
	setupLogging(cfg.LogLevel)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Mine conversation exports for recurring patterns",
	Long: `strata digs through exported conversation archives and consolidates
what it finds into a single report: weighted taxonomy matches, extracted
condition/action and belief/action relations, problem to solution pairs,
activity trends per period, and frequently used phrases.`,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
