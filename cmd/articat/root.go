package main

import (
	"net/http"
	"os"
	"time"

	"github.com/articat/articat/pkg/catalog"
	"github.com/articat/articat/pkg/logging"
	"github.com/articat/articat/pkg/selection"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootFlags holds the persistent flags shared by all subcommands.
type rootFlags struct {
	apiBase         string
	pageSize        int
	timeout         time.Duration
	requestInterval time.Duration
	redisAddr       string
	cacheTTL        time.Duration
	maxPages        int
	logLevel        string
	logPretty       bool
	logFile         string
	metricsAddr     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "articat",
		Short: "Browse a public artwork catalog from the terminal",
		Long: `Articat is a terminal browser for a paginated artwork catalog API.

It shows artworks in a table, one page at a time, and lets you select rows
one by one or collect an arbitrary number of rows spanning multiple pages.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.apiBase, "api-base", getEnv("ARTICAT_API_BASE", catalog.DefaultConfig().BaseURL), "Catalog API base URL")
	pf.IntVar(&flags.pageSize, "page-size", 12, "Records requested per page")
	pf.DurationVar(&flags.timeout, "timeout", 30*time.Second, "HTTP request timeout")
	pf.DurationVar(&flags.requestInterval, "request-interval", 200*time.Millisecond, "Minimum spacing between API requests")
	pf.StringVar(&flags.redisAddr, "redis", getEnv("ARTICAT_REDIS", ""), "Redis address for the page cache (empty disables caching)")
	pf.DurationVar(&flags.cacheTTL, "cache-ttl", time.Minute, "Page cache TTL")
	pf.IntVar(&flags.maxPages, "max-pages", selection.DefaultConfig().MaxPages, "Maximum pages fetched per bulk selection")
	pf.StringVar(&flags.logLevel, "log-level", getEnv("ARTICAT_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	pf.BoolVar(&flags.logPretty, "pretty", false, "Human-readable log output")
	pf.StringVar(&flags.logFile, "log-file", getEnv("ARTICAT_LOG_FILE", ""), "Write logs to a file instead of stderr")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", getEnv("ARTICAT_METRICS_ADDR", ""), "Serve Prometheus metrics on this address (empty disables)")

	cmd.AddCommand(newBrowseCmd(flags))
	cmd.AddCommand(newPageCmd(flags))

	return cmd
}

// setupLogging configures the global logger from the root flags. It returns
// the logger and a close function for a log file, if one was opened.
func setupLogging(flags *rootFlags) (zerolog.Logger, func(), error) {
	cfg := logging.Config{
		Level:  logging.LogLevel(flags.logLevel),
		Pretty: flags.logPretty,
		Output: os.Stderr,
	}

	cleanup := func() {}
	if flags.logFile != "" {
		f, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), cleanup, err
		}
		cfg.Output = f
		cfg.Pretty = false
		cleanup = func() { _ = f.Close() }
	}

	return logging.Setup(cfg), cleanup, nil
}

// buildClient wires the catalog client from the root flags. Redis is
// optional: an unreachable cache is logged and skipped, never fatal.
func buildClient(cmd *cobra.Command, flags *rootFlags, logger zerolog.Logger) (*catalog.Client, error) {
	cfg := catalog.DefaultConfig()
	cfg.BaseURL = flags.apiBase
	cfg.PageSize = flags.pageSize
	cfg.Timeout = flags.timeout
	cfg.MinRequestInterval = flags.requestInterval
	cfg.CacheTTL = flags.cacheTTL

	if flags.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: flags.redisAddr})
		if err := rdb.Ping(cmd.Context()).Err(); err != nil {
			logger.Warn().
				Err(err).
				Str("addr", flags.redisAddr).
				Msg("Redis unreachable, continuing without page cache")
			_ = rdb.Close()
		} else {
			cfg.Redis = rdb
		}
	}

	return catalog.New(cfg)
}

// serveMetrics exposes the Prometheus registry over HTTP when a metrics
// address is configured.
func serveMetrics(addr string, logger zerolog.Logger) {
	if addr == "" {
		return
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Str("addr", addr).Msg("Serving metrics")
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error().Err(err).Msg("Metrics server stopped")
		}
	}()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
