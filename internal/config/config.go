package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
// The same structure backs both binaries: the view service ignores
// DatabaseURI, the store service ignores OrderStoreAddress.
type Config struct {
	RunAddress           string
	OrderStoreAddress    string
	DatabaseURI          string
	PageSize             int
	StatsRefreshInterval time.Duration
	RequestTimeout       time.Duration
	ListRetries          int
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress           = ":8080"
	defaultOrderStoreAddress    = "http://localhost:8000"
	defaultPageSize             = 9
	defaultStatsRefreshInterval = time.Minute
	defaultRequestTimeout       = 10 * time.Second
	defaultListRetries          = 2
	defaultShutdownTimeout      = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		OrderStoreAddress:    getString(lookup, "ORDER_STORE_ADDRESS", defaultOrderStoreAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		PageSize:             getInt(lookup, "PAGE_SIZE", defaultPageSize),
		StatsRefreshInterval: getDuration(lookup, "STATS_REFRESH_INTERVAL", defaultStatsRefreshInterval),
		RequestTimeout:       getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		ListRetries:          getInt(lookup, "LIST_RETRIES", defaultListRetries),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("orderdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		statsIntervalStr   = cfg.StatsRefreshInterval.String()
		requestTimeoutStr  = cfg.RequestTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.OrderStoreAddress, "r", cfg.OrderStoreAddress, "Order store base URL")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN (order store only)")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Initial list page size")
	fs.StringVar(&statsIntervalStr, "stats-interval", statsIntervalStr, "Interval between stats refreshes")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Outbound request timeout")
	fs.IntVar(&cfg.ListRetries, "list-retries", cfg.ListRetries, "Extra attempts for idempotent reads")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StatsRefreshInterval, err = time.ParseDuration(statsIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid stats interval: %w", err)
	}

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}

	if cfg.ListRetries < 0 {
		cfg.ListRetries = 0
	}

	if cfg.StatsRefreshInterval <= 0 {
		cfg.StatsRefreshInterval = defaultStatsRefreshInterval
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.OrderStoreAddress == "" {
		return nil, fmt.Errorf("order store address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
