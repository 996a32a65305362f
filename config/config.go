// Package config reads the payroll server configuration from flags and the environment.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the payroll server settings. Environment variables win over flags.
type Config struct {
	RunAddress string `env:"RUN_ADDRESS"`
	ArchiveDB  string `env:"ARCHIVE_DB"`
	ReportDir  string `env:"REPORT_DIR"`
	LogLevel   string `env:"LOG_LEVEL"`

	// AutoRun pays everyone due today without an explicit request.
	AutoRun         bool          `env:"AUTO_RUN"`
	AutoRunInterval time.Duration `env:"AUTO_RUN_INTERVAL"`
}

// Parse reads command-line flags and environment variables.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envArchiveDB := cfg.ArchiveDB
	envReportDir := cfg.ReportDir
	envLogLevel := cfg.LogLevel
	envAutoRun := cfg.AutoRun
	envAutoRunInterval := cfg.AutoRunInterval

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.ArchiveDB, "db", "payroll.db", "SQLite path of the payroll run archive (:memory: allowed)")
	flag.StringVar(&cfg.ReportDir, "reports", "reports", "directory payroll reports are written to")
	flag.StringVar(&cfg.LogLevel, "log", "info", "log level (debug, info)")
	flag.BoolVar(&cfg.AutoRun, "auto", false, "run payroll automatically on paydays")
	flag.DurationVar(&cfg.AutoRunInterval, "auto-interval", time.Hour, "how often the automatic run checks for a payday")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envArchiveDB != "" {
		cfg.ArchiveDB = envArchiveDB
	}
	if envReportDir != "" {
		cfg.ReportDir = envReportDir
	}
	if envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}
	if envAutoRun {
		cfg.AutoRun = true
	}
	if envAutoRunInterval != 0 {
		cfg.AutoRunInterval = envAutoRunInterval
	}

	return cfg, nil
}
