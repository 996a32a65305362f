/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and parse configuration
  2. Build the zap logger
  3. Open the SQLite run archive
  4. Create the payroll system and command engine
  5. Configure HTTP router and start the server
  6. Start the payroll scheduler when AUTO_RUN is set

CONFIGURATION (environment wins over flags):
  RUN_ADDRESS / -a        HTTP address (default: localhost:8080)
  ARCHIVE_DB  / -db       SQLite archive path (default: payroll.db)
                          Use ":memory:" for an in-memory archive
  REPORT_DIR  / -reports  Payroll report directory (default: reports)
  LOG_LEVEL   / -log      debug or info (default: info)
  AUTO_RUN    / -auto     Run payroll automatically on paydays (default: false)
  AUTO_RUN_INTERVAL / -auto-interval
                          How often the automatic run checks (default: 1h)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the payroll session and the archive
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration parsing
  - store/sqlite/sqlite.go: Run archive
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/command"
	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

func main() {
	// A missing .env is fine; the environment and flags still apply.
	_ = godotenv.Load()

	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	archive, err := sqlite.New(cfg.ArchiveDB)
	if err != nil {
		sugar.Fatalw("archive initialization error", "error", err.Error())
	}
	defer archive.Close()

	engine := command.NewEngine(payroll.NewSystem(),
		command.WithLogger(logger),
		command.WithArchive(archive),
	)
	defer engine.Close()

	handler := api.NewHandler(engine, archive, cfg.ReportDir, logger)
	router := api.NewRouter(handler)

	scheduler := api.NewPayrollScheduler(handler, cfg.AutoRunInterval)
	scheduler.Enabled = cfg.AutoRun
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting payroll server", "addr", cfg.RunAddress, "archive", cfg.ArchiveDB)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Errorw("application terminated with error", "error", err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
