package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rpggio/itemboard/internal/config"
	"github.com/rpggio/itemboard/internal/domain/item"
	"github.com/rpggio/itemboard/internal/logfile"
	"github.com/rpggio/itemboard/internal/mcp"
	"github.com/rpggio/itemboard/internal/store"
	"github.com/rpggio/itemboard/internal/transport"
)

var version = "dev"

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred closes happen before os.Exit.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	logWriter := io.Writer(os.Stdout)
	if cfg.Log.Path != "" {
		fileWriter, err := logfile.Open(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = io.MultiWriter(os.Stdout, fileWriter)
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if cfg.DB.Driver == config.DriverSQLite {
		if err := ensureDBDir(cfg.DB.Path); err != nil {
			logger.Error("failed to prepare database path", "error", err)
			return 1
		}
	}

	// Open only validates the DSN; connectivity is checked by bootstrap.
	db, err := store.Open(cfg.DB)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return 1
	}
	defer db.Close()

	itemSvc := item.NewService(store.NewItemRepository(db), logger)

	var mcpHandler http.Handler
	if cfg.MCP.Enabled {
		mcpHandler = mcp.NewHTTPHandler(mcp.NewServer(mcp.Config{
			Items:   itemSvc,
			Logger:  logger,
			Version: version,
		}))
	}

	router := transport.NewServer(transport.Config{
		Items:  itemSvc,
		Logger: logger,
		MCP:    mcpHandler,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen", "addr", addr, "error", err)
		return 1
	}
	logger.Info("server listening", "addr", ln.Addr().String(), "driver", cfg.DB.Driver, "mcp", cfg.MCP.Enabled)

	httpServer := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	// Bootstrap failure leaves the server up; item requests fail until the
	// store becomes usable.
	go bootstrap(logger, itemSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, logger, httpServer, ln); err != nil {
		logger.Error("server error", "error", err)
		return 1
	}
	return 0
}

// serve runs server on ln until ctx is done, then shuts it down gracefully.
// It returns the listener error if serving stops for any other reason.
func serve(ctx context.Context, logger *slog.Logger, server *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func bootstrap(logger *slog.Logger, items *item.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeded, err := items.Bootstrap(ctx)
	if err != nil {
		logger.Error("database initialization error", "error", err)
		return
	}
	logger.Info("database initialized", "seeded", seeded)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
