package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docsift/mongo-mcp/pkg/mcpsrv"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create MCP server with all builtin tools
	// Configuration is loaded from environment variables:
	// - MONGODB_URI: connection string (default: mongodb://localhost:27017)
	// - MONGODB_DATABASE: database name (default: test)
	// - READ_ONLY: reject insert/update/delete tools (default: false)
	// - LOG_LEVEL: debug, info, warn, error (default: info)
	// - LOG_FILE: path to log file (default: stderr only)
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer()
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}

	// Run the server with stdio transport
	slog.Info("starting mongo MCP server on stdio")
	runErr := server.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Close(shutdownCtx); err != nil {
		slog.Warn("shutdown cleanup failed", "error", err)
	}

	if runErr != nil && runErr != context.Canceled {
		slog.Error("server error", "error", runErr)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
