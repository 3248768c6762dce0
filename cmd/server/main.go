package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/spacesedan/redditqa/config"
	"github.com/spacesedan/redditqa/internal/auth"
	"github.com/spacesedan/redditqa/internal/clients"
	"github.com/spacesedan/redditqa/internal/logging"
	"github.com/spacesedan/redditqa/internal/monitoring"
	"github.com/spacesedan/redditqa/internal/processing"
	"github.com/spacesedan/redditqa/internal/tools"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

func main() {
	transport := flag.String("transport", "stdio", "Transport type: stdio or http")
	envFlag := flag.String("env", "", "Environment name used to pick config/envs/.env.<env> (default $APP_ENV or dev)")
	flag.Parse()

	env := *envFlag
	if env == "" {
		env = os.Getenv("APP_ENV")
	}
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	cfg := config.FromEnv()
	logging.InitLogger(cfg.LogLevel)

	fetcher := processing.NewFetcher(clients.NewRedditClient(cfg.Reddit))
	writer := processing.NewQAWriter(clients.NewNotionClient(cfg.Notion, nil))
	mcpServer := tools.NewServer(fetcher, writer)

	var err error
	switch *transport {
	case "http":
		err = serveHTTP(mcpServer, cfg)
	case "stdio":
		slog.Info("[Main] Starting stdio server (no auth required)",
			slog.String("tools", strings.Join(tools.TOOL_NAMES, ", ")))
		err = server.ServeStdio(mcpServer)
	default:
		err = fmt.Errorf("unknown transport %q (want stdio or http)", *transport)
	}

	if err != nil {
		slog.Error("[Main] Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func serveHTTP(mcpServer *server.MCPServer, cfg config.Config) error {
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           tools.NewHTTPHandler(mcpServer, cfg.Server, monitoring.HealthHandler(cfg)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Main] Starting HTTP server",
			slog.String("addr", addr),
			slog.String("endpoint", tools.MCP_ENDPOINT),
			slog.String("scopes", strings.Join(auth.REQUIRED_SCOPES, ", ")),
			slog.String("tools", strings.Join(tools.TOOL_NAMES, ", ")))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("[Main] Shutting down HTTP server gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
