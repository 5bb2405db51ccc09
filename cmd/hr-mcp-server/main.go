// Command hr-mcp-server exposes read-only HR database queries as MCP tools
// over stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/workdesk/integration-assist/pkg/hr"
	"github.com/workdesk/integration-assist/pkg/logger"
	"github.com/workdesk/integration-assist/pkg/service/bootstrap"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type flagConfig struct {
	configFile *string
	logLevel   *string
	version    *bool
}

func parseFlags() *flagConfig {
	flags := &flagConfig{
		configFile: flag.String("config", "", "Path to an env-format configuration file"),
		logLevel:   flag.String("log-level", "info", "Log level (debug, info, warn, error)"),
		version:    flag.Bool("version", false, "Show version information"),
	}
	flag.Parse()
	return flags
}

func main() {
	flags := parseFlags()
	if *flags.version {
		fmt.Printf("hr-mcp-server %s (commit: %s)\n", Version, GitCommit)
		return
	}

	logger.SetLevel(*flags.logLevel)
	log := logger.With("hr-mcp-server")

	if err := loadEnvFile(*flags.configFile); err != nil {
		log.Error().Err(err).Msg("Failed to load configuration file")
		os.Exit(1)
	}

	cfg, err := hr.LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := hr.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to the HR database")
		os.Exit(1)
	}
	defer store.Close()

	mcpServer, err := bootstrap.NewHRServer(store, log, Version)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build server")
		os.Exit(1)
	}

	log.Info().
		Str("version", Version).
		Str("database", cfg.Database).
		Int("max_rows", cfg.MaxRows).
		Msg("Starting HR MCP server on stdio")

	if err := runStdio(ctx, mcpServer); err != nil {
		log.Error().Err(err).Msg("Server failed")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

// loadEnvFile loads environment variables from an explicit config file, or
// from .env when one is present next to the binary.
func loadEnvFile(configFile string) error {
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		godotenv.Load(".env")
	}
	return nil
}

// runStdio serves MCP over stdin/stdout until the stream closes or the
// context is cancelled by a shutdown signal.
func runStdio(ctx context.Context, mcpServer *server.MCPServer) error {
	stdioServer := server.NewStdioServer(mcpServer)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serverErr:
		if err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}
}
