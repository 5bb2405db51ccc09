// Command github-mcp-server exposes a thin slice of the GitHub REST API as
// MCP tools and resources over stdio.
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

	"github.com/workdesk/integration-assist/pkg/github"
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
		fmt.Printf("github-mcp-server %s (commit: %s)\n", Version, GitCommit)
		return
	}

	logger.SetLevel(*flags.logLevel)
	log := logger.With("github-mcp-server")

	if err := loadEnvFile(*flags.configFile); err != nil {
		log.Error().Err(err).Msg("Failed to load configuration file")
		os.Exit(1)
	}

	cfg, err := github.LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	client := github.NewClient(cfg, log)

	mcpServer, err := bootstrap.NewGitHubServer(client, log, Version)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build server")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("version", Version).
		Str("api", cfg.BaseURL).
		Bool("authenticated", client.Authenticated()).
		Msg("Starting GitHub MCP server on stdio")

	if err := runStdio(ctx, mcpServer); err != nil {
		log.Error().Err(err).Msg("Server failed")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

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
