// Package bootstrap assembles the MCP servers from their backends: it
// creates the mcp-go server, registers the tool set for the product in
// question, and exposes the GitHub read-side as MCP resources.
package bootstrap

import (
	"github.com/mark3labs/mcp-go/server"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/workdesk/integration-assist/pkg/github"
	"github.com/workdesk/integration-assist/pkg/hr"
	"github.com/workdesk/integration-assist/pkg/service/tools"
)

// NewHRServer builds the MCP server exposing the HR database tools.
func NewHRServer(store *hr.Store, log zerolog.Logger, version string) (*server.MCPServer, error) {
	mcpServer := server.NewMCPServer(
		"hr-mcp-server",
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	deps := tools.ToolDependencies{
		HR:      store,
		Logger:  log,
		Version: version,
	}
	if err := tools.RegisterHRTools(mcpServer, deps); err != nil {
		return nil, pkgerrors.Wrap(err, "registering HR tools")
	}
	if err := tools.RegisterUtilityTools(mcpServer, deps); err != nil {
		return nil, pkgerrors.Wrap(err, "registering utility tools")
	}

	log.Info().Int("tools", len(tools.HRToolConfigs())+len(tools.UtilityToolConfigs())).
		Msg("HR MCP server ready")
	return mcpServer, nil
}

// NewGitHubServer builds the MCP server exposing the GitHub adapter tools
// and resources.
func NewGitHubServer(client *github.Client, log zerolog.Logger, version string) (*server.MCPServer, error) {
	mcpServer := server.NewMCPServer(
		"github-mcp-server",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
	)

	deps := tools.ToolDependencies{
		GitHub:  client,
		Logger:  log,
		Version: version,
	}
	if err := tools.RegisterGitHubTools(mcpServer, deps); err != nil {
		return nil, pkgerrors.Wrap(err, "registering GitHub tools")
	}
	if err := tools.RegisterUtilityTools(mcpServer, deps); err != nil {
		return nil, pkgerrors.Wrap(err, "registering utility tools")
	}
	registerGitHubResources(mcpServer, client, log)

	log.Info().Int("tools", len(tools.GitHubToolConfigs())+len(tools.UtilityToolConfigs())).
		Msg("GitHub MCP server ready")
	return mcpServer, nil
}
