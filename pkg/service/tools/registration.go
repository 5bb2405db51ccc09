package tools

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	pkgerrors "github.com/pkg/errors"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

// RegisterHRTools registers the HR query tools
func RegisterHRTools(mcpServer *server.MCPServer, deps ToolDependencies) error {
	if deps.HR == nil {
		return pkgerrors.New("HR store is required but not provided")
	}
	return registerAll(mcpServer, hrToolConfigs, deps)
}

// RegisterGitHubTools registers the GitHub adapter tools
func RegisterGitHubTools(mcpServer *server.MCPServer, deps ToolDependencies) error {
	if deps.GitHub == nil {
		return pkgerrors.New("GitHub client is required but not provided")
	}
	return registerAll(mcpServer, githubToolConfigs, deps)
}

// RegisterUtilityTools registers the diagnostic tools
func RegisterUtilityTools(mcpServer *server.MCPServer, deps ToolDependencies) error {
	return registerAll(mcpServer, utilityToolConfigs, deps)
}

func registerAll(mcpServer *server.MCPServer, configs []ToolConfig, deps ToolDependencies) error {
	for _, config := range configs {
		if err := registerTool(mcpServer, config, deps); err != nil {
			return pkgerrors.Wrapf(err, "failed to register tool %s", config.Name)
		}
	}
	return nil
}

func registerTool(mcpServer *server.MCPServer, config ToolConfig, deps ToolDependencies) error {
	if config.Handler == nil {
		return pkgerrors.Errorf("tool %s has no handler", config.Name)
	}

	tool := mcp.Tool{
		Name:        config.Name,
		Description: config.Description,
		InputSchema: BuildToolSchema(config),
	}

	mcpServer.AddTool(tool, makeHandler(config, deps))
	deps.Logger.Info().Str("name", config.Name).Str("category", string(config.Category)).Msg("Registered tool")
	return nil
}

// makeHandler wraps a ToolFunc with argument preflight, per-invocation
// logging, and the uniform result envelope. Domain failures are serialized
// into the envelope; the handler itself never returns an error.
func makeHandler(config ToolConfig, deps ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fn := config.Handler(deps)

	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if args == nil {
			args = map[string]any{}
		}

		for _, param := range config.RequiredParams {
			if _, exists := args[param]; !exists {
				result := createErrorResult(errors.New(errors.CodeMissingParameter, string(config.Category),
					"missing required parameter: "+param, nil))
				return &result, nil
			}
		}

		log := deps.Logger.With().
			Str("tool", config.Name).
			Str("invocation", uuid.New().String()).
			Logger()

		start := time.Now()
		data, err := fn(ctx, args)
		if err != nil {
			log.Error().Err(err).Dur("duration", time.Since(start)).Msg("Tool call failed")
			result := createErrorResult(err)
			return &result, nil
		}

		log.Info().Dur("duration", time.Since(start)).Msg("Tool call completed")
		result := createToolResult(data)
		return &result, nil
	}
}
