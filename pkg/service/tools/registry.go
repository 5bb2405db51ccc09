// Package tools maps named MCP tools onto the HR and GitHub backends. Every
// tool call is validated against its configuration before any backend is
// contacted, and every outcome — success or failure — is returned as a
// structured ToolResult envelope rather than a raised error.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
	"github.com/workdesk/integration-assist/pkg/github"
	"github.com/workdesk/integration-assist/pkg/hr"
)

// ToolCategory defines the backend a tool dispatches to
type ToolCategory string

const (
	CategoryHR      ToolCategory = "hr"
	CategoryGitHub  ToolCategory = "github"
	CategoryUtility ToolCategory = "utility"
)

// ToolFunc executes one validated tool call against a backend.
type ToolFunc func(ctx context.Context, args map[string]any) (map[string]any, error)

// ToolConfig defines the configuration for a tool
type ToolConfig struct {
	Name        string
	Description string
	Category    ToolCategory

	// Input schema parameters. Types default to "string" unless listed
	// in ParamTypes.
	RequiredParams []string
	OptionalParams []string
	ParamTypes     map[string]string

	// Handler constructor bound at registration time
	Handler func(deps ToolDependencies) ToolFunc
}

// ToolDependencies holds the backends a tool might need
type ToolDependencies struct {
	HR      *hr.Store
	GitHub  *github.Client
	Logger  zerolog.Logger
	Version string
}

// ToolResult is the uniform response envelope for every tool call
type ToolResult struct {
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	ErrorCode string         `json:"error_code,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// createToolResult creates a standardized success result
func createToolResult(data map[string]any) mcp.CallToolResult {
	return mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: MarshalJSON(ToolResult{Success: true, Data: data}),
			},
		},
	}
}

// createErrorResult creates a standardized error result carrying the
// structured error code
func createErrorResult(err error) mcp.CallToolResult {
	return mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: MarshalJSON(ToolResult{
					Success:   false,
					Error:     err.Error(),
					ErrorCode: string(errors.CodeOf(err)),
				}),
			},
		},
	}
}

// HR tool configurations, all read-only against the HR database
var hrToolConfigs = []ToolConfig{
	{
		Name:           "query_employees",
		Description:    "Run a read-only SQL SELECT query against the HR database",
		Category:       CategoryHR,
		RequiredParams: []string{"query"},
		OptionalParams: []string{"params", "limit"},
		ParamTypes:     map[string]string{"params": "array", "limit": "integer"},
		Handler:        createQueryEmployeesHandler,
	},
	{
		Name:        "list_tables",
		Description: "List all tables in the HR database",
		Category:    CategoryHR,
		Handler:     createListTablesHandler,
	},
	{
		Name:        "list_departments",
		Description: "List all departments with their headcount",
		Category:    CategoryHR,
		Handler:     createListDepartmentsHandler,
	},
	{
		Name:           "describe_table",
		Description:    "Get column metadata for a table in the HR database",
		Category:       CategoryHR,
		RequiredParams: []string{"table_name"},
		Handler:        createDescribeTableHandler,
	},
	{
		Name:           "get_employee_by_id",
		Description:    "Look up a single employee by id",
		Category:       CategoryHR,
		RequiredParams: []string{"employee_id"},
		ParamTypes:     map[string]string{"employee_id": "number"},
		Handler:        createGetEmployeeByIDHandler,
	},
	{
		Name:           "get_employees_by_department",
		Description:    "List all employees of a department, by department name or id",
		Category:       CategoryHR,
		RequiredParams: []string{"department"},
		Handler:        createGetEmployeesByDepartmentHandler,
	},
	{
		Name:           "get_employee_count",
		Description:    "Count employees, optionally filtered by status (active, inactive, terminated)",
		Category:       CategoryHR,
		OptionalParams: []string{"status"},
		Handler:        createGetEmployeeCountHandler,
	},
}

// GitHub tool configurations
var githubToolConfigs = []ToolConfig{
	{
		Name:           "search_repositories",
		Description:    "Search GitHub repositories",
		Category:       CategoryGitHub,
		RequiredParams: []string{"query"},
		OptionalParams: []string{"sort", "order", "limit"},
		ParamTypes:     map[string]string{"limit": "integer"},
		Handler:        createSearchRepositoriesHandler,
	},
	{
		Name:           "list_user_repos",
		Description:    "List the authenticated user's repositories",
		Category:       CategoryGitHub,
		OptionalParams: []string{"type", "sort", "per_page"},
		ParamTypes:     map[string]string{"per_page": "integer"},
		Handler:        createListUserRepositoriesHandler,
	},
	{
		Name:           "get_repository_files",
		Description:    "List files and directories at a path inside a repository",
		Category:       CategoryGitHub,
		RequiredParams: []string{"owner", "repo"},
		OptionalParams: []string{"path"},
		Handler:        createGetRepositoryFilesHandler,
	},
	{
		Name:           "get_file_content",
		Description:    "Get the decoded text content of a file in a repository",
		Category:       CategoryGitHub,
		RequiredParams: []string{"owner", "repo", "path"},
		OptionalParams: []string{"ref"},
		Handler:        createGetFileContentsHandler,
	},
	{
		Name:           "create_issue",
		Description:    "Create a new issue in a repository",
		Category:       CategoryGitHub,
		RequiredParams: []string{"owner", "repo", "title"},
		OptionalParams: []string{"body", "labels"},
		ParamTypes:     map[string]string{"labels": "array"},
		Handler:        createCreateIssueHandler,
	},
}

// Diagnostic tools shared by both servers
var utilityToolConfigs = []ToolConfig{
	{
		Name:           "ping",
		Description:    "Simple ping tool to test MCP connectivity",
		Category:       CategoryUtility,
		OptionalParams: []string{"message"},
		Handler:        createPingHandler,
	},
	{
		Name:           "server_status",
		Description:    "Get basic server status information",
		Category:       CategoryUtility,
		OptionalParams: []string{"details"},
		ParamTypes:     map[string]string{"details": "boolean"},
		Handler:        createServerStatusHandler,
	},
}

// HRToolConfigs returns the HR tool configurations
func HRToolConfigs() []ToolConfig {
	return hrToolConfigs
}

// GitHubToolConfigs returns the GitHub tool configurations
func GitHubToolConfigs() []ToolConfig {
	return githubToolConfigs
}

// UtilityToolConfigs returns the diagnostic tool configurations
func UtilityToolConfigs() []ToolConfig {
	return utilityToolConfigs
}

// GetToolConfig returns a specific tool configuration by name
func GetToolConfig(name string) (*ToolConfig, error) {
	for _, configs := range [][]ToolConfig{hrToolConfigs, githubToolConfigs, utilityToolConfigs} {
		for _, config := range configs {
			if config.Name == name {
				return &config, nil
			}
		}
	}
	return nil, pkgerrors.Errorf("tool %s not found", name)
}

// BuildToolSchema creates the MCP input schema for a tool
func BuildToolSchema(config ToolConfig) mcp.ToolInputSchema {
	properties := make(map[string]interface{})

	for _, param := range config.RequiredParams {
		properties[param] = paramSchema(config, param)
	}
	for _, param := range config.OptionalParams {
		properties[param] = paramSchema(config, param)
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   config.RequiredParams,
	}
}

func paramSchema(config ToolConfig, param string) map[string]interface{} {
	paramType := "string"
	if t, ok := config.ParamTypes[param]; ok {
		paramType = t
	}

	schema := map[string]interface{}{
		"type":        paramType,
		"description": getParamDescription(param),
	}
	// Arrays must have an items schema for JSON Schema compliance
	if paramType == "array" {
		schema["items"] = map[string]interface{}{"type": "string"}
	}
	return schema
}

// getParamDescription returns a human-readable description for common parameters
func getParamDescription(param string) string {
	descriptions := map[string]string{
		"query":       "Query to run (SQL SELECT for HR tools, search expression for GitHub)",
		"params":      "Positional parameters bound to the query placeholders",
		"limit":       "Maximum number of results to return",
		"table_name":  "Name of the table to describe",
		"employee_id": "Employee id to look up",
		"department":  "Department name or numeric department id",
		"status":      "Employee status filter (active, inactive, terminated)",
		"sort":        "Sort field",
		"order":       "Sort order (asc, desc)",
		"type":        "Repository type filter (all, owner, public, private, member)",
		"per_page":    "Number of results per page (max 100)",
		"owner":       "Repository owner",
		"repo":        "Repository name",
		"path":        "Path within the repository",
		"ref":         "Git reference (branch, tag, or commit SHA)",
		"title":       "Issue title",
		"body":        "Issue description",
		"labels":      "Issue labels",
		"message":     "Message echoed back by ping",
		"details":     "Include extended status details",
	}
	if description, ok := descriptions[param]; ok {
		return description
	}
	return param
}
