package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
	"github.com/workdesk/integration-assist/pkg/github"
)

const (
	repositoriesResourceURI = "github://repositories"
	userResourceURI         = "github://user"
	repoResourceTemplate    = "github://repo/{owner}/{repo}"
	fileResourceTemplate    = "github://file/{owner}/{repo}/{+path}"
)

// registerGitHubResources exposes the read-side of the GitHub adapter as MCP
// resources alongside the tools.
func registerGitHubResources(mcpServer *server.MCPServer, client *github.Client, log zerolog.Logger) {
	mcpServer.AddResource(
		mcp.NewResource(repositoriesResourceURI, "repositories",
			mcp.WithResourceDescription("Repositories of the authenticated user"),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			repos, err := client.ListUserRepositories(ctx, "", "", 0)
			if err != nil {
				return nil, err
			}
			return jsonResourceContents(repositoriesResourceURI, repos)
		},
	)

	mcpServer.AddResource(
		mcp.NewResource(userResourceURI, "user",
			mcp.WithResourceDescription("Profile of the authenticated user"),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			user, err := client.GetUser(ctx)
			if err != nil {
				return nil, err
			}
			return jsonResourceContents(userResourceURI, user)
		},
	)

	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(repoResourceTemplate, "repository",
			mcp.WithTemplateDescription("Metadata for a single repository"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			owner, repo, err := parseRepoURI(req.Params.URI)
			if err != nil {
				return nil, err
			}
			repository, err := client.GetRepository(ctx, owner, repo)
			if err != nil {
				return nil, err
			}
			return jsonResourceContents(req.Params.URI, repository)
		},
	)

	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(fileResourceTemplate, "file",
			mcp.WithTemplateDescription("Decoded text content of a file in a repository"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			owner, repo, path, err := parseFileURI(req.Params.URI)
			if err != nil {
				return nil, err
			}
			file, err := client.GetFileContents(ctx, owner, repo, path, "")
			if err != nil {
				return nil, err
			}
			if file.Binary {
				return nil, errors.New(errors.CodeInvalidParameter, "github",
					fmt.Sprintf("%q is a binary file", path), nil)
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     file.Text,
				},
			}, nil
		},
	)

	log.Debug().Msg("Registered GitHub resources")
}

// parseRepoURI extracts owner and repository from a github://repo/{owner}/{repo} URI.
func parseRepoURI(uri string) (string, string, error) {
	rest, ok := strings.CutPrefix(uri, "github://repo/")
	if !ok {
		return "", "", errors.New(errors.CodeInvalidParameter, "github",
			"resource URI must start with github://repo/", nil)
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.New(errors.CodeInvalidParameter, "github",
			"resource URI must name owner and repository", nil)
	}
	return parts[0], parts[1], nil
}

// parseFileURI extracts owner, repository, and file path from a
// github://file/{owner}/{repo}/{path} URI. The path may contain slashes.
func parseFileURI(uri string) (string, string, string, error) {
	rest, ok := strings.CutPrefix(uri, "github://file/")
	if !ok {
		return "", "", "", errors.New(errors.CodeInvalidParameter, "github",
			"resource URI must start with github://file/", nil)
	}
	parts := strings.SplitN(rest, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", errors.New(errors.CodeInvalidParameter, "github",
			"resource URI must name owner, repository, and file path", nil)
	}
	return parts[0], parts[1], parts[2], nil
}

func jsonResourceContents(uri string, payload any) ([]mcp.ResourceContents, error) {
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, errors.New(errors.CodeInternalError, "github", "encoding resource payload failed", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		},
	}, nil
}
