package tools

import (
	"context"
)

func createSearchRepositoriesHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		query, err := ExtractStringParam(args, "query")
		if err != nil {
			return nil, err
		}
		sort := ExtractOptionalStringParam(args, "sort", "")
		order := ExtractOptionalStringParam(args, "order", "")
		limit, err := ExtractOptionalIntParam(args, "limit", 0)
		if err != nil {
			return nil, err
		}

		result, err := deps.GitHub.SearchRepositories(ctx, query, sort, order, limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"total_count":  result.TotalCount,
			"count":        len(result.Items),
			"repositories": result.Items,
		}, nil
	}
}

func createListUserRepositoriesHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		filter := ExtractOptionalStringParam(args, "type", "")
		sort := ExtractOptionalStringParam(args, "sort", "")
		perPage, err := ExtractOptionalIntParam(args, "per_page", 0)
		if err != nil {
			return nil, err
		}

		repos, err := deps.GitHub.ListUserRepositories(ctx, filter, sort, perPage)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"repositories": repos,
			"count":        len(repos),
		}, nil
	}
}

func createGetRepositoryFilesHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		owner, err := ExtractStringParam(args, "owner")
		if err != nil {
			return nil, err
		}
		repo, err := ExtractStringParam(args, "repo")
		if err != nil {
			return nil, err
		}
		path := ExtractOptionalStringParam(args, "path", "")

		entries, err := deps.GitHub.GetRepositoryFiles(ctx, owner, repo, path)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"owner":   owner,
			"repo":    repo,
			"path":    path,
			"entries": entries,
			"count":   len(entries),
		}, nil
	}
}

func createGetFileContentsHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		owner, err := ExtractStringParam(args, "owner")
		if err != nil {
			return nil, err
		}
		repo, err := ExtractStringParam(args, "repo")
		if err != nil {
			return nil, err
		}
		path, err := ExtractStringParam(args, "path")
		if err != nil {
			return nil, err
		}
		ref := ExtractOptionalStringParam(args, "ref", "")

		file, err := deps.GitHub.GetFileContents(ctx, owner, repo, path, ref)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"file": file,
		}, nil
	}
}

func createCreateIssueHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		owner, err := ExtractStringParam(args, "owner")
		if err != nil {
			return nil, err
		}
		repo, err := ExtractStringParam(args, "repo")
		if err != nil {
			return nil, err
		}
		title, err := ExtractStringParam(args, "title")
		if err != nil {
			return nil, err
		}
		body := ExtractOptionalStringParam(args, "body", "")
		labels, err := ExtractStringArrayParam(args, "labels")
		if err != nil {
			return nil, err
		}

		issue, err := deps.GitHub.CreateIssue(ctx, owner, repo, title, body, labels)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"number": issue.Number,
			"title":  issue.Title,
			"state":  issue.State,
			"url":    issue.HTMLURL,
		}, nil
	}
}
