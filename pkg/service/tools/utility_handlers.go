package tools

import (
	"context"
	"time"
)

var serverStartTime = time.Now()

func createPingHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		response := "pong"
		if message := ExtractOptionalStringParam(args, "message", ""); message != "" {
			response = "pong: " + message
		}
		return map[string]any{
			"response":  response,
			"timestamp": time.Now().Format(time.RFC3339),
		}, nil
	}
}

func createServerStatusHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		data := map[string]any{
			"status":  "running",
			"version": deps.Version,
			"uptime":  time.Since(serverStartTime).String(),
		}
		if ExtractOptionalBoolParam(args, "details", false) {
			data["backends"] = map[string]any{
				"hr":     deps.HR != nil,
				"github": deps.GitHub != nil,
			}
			if deps.HR != nil {
				data["hr_max_rows"] = deps.HR.MaxRows()
			}
		}
		return data, nil
	}
}
