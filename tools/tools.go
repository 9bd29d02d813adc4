package tools

import (
	"context"

	"github.com/peopleops/hrdesk/provider"
)

// Tool is the uniform callable interface the agent exposes to the model.
// Call returns a human-readable result string; failures from external
// services are returned as errors and surfaced to the model as tool
// error strings by the agent.
type Tool interface {
	Definition() provider.ToolDef
	Call(ctx context.Context, args map[string]interface{}) (string, error)
}

// StringArg extracts an optional string argument from a tool call.
func StringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// IntArg extracts an optional integer argument from a tool call. JSON
// numbers decode as float64.
func IntArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
