// Package tools defines the gateway's logical tools: named operations over
// the Trello client that MCP callers invoke. Each tool validates its own
// arguments; the rate-limited execution itself happens inside the client.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/templates"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/trello"
)

// Tool is one callable gateway operation.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     func(ctx context.Context, args json.RawMessage) (any, error)
}

// Registry holds the tool set bound to one Trello client.
type Registry struct {
	client         *trello.Client
	templates      templates.Registry
	defaultBoardID string
	tools          map[string]Tool
}

// NewRegistry builds the full tool set. defaultBoardID, when set, is used
// by board-scoped tools whenever the caller omits board_id.
func NewRegistry(client *trello.Client, tpls templates.Registry, defaultBoardID string) *Registry {
	r := &Registry{
		client:         client,
		templates:      tpls,
		defaultBoardID: defaultBoardID,
		tools:          make(map[string]Tool),
	}
	r.registerBoardTools()
	r.registerListTools()
	r.registerCardTools()
	r.registerTemplateTools()
	return r
}

func (r *Registry) register(tool Tool) {
	r.tools[tool.Name] = tool
}

// List returns all tools sorted by name.
func (r *Registry) List() []Tool {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Tool, 0, len(names))
	for _, name := range names {
		out = append(out, r.tools[name])
	}
	return out
}

// Call invokes a tool by name.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	return tool.Handler(ctx, args)
}

// boardID resolves an explicit board id against the configured default.
func (r *Registry) boardID(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if r.defaultBoardID != "" {
		return r.defaultBoardID, nil
	}
	return "", fmt.Errorf("board_id is required (no default board configured)")
}

func decodeArgs(args json.RawMessage, into any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, into); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// objectSchema builds a JSON-schema object descriptor.
func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func numberProp(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

func stringArrayProp(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}
