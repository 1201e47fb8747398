// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package mcptool

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/genai"

	"github.com/go-a2a/mcp-agent/types"
)

// Tool is one tool of an MCP server, callable through the session of its [Toolset].
type Tool struct {
	toolset     *Toolset
	mcpTool     *mcp.Tool
	declaration *genai.FunctionDeclaration
}

var _ types.Tool = (*Tool)(nil)

func newTool(toolset *Toolset, mcpTool *mcp.Tool) *Tool {
	decl := &genai.FunctionDeclaration{
		Name:        mcpTool.Name,
		Description: mcpTool.Description,
	}
	params, err := ToGeminiSchema(mcpTool.InputSchema)
	if err != nil {
		toolset.logger.Warn("drop unsupported input schema",
			slog.String("toolset", toolset.name),
			slog.String("tool", mcpTool.Name),
			slog.Any("error", err),
		)
	} else {
		decl.Parameters = params
	}

	return &Tool{
		toolset:     toolset,
		mcpTool:     mcpTool,
		declaration: decl,
	}
}

// Name implements [types.Tool].
func (t *Tool) Name() string {
	return t.mcpTool.Name
}

// Description implements [types.Tool].
func (t *Tool) Description() string {
	return t.mcpTool.Description
}

// Declaration implements [types.Tool].
func (t *Tool) Declaration() *genai.FunctionDeclaration {
	return t.declaration
}

// Toolset returns the name of the toolset the tool belongs to.
func (t *Tool) Toolset() string {
	return t.toolset.name
}

// Run implements [types.Tool].
//
// A result flagged as an error by the server is not a Go error; it is returned
// with "is_error" set so the model can see it.
func (t *Tool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	session, err := t.toolset.connect(ctx)
	if err != nil {
		return nil, err
	}

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      t.mcpTool.Name,
		Arguments: args,
	})
	if err != nil {
		t.toolset.invalidateOnTransportError(ctx, session, err)
		return nil, fmt.Errorf("call MCP tool %q of %q: %w", t.mcpTool.Name, t.toolset.name, err)
	}

	return resultToMap(res)
}

// resultToMap converts res into the function response sent to the model.
func resultToMap(res *mcp.CallToolResult) (map[string]any, error) {
	content := make([]any, 0, len(res.Content))
	for _, c := range res.Content {
		switch c := c.(type) {
		case *mcp.TextContent:
			content = append(content, map[string]any{
				"type": "text",
				"text": c.Text,
			})
		default:
			v, err := roundTrip(c)
			if err != nil {
				return nil, fmt.Errorf("convert %T content: %w", c, err)
			}
			content = append(content, v)
		}
	}

	out := map[string]any{
		"content":  content,
		"is_error": res.IsError,
	}
	if res.StructuredContent != nil {
		v, err := roundTrip(res.StructuredContent)
		if err != nil {
			return nil, fmt.Errorf("convert structured content: %w", err)
		}
		out["structured_content"] = v
	}

	return out, nil
}

// roundTrip re-encodes v as plain JSON values.
func roundTrip(v any) (any, error) {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := sonic.ConfigStd.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
