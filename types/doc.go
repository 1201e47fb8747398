// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types provides the contracts shared by agents, toolsets and the runner.
//
// The package defines the two interfaces the rest of the module is built on:
//
//   - Tool: a single callable function with a Gemini function declaration
//   - Toolset: a named collection of tools backed by one external server
//
// Concrete implementations live elsewhere. The MCP-backed toolset is in
// [github.com/go-a2a/mcp-agent/tool/mcptool]; the agent descriptor that holds
// toolsets is in [github.com/go-a2a/mcp-agent/agent].
//
// # Tool
//
//	type Tool interface {
//		Name() string
//		Description() string
//		Declaration() *genai.FunctionDeclaration
//		Run(ctx context.Context, args map[string]any) (map[string]any, error)
//	}
//
// Run receives the arguments the model produced for a function call and
// returns the value sent back to the model as the function response.
//
// # Toolset
//
//	type Toolset interface {
//		Name() string
//		Tools(ctx context.Context) ([]Tool, error)
//		Close() error
//	}
//
// A Toolset is inert until Tools is called; implementations may open
// connections or start processes lazily at that point and release them in
// Close.
package types
