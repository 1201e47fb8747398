// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcpagent configures a Gemini agent that delegates work to three MCP tool servers.
//
// The composition root is [NewRootAgent]: it reads nothing itself, takes an
// already loaded [config.Credentials] and builds, without side effects:
//
//   - the database toolset, a postgres MCP server launched with npx over stdio
//   - the weather toolset, a weather MCP server launched with npx over stdio
//   - the remote toolset, a remote MCP server reached over SSE with P5 headers
//   - the "mcp_agent" [agent.LLMAgent] holding the three toolsets in that order
//
// Processes and connections are only created when the toolsets are first
// used, typically by a [github.com/go-a2a/mcp-agent/runner.Runner].
package mcpagent

// Version is the version of mcp-agent. It is reported to MCP servers as client info.
var Version = "v0.1.0"
