// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcptool connects agents to Model Context Protocol (MCP) servers.
//
// A [Toolset] wraps one MCP server. How the server is reached is described by
// a [ConnectionParams], a closed sum type with two variants:
//
//   - [*StdioServerParams]: a subprocess speaking MCP over stdin/stdout
//   - [*SSEServerParams]: a remote server reached over a Server-Sent Events stream
//
// Building params and toolsets is inert: no process is started and no
// connection is opened until [Toolset.Tools] is first called. The protocol
// itself is spoken by the official MCP Go SDK
// (github.com/modelcontextprotocol/go-sdk/mcp).
//
// # Basic Usage
//
//	postgres := mcptool.NewToolset("database",
//		mcptool.NewStdioServerParams("npx", "-y", "@modelcontextprotocol/server-postgres", dsn),
//	)
//	remote := mcptool.NewToolset("remote",
//		mcptool.NewSSEServerParams(url, map[string]string{"P5APIKEY": key}),
//	)
//	defer postgres.Close()
//
//	tools, err := postgres.Tools(ctx)
//	if err != nil {
//		return err
//	}
//	for _, tool := range tools {
//		fmt.Println(tool.Name(), tool.Declaration().Parameters)
//	}
//
// # Sessions
//
// A Toolset keeps at most one session open. Every [Tool] it returns calls
// through that session; a protocol failure drops the session and the next
// call reconnects. [Toolset.Close] ends the session, which terminates a stdio
// subprocess.
//
// # Schemas
//
// Tool input schemas are converted with [ToGeminiSchema] into the subset of
// JSON Schema accepted by Gemini function declarations.
package mcptool
