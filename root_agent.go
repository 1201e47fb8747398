// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package mcpagent

import (
	"github.com/go-a2a/mcp-agent/agent"
	"github.com/go-a2a/mcp-agent/config"
	"github.com/go-a2a/mcp-agent/tool/mcptool"
)

const (
	// AgentName is the name of the root agent.
	AgentName = "mcp_agent"

	// DefaultModel is the model the root agent runs on.
	DefaultModel = "gemini-2.0-flash"

	// Instruction is the instruction of the root agent.
	Instruction = "You are an assistant for the given data."
)

// Toolset names, in the order the root agent holds them.
const (
	DatabaseToolsetName = "database"
	WeatherToolsetName  = "weather"
	RemoteToolsetName   = "remote"
)

// Remote toolset headers.
const (
	HeaderP5APIKey    = "P5APIKEY"
	HeaderP5AccountID = "P5AccountId"

	// P5AccountID is the fixed account the remote toolset acts for.
	P5AccountID = "4"
)

const (
	launcher              = "npx"
	postgresServerPackage = "@modelcontextprotocol/server-postgres"
	weatherServerPackage  = "@h1deya/mcp-server-weather"
)

// DatabaseToolset returns the toolset of the postgres MCP server.
//
// The connection string is passed through verbatim behind the postgresql:// scheme.
func DatabaseToolset(creds *config.Credentials, opts ...mcptool.ToolsetOption) *mcptool.Toolset {
	params := mcptool.NewStdioServerParams(launcher,
		"-y",
		postgresServerPackage,
		"postgresql://"+creds.PostgresConnectionString(),
	)
	return mcptool.NewToolset(DatabaseToolsetName, params, opts...)
}

// WeatherToolset returns the toolset of the weather MCP server.
func WeatherToolset(opts ...mcptool.ToolsetOption) *mcptool.Toolset {
	params := mcptool.NewStdioServerParams(launcher,
		"-y",
		weatherServerPackage,
	)
	return mcptool.NewToolset(WeatherToolsetName, params, opts...)
}

// RemoteToolset returns the toolset of the remote MCP server at CONNECTION_URL.
func RemoteToolset(creds *config.Credentials, opts ...mcptool.ToolsetOption) *mcptool.Toolset {
	params := mcptool.NewSSEServerParams(creds.ConnectionURL(), map[string]string{
		HeaderP5APIKey:    creds.P5APIKey(),
		HeaderP5AccountID: P5AccountID,
	})
	return mcptool.NewToolset(RemoteToolsetName, params, opts...)
}

// NewRootAgent returns the root agent with the database, weather and remote toolsets, in that order.
//
// opts are applied to every toolset after the default client info.
func NewRootAgent(creds *config.Credentials, opts ...mcptool.ToolsetOption) *agent.LLMAgent {
	opts = append([]mcptool.ToolsetOption{mcptool.WithClientInfo(AgentName, Version)}, opts...)

	return agent.NewLLMAgent(AgentName,
		agent.WithModel(DefaultModel),
		agent.WithInstruction(Instruction),
		agent.WithToolsets(
			DatabaseToolset(creds, opts...),
			WeatherToolset(opts...),
			RemoteToolset(creds, opts...),
		),
	)
}

// AgentManifest is the printable description of an agent.
type AgentManifest struct {
	Name        string                    `json:"name" yaml:"name"`
	Model       string                    `json:"model" yaml:"model"`
	Instruction string                    `json:"instruction" yaml:"instruction"`
	Toolsets    []mcptool.ToolsetManifest `json:"toolsets" yaml:"toolsets"`
}

// Manifest describes a. With redact set, secrets in toolset params are masked.
func Manifest(a *agent.LLMAgent, redact bool) AgentManifest {
	m := AgentManifest{
		Name:        a.Name(),
		Model:       a.Model(),
		Instruction: a.Instruction(),
	}
	for _, ts := range a.Toolsets() {
		if mts, ok := ts.(*mcptool.Toolset); ok {
			m.Toolsets = append(m.Toolsets, mts.Describe(redact))
			continue
		}
		m.Toolsets = append(m.Toolsets, mcptool.ToolsetManifest{Name: ts.Name()})
	}

	return m
}
