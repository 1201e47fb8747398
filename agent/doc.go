// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent provides the LLM agent descriptor.
//
// An [LLMAgent] aggregates a model identifier, an instruction and an ordered
// list of toolsets into one addressable agent:
//
//	a := agent.NewLLMAgent("mcp_agent",
//		agent.WithModel("gemini-2.0-flash"),
//		agent.WithInstruction("You are an assistant for the given data."),
//		agent.WithToolsets(database, weather, remote),
//	)
//	defer a.Close()
//
// Building an agent never fails and never touches the network. The toolset
// order is kept as given and is presentation only: the model decides which
// tool to call. [LLMAgent.CanonicalTools] resolves the tools of every toolset
// when a runner needs them.
package agent
