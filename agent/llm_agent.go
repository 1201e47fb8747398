// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"google.golang.org/genai"

	"github.com/go-a2a/mcp-agent/types"
)

// LLMAgent describes an agent powered by a Large Language Model.
//
// It holds configuration only. Tool sessions are opened by the toolsets on
// first use and the model loop is driven by a runner.
type LLMAgent struct {
	name string

	description string

	// The model identifier, e.g. "gemini-2.0-flash".
	model string

	// Instructions for the LLM model, guiding the agent's behavior.
	instruction string

	// Toolsets available to this agent, in presentation order.
	toolsets []types.Toolset

	// generateContentConfig is the additional content generation configurations.
	//
	// NOTE: tools must be configured via toolsets; the Tools field is ignored.
	generateContentConfig *genai.GenerateContentConfig
}

// Option configures an [LLMAgent].
type Option func(*LLMAgent)

// WithModel sets the model identifier.
func WithModel(model string) Option {
	return func(a *LLMAgent) {
		a.model = model
	}
}

// WithInstruction sets the instruction for the agent.
func WithInstruction(instruction string) Option {
	return func(a *LLMAgent) {
		a.instruction = instruction
	}
}

// WithDescription sets the description for the agent.
func WithDescription(description string) Option {
	return func(a *LLMAgent) {
		a.description = description
	}
}

// WithToolsets appends toolsets to the agent.
func WithToolsets(toolsets ...types.Toolset) Option {
	return func(a *LLMAgent) {
		a.toolsets = append(a.toolsets, toolsets...)
	}
}

// WithGenerateContentConfig sets the [genai.GenerateContentConfig] for the agent.
func WithGenerateContentConfig(config *genai.GenerateContentConfig) Option {
	return func(a *LLMAgent) {
		a.generateContentConfig = config
	}
}

// NewLLMAgent creates a new [LLMAgent] with the given name and options.
func NewLLMAgent(name string, opts ...Option) *LLMAgent {
	a := &LLMAgent{
		name: name,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Name returns the name of the agent.
func (a *LLMAgent) Name() string {
	return a.name
}

// Description returns the description of the agent.
func (a *LLMAgent) Description() string {
	return a.description
}

// Model returns the model identifier of the agent.
func (a *LLMAgent) Model() string {
	return a.model
}

// Instruction returns the instruction of the agent.
func (a *LLMAgent) Instruction() string {
	return a.instruction
}

// Toolsets returns the toolsets of the agent in order.
func (a *LLMAgent) Toolsets() []types.Toolset {
	return slices.Clone(a.toolsets)
}

// GenerateContentConfig returns the generation config of the agent, which may be nil.
func (a *LLMAgent) GenerateContentConfig() *genai.GenerateContentConfig {
	return a.generateContentConfig
}

// CanonicalTools resolves the tools of every toolset, in toolset order.
//
// A toolset that fails does not hide the others: the tools that could be
// resolved are returned together with the joined errors.
func (a *LLMAgent) CanonicalTools(ctx context.Context) ([]types.Tool, error) {
	var (
		tools []types.Tool
		errs  []error
	)
	for _, ts := range a.toolsets {
		resolved, err := ts.Tools(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("toolset %q: %w", ts.Name(), err))
			continue
		}
		tools = append(tools, resolved...)
	}

	return tools, errors.Join(errs...)
}

// Close closes every toolset of the agent.
func (a *LLMAgent) Close() error {
	var errs []error
	for _, ts := range a.toolsets {
		if err := ts.Close(); err != nil {
			errs = append(errs, fmt.Errorf("toolset %q: %w", ts.Name(), err))
		}
	}

	return errors.Join(errs...)
}
