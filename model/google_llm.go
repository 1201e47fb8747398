// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// GeminiDefaultModel is the default model name for [Gemini].
const GeminiDefaultModel = "gemini-2.0-flash"

// Gemini represents a Google Gemini Large Language Model.
type Gemini struct {
	Config

	name        string
	genAIClient *genai.Client
}

var _ Model = (*Gemini)(nil)

// NewGemini creates a new [Gemini] instance calling the Gemini API with apiKey.
func NewGemini(ctx context.Context, apiKey, modelName string, opts ...Option) (*Gemini, error) {
	if modelName == "" {
		modelName = GeminiDefaultModel
	}

	genAIClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	m := &Gemini{
		Config:      newConfig(),
		name:        modelName,
		genAIClient: genAIClient,
	}
	for _, opt := range opts {
		m.Config = opt.apply(m.Config)
	}

	return m, nil
}

// Name implements [Model].
func (m *Gemini) Name() string {
	return m.name
}

// GenerateContent implements [Model].
func (m *Gemini) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	contents = appendUserContent(contents)

	cfg := &genai.GenerateContentConfig{}
	if config != nil {
		c := *config
		cfg = &c
	}
	if len(cfg.SafetySettings) == 0 {
		cfg.SafetySettings = m.safetySettings
	}

	response, err := m.genAIClient.Models.GenerateContent(ctx, m.name, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	m.logger.DebugContext(ctx, "response", buildResponseLog(response))

	return response, nil
}

// appendUserContent checks if the last message is from the user and if not, appends a user message.
func appendUserContent(contents []*genai.Content) []*genai.Content {
	switch {
	case len(contents) == 0:
		return append(contents, genai.NewContentFromText(
			`Handle the requests as specified in the System Instruction.`, genai.RoleUser))

	case strings.ToLower(contents[len(contents)-1].Role) != string(genai.RoleUser):
		return append(contents, genai.NewContentFromText(
			`Continue processing previous requests as instructed. Exit or provide a summary if no more outputs are needed.`, genai.RoleUser))

	default:
		return contents
	}
}

func buildResponseLog(resp *genai.GenerateContentResponse) slog.Attr {
	attrs := []any{
		slog.Int("candidates", len(resp.Candidates)),
		slog.Int("function_calls", len(resp.FunctionCalls())),
	}
	if resp.UsageMetadata != nil {
		attrs = append(attrs,
			slog.Int("prompt_tokens", int(resp.UsageMetadata.PromptTokenCount)),
			slog.Int("candidates_tokens", int(resp.UsageMetadata.CandidatesTokenCount)),
		)
	}
	return slog.Group("gemini", attrs...)
}
