// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"

	"google.golang.org/genai"
)

// Model represents a generative AI model.
type Model interface {
	// Name returns the name of the model.
	Name() string

	// GenerateContent generates the next turn of the conversation in contents.
	GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
