// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"

	"google.golang.org/genai"
)

// Tool defines the interface that all tools must implement.
type Tool interface {
	// Name returns the name of the tool.
	Name() string

	// Description returns the description of the tool.
	Description() string

	// Declaration returns the function declaration of this tool advertised to the model.
	Declaration() *genai.FunctionDeclaration

	// Run runs the tool with the arguments of a model function call.
	Run(ctx context.Context, args map[string]any) (map[string]any, error)
}
