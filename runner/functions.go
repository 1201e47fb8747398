// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	deepcopy "github.com/tiendc/go-deepcopy"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/go-a2a/mcp-agent/types"
)

// FunctionCallIDPrefix prefixes function call ids generated on the client side.
const FunctionCallIDPrefix = "adk-"

// generateClientFunctionCallID generates a unique function call ID for the client.
func generateClientFunctionCallID() string {
	return FunctionCallIDPrefix + uuid.NewString()
}

// populateClientFunctionCallID gives every function call of content an id so responses can be matched.
func populateClientFunctionCallID(content *genai.Content) {
	for _, part := range content.Parts {
		if part != nil && part.FunctionCall != nil && part.FunctionCall.ID == "" {
			part.FunctionCall.ID = generateClientFunctionCallID()
		}
	}
}

func hasClientFunctionCallID(content *genai.Content) bool {
	return slices.ContainsFunc(content.Parts, func(part *genai.Part) bool {
		switch {
		case part == nil:
			return false
		case part.FunctionCall != nil && strings.HasPrefix(part.FunctionCall.ID, FunctionCallIDPrefix):
			return true
		case part.FunctionResponse != nil && strings.HasPrefix(part.FunctionResponse.ID, FunctionCallIDPrefix):
			return true
		default:
			return false
		}
	})
}

// removeClientFunctionCallID clears the client generated ids of content in place.
func removeClientFunctionCallID(content *genai.Content) *genai.Content {
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil && strings.HasPrefix(part.FunctionCall.ID, FunctionCallIDPrefix) {
			part.FunctionCall.ID = ""
		}
		if part.FunctionResponse != nil && strings.HasPrefix(part.FunctionResponse.ID, FunctionCallIDPrefix) {
			part.FunctionResponse.ID = ""
		}
	}
	return content
}

// requestContents returns the history as sent to the model, without client generated ids.
// Contents carrying such ids are copied so the session history keeps them.
func requestContents(history []*genai.Content) ([]*genai.Content, error) {
	contents := make([]*genai.Content, len(history))
	for i, content := range history {
		if !hasClientFunctionCallID(content) {
			contents[i] = content
			continue
		}
		c := &genai.Content{}
		if err := deepcopy.Copy(c, content); err != nil {
			return nil, fmt.Errorf("copy content: %w", err)
		}
		contents[i] = removeClientFunctionCallID(c)
	}
	return contents, nil
}

// handleFunctionCalls runs every function call concurrently and returns one
// user content holding the function responses in call order.
func (r *Runner) handleFunctionCalls(ctx context.Context, funcCalls []*genai.FunctionCall, toolsDict map[string]types.Tool) (*genai.Content, error) {
	parts := make([]*genai.Part, len(funcCalls))

	g, gctx := errgroup.WithContext(ctx)
	if r.maxConcurrency > 0 {
		g.SetLimit(r.maxConcurrency)
	}
	for i, funcCall := range funcCalls {
		g.Go(func() error {
			parts[i] = r.callFunction(gctx, funcCall, toolsDict)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return genai.NewContentFromParts(parts, genai.RoleUser), nil
}

// callFunction calls the tool named by funcCall. Failures are reported to the model as an error response.
func (r *Runner) callFunction(ctx context.Context, funcCall *genai.FunctionCall, toolsDict map[string]types.Tool) *genai.Part {
	logger := r.logger.With(slog.String("tool", funcCall.Name), slog.String("function_call_id", funcCall.ID))

	var result map[string]any
	t, ok := toolsDict[funcCall.Name]
	if !ok {
		err := types.ToolNotFoundError(funcCall.Name)
		logger.WarnContext(ctx, "unknown tool requested", slog.Any("error", err))
		result = map[string]any{"error": err.Error()}
	} else {
		logger.DebugContext(ctx, "calling tool", slog.Any("args", funcCall.Args))
		res, err := t.Run(ctx, funcCall.Args)
		if err != nil {
			logger.WarnContext(ctx, "tool call failed", slog.Any("error", err))
			res = map[string]any{"error": err.Error()}
		}
		result = res
	}

	// the function response must be an object
	if len(result) == 0 {
		result = map[string]any{"result": result}
	}

	part := genai.NewPartFromFunctionResponse(funcCall.Name, result)
	part.FunctionResponse.ID = funcCall.ID
	return part
}
