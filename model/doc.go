// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model provides the generative model used by the agent runtime.
//
// [Model] is the narrow interface the runner drives: it takes the ordered
// conversation history and returns the next model turn. [Gemini] implements it
// on top of google.golang.org/genai and the Gemini API:
//
//	gemini, err := model.NewGemini(ctx, creds.GoogleAPIKey(), model.GeminiDefaultModel)
//	if err != nil {
//		return err
//	}
//	resp, err := gemini.GenerateContent(ctx, contents, &genai.GenerateContentConfig{
//		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
//	})
//
// The API key is always passed explicitly; the package never reads the
// process environment.
package model
