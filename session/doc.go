// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package session stores conversation history between the user and the agent.
//
// A [Session] holds the ordered []*genai.Content exchanged with the model,
// including function calls and function responses. [InMemoryService] keeps
// sessions in process memory keyed by id; ids default to random UUIDs.
package session
