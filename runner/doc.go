// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner drives the conversation loop between an agent, its model and its tools.
//
// For each user turn the [Runner] sends the session history to the model. When
// the model answers with function calls, the matching tools run concurrently
// and their results are sent back as function responses. The loop ends when the
// model answers with text, or with [ErrMaxStepsExceeded] after the configured
// number of model calls.
//
// Tool failures never abort a turn: an unknown tool or a failing call becomes a
// function response of the form {"error": "..."} so the model can recover.
package runner
