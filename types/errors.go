// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// ToolNotFoundError is the error type for function calls naming a tool no toolset provides.
type ToolNotFoundError string

// Error returns a string representation of the [ToolNotFoundError].
func (e ToolNotFoundError) Error() string {
	return "tool not found: " + string(e)
}
