// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import "context"

// Toolset represents a named collection of tools that can be used by an agent.
type Toolset interface {
	// Name returns the name of the toolset.
	Name() string

	// Tools returns all tools in the toolset.
	//
	// The first call may establish the connection to the backing server.
	Tools(ctx context.Context) ([]Tool, error)

	// Close performs cleanup and releases resources held by the toolset.
	//
	// NOTE: This method is invoked when the toolset is no longer needed.
	// Implementations should ensure that any open connections or child
	// processes are released to prevent leaks.
	Close() error
}
