// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package mcptool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"slices"
	"sync"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/go-a2a/mcp-agent/types"
)

const (
	// DefaultClientName is the client name reported to MCP servers.
	DefaultClientName = "mcp-agent"

	// DefaultClientVersion is the client version reported to MCP servers.
	DefaultClientVersion = "v0.0.0"
)

// ErrClosed is returned by a [Toolset] that has been closed.
var ErrClosed = errors.New("mcptool: toolset is closed")

// TransportFunc returns the [mcp.Transport] a [Toolset] connects through.
type TransportFunc func(ctx context.Context) (mcp.Transport, error)

// Toolset exposes the tools of one MCP server.
//
// Constructing a Toolset is inert. The MCP session, and for stdio params the
// subprocess, is created by the first call to [Toolset.Tools] and shared by
// every [Tool] it returns until [Toolset.Close].
type Toolset struct {
	name          string
	params        ConnectionParams
	toolFilter    []string
	clientName    string
	clientVersion string
	newTransport  TransportFunc
	logger        *slog.Logger

	mu      sync.Mutex
	session *mcp.ClientSession
	closed  bool
}

var _ types.Toolset = (*Toolset)(nil)

// ToolsetOption configures a [Toolset].
type ToolsetOption func(*Toolset)

// WithToolFilter restricts the toolset to the named tools.
func WithToolFilter(names ...string) ToolsetOption {
	return func(t *Toolset) {
		t.toolFilter = slices.Clone(names)
	}
}

// WithClientInfo sets the client implementation name and version reported to the server.
func WithClientInfo(name, version string) ToolsetOption {
	return func(t *Toolset) {
		t.clientName = name
		t.clientVersion = version
	}
}

// WithTransport replaces the transport derived from the connection params.
func WithTransport(fn TransportFunc) ToolsetOption {
	return func(t *Toolset) {
		t.newTransport = fn
	}
}

// WithLogger sets the logger for the toolset.
func WithLogger(logger *slog.Logger) ToolsetOption {
	return func(t *Toolset) {
		t.logger = logger
	}
}

// NewToolset returns a [Toolset] named name for the MCP server described by params.
//
// params is copied; later changes to it do not affect the toolset.
func NewToolset(name string, params ConnectionParams, opts ...ToolsetOption) *Toolset {
	t := &Toolset{
		name:          name,
		params:        cloneParams(params),
		clientName:    DefaultClientName,
		clientVersion: DefaultClientVersion,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Name implements [types.Toolset].
func (t *Toolset) Name() string {
	return t.name
}

// ConnectionParams returns a copy of the connection params of the toolset.
func (t *Toolset) ConnectionParams() ConnectionParams {
	return cloneParams(t.params)
}

// Tools implements [types.Toolset].
//
// It connects to the server when no session is open yet.
func (t *Toolset) Tools(ctx context.Context) ([]types.Tool, error) {
	session, err := t.connect(ctx)
	if err != nil {
		return nil, err
	}

	var mcpTools []*mcp.Tool
	params := &mcp.ListToolsParams{}
	for {
		res, err := session.ListTools(ctx, params)
		if err != nil {
			t.invalidateOnTransportError(ctx, session, err)
			return nil, fmt.Errorf("list tools of %q: %w", t.name, err)
		}
		mcpTools = append(mcpTools, res.Tools...)
		if res.NextCursor == "" {
			break
		}
		params.Cursor = res.NextCursor
	}

	tools := make([]types.Tool, 0, len(mcpTools))
	for _, mt := range mcpTools {
		if !t.isSelected(mt.Name) {
			continue
		}
		tools = append(tools, newTool(t, mt))
	}

	t.logger.DebugContext(ctx, "listed MCP tools",
		slog.String("toolset", t.name),
		slog.Int("available", len(mcpTools)),
		slog.Int("selected", len(tools)),
	)

	return tools, nil
}

// Close implements [types.Toolset].
//
// It ends the session and, for stdio params, the subprocess. A closed toolset cannot be reopened.
func (t *Toolset) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	if t.session == nil {
		return nil
	}

	session := t.session
	t.session = nil
	if err := session.Close(); err != nil {
		return fmt.Errorf("close session of %q: %w", t.name, err)
	}
	t.logger.Info("closed MCP session", slog.String("toolset", t.name))

	return nil
}

func (t *Toolset) isSelected(name string) bool {
	return len(t.toolFilter) == 0 || slices.Contains(t.toolFilter, name)
}

// connect returns the open session, creating it if needed.
func (t *Toolset) connect(ctx context.Context) (*mcp.ClientSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, ErrClosed
	}
	if t.session != nil {
		return t.session, nil
	}

	transport, err := t.transport(ctx)
	if err != nil {
		return nil, fmt.Errorf("create transport for %q: %w", t.name, err)
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    t.clientName,
		Version: t.clientVersion,
	}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to MCP server %q: %w", t.name, err)
	}
	t.session = session

	t.logger.InfoContext(ctx, "connected to MCP server",
		slog.String("toolset", t.name),
		slog.String("kind", string(t.kind())),
	)

	return session, nil
}

// invalidate drops session so that the next call reconnects.
func (t *Toolset) invalidate(session *mcp.ClientSession) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session != session {
		return
	}
	t.session = nil
	if err := session.Close(); err != nil {
		t.logger.Warn("close broken MCP session", slog.String("toolset", t.name), slog.Any("error", err))
	}
}

// invalidateOnTransportError drops session when err shows the connection is gone.
//
// Errors reported by the server, such as invalid params, and errors caused by
// ctx leave the session open.
func (t *Toolset) invalidateOnTransportError(ctx context.Context, session *mcp.ClientSession, err error) {
	if ctx.Err() != nil || !isTransportError(err) {
		return
	}
	t.invalidate(session)
}

func isTransportError(err error) bool {
	switch {
	case errors.Is(err, mcp.ErrConnectionClosed),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, os.ErrClosed),
		errors.Is(err, syscall.EPIPE):
		return true
	default:
		return false
	}
}

// transport returns the configured [TransportFunc] result, or the transport
// derived from the connection params.
func (t *Toolset) transport(ctx context.Context) (mcp.Transport, error) {
	if t.newTransport != nil {
		return t.newTransport(ctx)
	}

	switch p := t.params.(type) {
	case *StdioServerParams:
		return &mcp.CommandTransport{Command: p.command()}, nil
	case *SSEServerParams:
		return &mcp.SSEClientTransport{
			Endpoint:   p.URL,
			HTTPClient: p.httpClient(),
		}, nil
	case nil:
		return nil, errors.New("no connection params")
	default:
		return nil, fmt.Errorf("unsupported connection params %T", p)
	}
}

func (t *Toolset) kind() ConnectionKind {
	if t.params == nil {
		return ""
	}
	return t.params.Kind()
}
