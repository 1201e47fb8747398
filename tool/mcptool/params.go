// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package mcptool

import (
	"fmt"
	"io"
	"maps"
	"mime"
	"net/http"
	"os"
	"os/exec"
	"slices"
	"sync"
	"time"

	deepcopy "github.com/tiendc/go-deepcopy"
)

// ConnectionKind identifies the variant of a [ConnectionParams].
type ConnectionKind string

const (
	// KindStdio is a subprocess speaking MCP over its standard input and output.
	KindStdio ConnectionKind = "stdio"

	// KindSSE is a remote MCP server reached over a Server-Sent Events stream.
	KindSSE ConnectionKind = "sse"
)

// ConnectionParams describes how to reach an MCP server.
//
// It is a closed set: only [*StdioServerParams] and [*SSEServerParams] implement it.
type ConnectionParams interface {
	// Kind reports which variant the params are.
	Kind() ConnectionKind

	isConnectionParams()
}

// StdioServerParams describes a subprocess that speaks MCP over stdio.
//
// Nothing is started until the owning [Toolset] connects.
type StdioServerParams struct {
	// Command is the executable to launch.
	Command string

	// Args are the arguments passed to Command, in order.
	Args []string

	// Env holds extra environment variables for the subprocess. They are
	// added on top of the parent environment.
	Env map[string]string

	// Dir is the working directory of the subprocess. Empty means the
	// current directory.
	Dir string
}

var _ ConnectionParams = (*StdioServerParams)(nil)

// NewStdioServerParams returns the params for launching command with args.
func NewStdioServerParams(command string, args ...string) *StdioServerParams {
	return &StdioServerParams{
		Command: command,
		Args:    slices.Clone(args),
	}
}

// Kind implements [ConnectionParams].
func (*StdioServerParams) Kind() ConnectionKind { return KindStdio }

func (*StdioServerParams) isConnectionParams() {}

func (p *StdioServerParams) clone() *StdioServerParams {
	c := new(StdioServerParams)
	if err := deepcopy.Copy(c, *p); err != nil {
		// same source and destination type
		panic(fmt.Sprintf("mcptool: copy stdio params: %v", err))
	}
	return c
}

// command returns the subprocess described by p. The process is not started.
func (p *StdioServerParams) command() *exec.Cmd {
	cmd := exec.Command(p.Command, p.Args...)
	cmd.Dir = p.Dir
	if len(p.Env) > 0 {
		env := os.Environ()
		for _, k := range slices.Sorted(maps.Keys(p.Env)) {
			env = append(env, k+"="+p.Env[k])
		}
		cmd.Env = env
	}
	return cmd
}

const (
	// DefaultSSETimeout is the default time allowed for the SSE endpoint to answer a request.
	DefaultSSETimeout = 5 * time.Second

	// DefaultSSEReadTimeout is the default time an SSE stream may stay silent before it is dropped.
	DefaultSSEReadTimeout = 5 * time.Minute
)

// SSEServerParams describes a remote MCP server reached over Server-Sent Events.
//
// No connection is opened until the owning [Toolset] connects.
type SSEServerParams struct {
	// URL is the SSE endpoint.
	URL string

	// Headers are sent verbatim, with their exact case, on every request.
	Headers map[string]string

	// Timeout bounds how long a request waits for response headers.
	Timeout time.Duration

	// SSEReadTimeout bounds how long the event stream may stay silent.
	SSEReadTimeout time.Duration
}

var _ ConnectionParams = (*SSEServerParams)(nil)

// NewSSEServerParams returns the params for the SSE endpoint url with the given headers.
func NewSSEServerParams(url string, headers map[string]string) *SSEServerParams {
	return &SSEServerParams{
		URL:            url,
		Headers:        maps.Clone(headers),
		Timeout:        DefaultSSETimeout,
		SSEReadTimeout: DefaultSSEReadTimeout,
	}
}

// Kind implements [ConnectionParams].
func (*SSEServerParams) Kind() ConnectionKind { return KindSSE }

func (*SSEServerParams) isConnectionParams() {}

func (p *SSEServerParams) clone() *SSEServerParams {
	c := new(SSEServerParams)
	if err := deepcopy.Copy(c, *p); err != nil {
		// same source and destination type
		panic(fmt.Sprintf("mcptool: copy sse params: %v", err))
	}
	return c
}

// httpClient returns an [*http.Client] that adds p.Headers to every request.
func (p *SSEServerParams) httpClient() *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if p.Timeout > 0 {
		base.ResponseHeaderTimeout = p.Timeout
		base.TLSHandshakeTimeout = p.Timeout
	}

	return &http.Client{
		Transport: &headerTransport{
			base:        base,
			headers:     p.Headers,
			readTimeout: p.SSEReadTimeout,
		},
	}
}

// headerTransport is an [http.RoundTripper] injecting fixed headers.
type headerTransport struct {
	base        http.RoundTripper
	headers     map[string]string
	readTimeout time.Duration
}

var _ http.RoundTripper = (*headerTransport)(nil)

// RoundTrip implements [http.RoundTripper].
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		// keep the exact header case, some servers match it literally
		req.Header[k] = []string{v}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if t.readTimeout > 0 && isEventStream(resp) {
		resp.Body = newIdleTimeoutBody(resp.Body, t.readTimeout)
	}
	return resp, nil
}

func isEventStream(resp *http.Response) bool {
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return err == nil && mediaType == "text/event-stream"
}

// idleTimeoutBody closes the wrapped body once no read has completed for timeout.
type idleTimeoutBody struct {
	rc      io.ReadCloser
	timeout time.Duration

	once  sync.Once
	timer *time.Timer
}

func newIdleTimeoutBody(rc io.ReadCloser, timeout time.Duration) *idleTimeoutBody {
	b := &idleTimeoutBody{rc: rc, timeout: timeout}
	b.timer = time.AfterFunc(timeout, b.closeBody)
	return b
}

// Read implements [io.Reader].
func (b *idleTimeoutBody) Read(p []byte) (int, error) {
	n, err := b.rc.Read(p)
	if n > 0 {
		b.timer.Reset(b.timeout)
	}
	return n, err
}

// Close implements [io.Closer].
func (b *idleTimeoutBody) Close() error {
	b.timer.Stop()
	var err error
	b.once.Do(func() { err = b.rc.Close() })
	return err
}

func (b *idleTimeoutBody) closeBody() {
	b.once.Do(func() { _ = b.rc.Close() })
}

// cloneParams returns a deep copy of params.
func cloneParams(params ConnectionParams) ConnectionParams {
	switch p := params.(type) {
	case *StdioServerParams:
		if p == nil {
			return nil
		}
		return p.clone()
	case *SSEServerParams:
		if p == nil {
			return nil
		}
		return p.clone()
	default:
		return params
	}
}
