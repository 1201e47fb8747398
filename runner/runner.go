// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/mcp-agent/model"
	"github.com/go-a2a/mcp-agent/session"
	"github.com/go-a2a/mcp-agent/types"
)

// DefaultMaxSteps is the default number of model calls allowed for one user turn.
const DefaultMaxSteps = 10

var (
	// ErrMaxStepsExceeded is returned when the model keeps calling tools past the step limit.
	ErrMaxStepsExceeded = errors.New("max steps exceeded")

	// ErrEmptyResponse is returned when the model returns no candidate content.
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// Agent is the agent configuration a [Runner] drives.
type Agent interface {
	Name() string
	Instruction() string
	GenerateContentConfig() *genai.GenerateContentConfig
	CanonicalTools(ctx context.Context) ([]types.Tool, error)
}

// Runner runs the model loop of an agent over a session.
type Runner struct {
	agent    Agent
	model    model.Model
	sessions session.Service

	maxSteps       int
	maxConcurrency int
	logger         *slog.Logger
}

// Option configures a [Runner].
type Option func(*Runner)

// WithMaxSteps sets the number of model calls allowed for one user turn.
func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		r.maxSteps = n
	}
}

// WithMaxConcurrency limits the number of tool calls running at once. Zero or less means no limit.
func WithMaxConcurrency(n int) Option {
	return func(r *Runner) {
		r.maxConcurrency = n
	}
}

// WithSessionService sets the session service. The default is a new [session.InMemoryService].
func WithSessionService(svc session.Service) Option {
	return func(r *Runner) {
		r.sessions = svc
	}
}

// WithLogger sets the logger of the runner.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New returns a [Runner] for agent a backed by model m.
func New(a Agent, m model.Model, opts ...Option) *Runner {
	r := &Runner{
		agent:    a,
		model:    m,
		maxSteps: DefaultMaxSteps,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sessions == nil {
		r.sessions = session.NewInMemoryService()
	}
	if r.maxSteps <= 0 {
		r.maxSteps = DefaultMaxSteps
	}

	return r
}

// Sessions returns the session service of the runner.
func (r *Runner) Sessions() session.Service {
	return r.sessions
}

// Run sends text as a user turn in the session sessionID and returns the final text answer of the model.
//
// The session is created when it does not exist. Function calls requested by the
// model are answered with the agent tools until the model replies with text.
func (r *Runner) Run(ctx context.Context, sessionID, text string) (string, error) {
	ses, err := r.session(ctx, sessionID)
	if err != nil {
		return "", err
	}

	tools, err := r.agent.CanonicalTools(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		// a failing toolset only hides its own tools
		r.logger.WarnContext(ctx, "some toolsets are unavailable", slog.String("agent", r.agent.Name()), slog.Any("error", err))
	}
	toolsDict := r.toolsDict(ctx, tools)
	config := r.buildConfig(tools)

	ses.Append(genai.NewContentFromText(text, genai.RoleUser))

	for step := range r.maxSteps {
		contents, err := requestContents(ses.Contents())
		if err != nil {
			return "", err
		}

		r.logger.DebugContext(ctx, "calling model",
			slog.String("model", r.model.Name()),
			slog.String("session_id", ses.ID()),
			slog.Int("step", step),
			slog.Int("contents", len(contents)),
		)
		resp, err := r.model.GenerateContent(ctx, contents, config)
		if err != nil {
			return "", fmt.Errorf("generate content: %w", err)
		}
		if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", ErrEmptyResponse
		}

		content := resp.Candidates[0].Content
		if content.Role == "" {
			content.Role = string(genai.RoleModel)
		}
		populateClientFunctionCallID(content)
		ses.Append(content)

		funcCalls := functionCalls(content)
		if len(funcCalls) == 0 {
			return responseText(content), nil
		}

		funcResponse, err := r.handleFunctionCalls(ctx, funcCalls, toolsDict)
		if err != nil {
			return "", err
		}
		ses.Append(funcResponse)
	}

	return "", fmt.Errorf("%w: %d model calls without a final answer", ErrMaxStepsExceeded, r.maxSteps)
}

func (r *Runner) session(ctx context.Context, id string) (*session.Session, error) {
	if id != "" {
		ses, err := r.sessions.Get(ctx, id)
		if err == nil {
			return ses, nil
		}
		if !errors.Is(err, session.ErrSessionNotFound) {
			return nil, err
		}
	}

	return r.sessions.Create(ctx, id)
}

// toolsDict indexes tools by name. The first toolset providing a name wins.
func (r *Runner) toolsDict(ctx context.Context, tools []types.Tool) map[string]types.Tool {
	dict := make(map[string]types.Tool, len(tools))
	for _, t := range tools {
		if _, ok := dict[t.Name()]; ok {
			r.logger.WarnContext(ctx, "duplicate tool name ignored", slog.String("tool", t.Name()))
			continue
		}
		dict[t.Name()] = t
	}
	return dict
}

func (r *Runner) buildConfig(tools []types.Tool) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if base := r.agent.GenerateContentConfig(); base != nil {
		c := *base
		config = &c
	}

	if instruction := r.agent.Instruction(); instruction != "" && config.SystemInstruction == nil {
		config.SystemInstruction = genai.NewContentFromText(instruction, genai.RoleUser)
	}

	var decls []*genai.FunctionDeclaration
	seen := make(map[string]bool, len(tools))
	for _, t := range tools {
		if seen[t.Name()] {
			continue
		}
		seen[t.Name()] = true
		decls = append(decls, t.Declaration())
	}
	config.Tools = nil
	if len(decls) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	return config
}

func functionCalls(content *genai.Content) []*genai.FunctionCall {
	var calls []*genai.FunctionCall
	for _, part := range content.Parts {
		if part != nil && part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}

func responseText(content *genai.Content) string {
	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
