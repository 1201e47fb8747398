// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command mcp-agent runs the MCP agent from the command line.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	mcpagent "github.com/go-a2a/mcp-agent"
	"github.com/go-a2a/mcp-agent/agent"
	"github.com/go-a2a/mcp-agent/config"
	"github.com/go-a2a/mcp-agent/model"
	"github.com/go-a2a/mcp-agent/pkg/logging"
	"github.com/go-a2a/mcp-agent/runner"
	"github.com/go-a2a/mcp-agent/tool/mcptool"
)

var usage = heredoc.Doc(`
	mcp-agent - a Gemini agent backed by postgres, weather and remote MCP servers

	USAGE:
	  mcp-agent [global flags] <command> [flags]

	COMMANDS:
	  describe   print the agent and its toolsets
	  tools      connect to every toolset and list its tools
	  run        chat with the agent, or answer one -prompt
	  version    print the version

	GLOBAL FLAGS:
`)

// exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// stringsFlag is a repeatable string flag.
type stringsFlag []string

func (f *stringsFlag) String() string { return strings.Join(*f, ",") }

func (f *stringsFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

// app holds what every command needs.
type app struct {
	creds  *config.Credentials
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// toolsetOptions are applied to every toolset after the defaults.
	toolsetOptions []mcptool.ToolsetOption
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mcp-agent", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var envFiles stringsFlag
	fs.Var(&envFiles, "env-file", "dotenv file to read, may be repeated (default .env)")
	strict := fs.Bool("strict", false, "fail when a credential is missing or malformed")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn or error")
	logFormat := fs.String("log-format", string(logging.FormatText), "log format: text or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	if cmd == "version" {
		fmt.Fprintln(stdout, mcpagent.Version)
		return exitOK
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "mcp-agent: %v\n", err)
		return exitUsage
	}
	logger, err := logging.New(stderr, level, logging.Format(*logFormat))
	if err != nil {
		fmt.Fprintf(stderr, "mcp-agent: %v\n", err)
		return exitUsage
	}
	ctx = logging.NewContext(ctx, logger)

	if len(envFiles) == 0 {
		envFiles = stringsFlag{".env"}
	}
	creds, err := config.LoadWithDotEnv(envFiles...)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load credentials", slog.Any("error", err))
		return exitError
	}
	logger.DebugContext(ctx, "loaded credentials", slog.Any("credentials", creds))
	if *strict {
		if err := creds.Validate(); err != nil {
			logger.ErrorContext(ctx, "invalid credentials", slog.Any("error", err))
			return exitError
		}
	}

	a := &app{
		creds:  creds,
		logger: logger,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	switch cmd {
	case "describe":
		err = a.describe(ctx, cmdArgs)
	case "tools":
		err = a.tools(ctx, cmdArgs)
	case "run":
		err = a.run(ctx, cmdArgs)
	default:
		fmt.Fprintf(stderr, "mcp-agent: unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.As(err, new(usageError)):
		fmt.Fprintf(stderr, "mcp-agent %s: %v\n", cmd, err)
		return exitUsage
	default:
		logger.ErrorContext(ctx, "command failed", slog.String("command", cmd), slog.Any("error", err))
		return exitError
	}
}

// usageError reports a malformed command line.
type usageError string

func (e usageError) Error() string { return string(e) }

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("mcp-agent "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parseFlags parses args into fs. Malformed flags become a [usageError].
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError(err.Error())
	}
	if fs.NArg() > 0 {
		return usageError(fmt.Sprintf("unexpected arguments %q", fs.Args()))
	}
	return nil
}

func (a *app) rootAgent() *agent.LLMAgent {
	opts := append([]mcptool.ToolsetOption{mcptool.WithLogger(a.logger)}, a.toolsetOptions...)
	return mcpagent.NewRootAgent(a.creds, opts...)
}

func (a *app) describe(ctx context.Context, args []string) error {
	fs := a.newFlagSet("describe")
	format := fs.String("format", "yaml", "output format: yaml or json")
	showSecrets := fs.Bool("show-secrets", false, "print credentials unmasked")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	manifest := mcpagent.Manifest(a.rootAgent(), !*showSecrets)

	switch *format {
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(manifest); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		if err := json.MarshalWrite(a.stdout, manifest, jsontext.WithIndent("  ")); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err := fmt.Fprintln(a.stdout)
		return err
	default:
		return usageError(fmt.Sprintf("unknown format %q", *format))
	}
}

func (a *app) tools(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tools")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	root := a.rootAgent()
	defer func() {
		if err := root.Close(); err != nil {
			a.logger.WarnContext(ctx, "failed to close toolsets", slog.Any("error", err))
		}
	}()

	var errs []error
	for _, ts := range root.Toolsets() {
		fmt.Fprintf(a.stdout, "%s:\n", ts.Name())
		tools, err := ts.Tools(ctx)
		if err != nil {
			fmt.Fprintf(a.stdout, "  error: %v\n", err)
			errs = append(errs, fmt.Errorf("toolset %q: %w", ts.Name(), err))
			continue
		}
		for _, t := range tools {
			fmt.Fprintf(a.stdout, "  - %s: %s\n", t.Name(), firstLine(t.Description()))
		}
	}

	return errors.Join(errs...)
}

func (a *app) run(ctx context.Context, args []string) error {
	fs := a.newFlagSet("run")
	prompt := fs.String("prompt", "", "answer this prompt and exit")
	maxSteps := fs.Int("max-steps", runner.DefaultMaxSteps, "model calls allowed per user turn")
	maxConcurrency := fs.Int("max-concurrency", 0, "tool calls running at once, 0 for no limit")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if !a.creds.Has(config.EnvGoogleAPIKey) {
		return fmt.Errorf("%s is not set", config.EnvGoogleAPIKey)
	}

	root := a.rootAgent()
	defer func() {
		if err := root.Close(); err != nil {
			a.logger.WarnContext(ctx, "failed to close toolsets", slog.Any("error", err))
		}
	}()

	gemini, err := model.NewGemini(ctx, a.creds.GoogleAPIKey(), root.Model(), model.WithLogger(a.logger))
	if err != nil {
		return err
	}
	r := runner.New(root, gemini,
		runner.WithMaxSteps(*maxSteps),
		runner.WithMaxConcurrency(*maxConcurrency),
		runner.WithLogger(a.logger),
	)
	sessionID := uuid.NewString()

	if *prompt != "" {
		answer, err := r.Run(ctx, sessionID, *prompt)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, answer)
		return nil
	}

	return a.chat(ctx, r, sessionID)
}

// turnRunner answers one user turn of a session.
type turnRunner interface {
	Run(ctx context.Context, sessionID, text string) (string, error)
}

// chat reads one user turn per line until EOF or "exit".
func (a *app) chat(ctx context.Context, r turnRunner, sessionID string) error {
	scanner := bufio.NewScanner(a.stdin)
	for {
		fmt.Fprint(a.stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.stdout)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		answer, err := r.Run(ctx, sessionID, line)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			a.logger.ErrorContext(ctx, "turn failed", slog.Any("error", err))
			continue
		}
		fmt.Fprintln(a.stdout, answer)
	}
}

func firstLine(s string) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	return s
}
