// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from [context.Context] values so that
// every layer logs through the logger the command configured:
//
//	logger, err := logging.New(os.Stderr, slog.LevelInfo, logging.FormatJSON)
//	if err != nil {
//		return err
//	}
//	ctx = logging.NewContext(ctx, logger)
//
//	logging.FromContext(ctx).Info("connected", slog.String("toolset", name))
//
// When no logger is found in the context, [FromContext] returns [slog.Default].
//
// Do not log secrets. Credentials implement [slog.LogValuer] and only log
// their presence.
package logging
