// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"log/slog"

	"google.golang.org/genai"
)

// Config holds the settings shared by every request of a model.
type Config struct {
	// safetySettings contains safety settings applied when a request has none.
	safetySettings []*genai.SafetySetting

	// logger is the logger used for logging.
	logger *slog.Logger
}

func newConfig() Config {
	return Config{
		logger: slog.Default(),
	}
}

// Option is a function that modifies the [Config] model.
type Option interface {
	apply(base Config) Config
}

type safetySettingOption []*genai.SafetySetting

func (o safetySettingOption) apply(base Config) Config {
	base.safetySettings = append(base.safetySettings, o...)
	return base
}

// WithSafetySettings sets the default safety settings of the model.
func WithSafetySettings(settings []*genai.SafetySetting) Option {
	return safetySettingOption(settings)
}

type loggerOption struct{ *slog.Logger }

func (o loggerOption) apply(base Config) Config {
	base.logger = o.Logger
	return base
}

// WithLogger sets the logger of the model.
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}
