// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the credential set the agent is configured from.
//
// Four values are read, once, from the process environment:
//
//	GOOGLE_API_KEY              Gemini API key
//	POSTGRES_CONNECTION_STRING  "user:pass@host/db", prefixed with postgresql:// by the database toolset
//	CONNECTION_URL              SSE endpoint of the remote toolset
//	P5_API_KEY                  value of the P5APIKEY header sent to the remote toolset
//
// Loading never fails. A missing variable yields an empty value and
// [Credentials.Has] reports false for it. Callers that prefer to fail fast
// call [Credentials.Validate] explicitly.
//
// [LoadWithDotEnv] additionally reads dotenv files. File values only fill in
// variables the environment does not define; the process environment itself
// is never modified.
package config
