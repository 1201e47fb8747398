// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"slices"
	"sync"
	"time"

	"google.golang.org/genai"
)

// Session represents a conversation with its ordered content history.
type Session struct {
	id             string
	mu             sync.RWMutex
	contents       []*genai.Content
	lastUpdateTime time.Time
}

// NewSession creates a new session with the given id.
func NewSession(id string, lastUpdateTime time.Time) *Session {
	return &Session{
		id:             id,
		contents:       []*genai.Content{},
		lastUpdateTime: lastUpdateTime,
	}
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Contents returns a copy of the conversation history in order.
func (s *Session) Contents() []*genai.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.contents)
}

// Len returns the number of contents in the history.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contents)
}

// Append adds contents to the end of the history.
func (s *Session) Append(contents ...*genai.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents = append(s.contents, contents...)
	s.lastUpdateTime = time.Now()
}

// LastUpdateTime returns the last time this session was updated.
func (s *Session) LastUpdateTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdateTime
}
