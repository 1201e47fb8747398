// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/go-a2a/mcp-agent/pkg/logging"
)

var (
	// ErrSessionNotFound is returned when no session exists for an id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when creating a session whose id is taken.
	ErrSessionExists = errors.New("session already exists")
)

// Service manages conversation sessions.
type Service interface {
	Create(ctx context.Context, id string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryService is an in-memory implementation of the [Service].
type InMemoryService struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

var _ Service = (*InMemoryService)(nil)

// NewInMemoryService creates a new [InMemoryService].
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{
		sessions: make(map[string]*Session),
	}
}

// Create creates a new session. An empty id is replaced by a random UUID.
func (s *InMemoryService) Create(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if _, ok := s.sessions[id]; ok {
		return nil, fmt.Errorf("create session %s: %w", id, ErrSessionExists)
	}

	logging.FromContext(ctx).DebugContext(ctx, "Creating session", slog.String("session_id", id))

	ses := NewSession(id, time.Now())
	s.sessions[id] = ses

	return ses, nil
}

// Get retrieves a session by id.
func (s *InMemoryService) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ses, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get session %s: %w", id, ErrSessionNotFound)
	}

	return ses, nil
}

// List returns the ids of every session in sorted order.
func (s *InMemoryService) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.sessions)), nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *InMemoryService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.FromContext(ctx).DebugContext(ctx, "Deleting session", slog.String("session_id", id))
	delete(s.sessions, id)

	return nil
}
