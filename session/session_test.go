// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/go-a2a/mcp-agent/session"
)

func TestInMemoryService(t *testing.T) {
	ctx := t.Context()
	svc := session.NewInMemoryService()

	ses, err := svc.Create(ctx, "chat")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ses.ID() != "chat" {
		t.Fatalf("ID() = %q, want %q", ses.ID(), "chat")
	}

	if _, err := svc.Create(ctx, "chat"); !errors.Is(err, session.ErrSessionExists) {
		t.Fatalf("Create duplicate: got %v, want %v", err, session.ErrSessionExists)
	}

	got, err := svc.Get(ctx, "chat")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != ses {
		t.Fatal("Get returned a different session")
	}

	generated, err := svc.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uuid.Parse(generated.ID()); err != nil {
		t.Fatalf("generated id %q is not a UUID: %v", generated.ID(), err)
	}

	ids, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("List() = %v, want 2 ids", ids)
	}

	if err := svc.Delete(ctx, "chat"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "chat"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("Get after Delete: got %v, want %v", err, session.ErrSessionNotFound)
	}
	if err := svc.Delete(ctx, "chat"); err != nil {
		t.Fatalf("Delete unknown: %v", err)
	}
}

func TestSessionAppend(t *testing.T) {
	ses := session.NewSession("s", time.Unix(0, 0))
	before := ses.LastUpdateTime()

	user := genai.NewContentFromText("hello", genai.RoleUser)
	reply := genai.NewContentFromText("hi", genai.RoleModel)
	ses.Append(user)
	ses.Append(reply)

	want := []*genai.Content{user, reply}
	if diff := cmp.Diff(want, ses.Contents()); diff != "" {
		t.Fatalf("Contents() mismatch (-want +got):\n%s", diff)
	}
	if !ses.LastUpdateTime().After(before) {
		t.Fatal("Append did not advance LastUpdateTime")
	}

	// mutating the returned slice must not affect the session
	contents := ses.Contents()
	contents[0] = nil
	if ses.Contents()[0] != user {
		t.Fatal("Contents() exposed the internal slice")
	}
}

func TestSessionConcurrentAppend(t *testing.T) {
	ses := session.NewSession("s", time.Unix(0, 0))

	const n = 50
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ses.Append(genai.NewContentFromText("x", genai.RoleUser))
		}()
	}
	wg.Wait()

	if got := ses.Len(); got != n {
		t.Fatalf("Len() = %d, want %d", got, n)
	}
}
