// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"time"
)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered, append-only log of messages for one session.
// Append order equals rendering order; past entries are never reordered,
// edited, or removed.
//
// The transcript is the single source of truth for what the UI renders.
// Safe for concurrent use: sends, voice submissions, and location shares
// each append from their own goroutine while the UI reads.
type Transcript struct {
	mu        sync.Mutex
	messages  []*Message
	createdAt time.Time
	updatedAt time.Time
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	now := time.Now()
	return &Transcript{
		messages:  make([]*Message, 0),
		createdAt: now,
		updatedAt: now,
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the transcript. O(1), nil is ignored.
func (t *Transcript) Append(msg *Message) {
	if msg == nil {
		return
	}
	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.updatedAt = time.Now()
	t.mu.Unlock()
}

// AppendUser creates and appends a user message, returning it.
func (t *Transcript) AppendUser(body string) *Message {
	msg := NewUserMessage(body)
	t.Append(msg)
	return msg
}

// AppendAssistant creates and appends an assistant message, returning it.
func (t *Transcript) AppendAssistant(body string) *Message {
	msg := NewAssistantMessage(body)
	t.Append(msg)
	return msg
}

// All returns the ordered message sequence for rendering.
// The returned slice is a copy of the slice header; callers must not mutate
// the messages. IDs are stable, so incremental renderers never need to
// re-identify prior entries.
func (t *Transcript) All() []*Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// Last returns the most recent message, or nil if the transcript is empty.
func (t *Transcript) Last() *Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

// IsEmpty returns true if there are no messages.
func (t *Transcript) IsEmpty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages) == 0
}

// CreatedAt returns when the transcript was created.
func (t *Transcript) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns when the transcript last changed.
func (t *Transcript) UpdatedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updatedAt
}
