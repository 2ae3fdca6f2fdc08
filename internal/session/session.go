// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the conversation session identity and lifecycle.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/krishisetu/sahayak-tui/internal/locale"
)

// =============================================================================
// SESSION
// =============================================================================

// Session scopes one continuous conversation with the assistant service.
//
// The identifier is generated once and is immutable for the session's
// lifetime; it only needs to be unique with overwhelming probability within
// this process, since it merely scopes server-side conversational state.
// Changing language never mutates a session: the orchestrator destroys the
// old one and creates a new one, dropping the transcript with it.
type Session struct {
	id        string
	language  locale.Language
	createdAt time.Time
	destroyed bool
}

// New creates a session for the given language.
func New(lang locale.Language) *Session {
	return &Session{
		id:        generateSessionID(),
		language:  lang,
		createdAt: time.Now(),
	}
}

// ID returns the opaque session identifier, or "" after Destroy.
func (s *Session) ID() string {
	if s.destroyed {
		return ""
	}
	return s.id
}

// Language returns the session's language.
func (s *Session) Language() locale.Language {
	return s.language
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Destroy invalidates the session. Any later use of its ID is a bug, and
// returning "" from ID makes that visible at the service boundary instead
// of silently resurrecting server-side state.
func (s *Session) Destroy() {
	s.destroyed = true
}

// Destroyed reports whether the session has been destroyed.
func (s *Session) Destroyed() bool {
	return s.destroyed
}

// generateSessionID creates the opaque per-session identifier.
func generateSessionID() string {
	return "tui_user_" + uuid.NewString()
}
