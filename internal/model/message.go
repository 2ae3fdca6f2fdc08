// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender represents who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderAssistant:
		return "Sahayak"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single entry in the session transcript.
//
// Body is either plain text (user messages, client-generated notices) or
// opaque HTML supplied by the assistant service and passed through untouched.
// The attachment itself is never retained here; HasAttachment only marks that
// an image was sent alongside the text.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`

	HasAttachment bool `json:"has_attachment,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(sender Sender, body string) *Message {
	return &Message{
		ID:        generateID(),
		Sender:    sender,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

// NewUserMessage creates a new user-authored message.
func NewUserMessage(body string) *Message {
	return NewMessage(SenderUser, body)
}

// NewAssistantMessage creates a new assistant-authored message.
func NewAssistantMessage(body string) *Message {
	return NewMessage(SenderAssistant, body)
}

// Preview returns a truncated preview of the message body.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Body)
	if len(runes) <= maxLen {
		return m.Body
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no body.
func (m *Message) IsEmpty() bool {
	return len(m.Body) == 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID. Ordering comes from the transcript,
// not from the ID, so randomness is fine here.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
