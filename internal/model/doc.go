// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the session transcript.
//
// This package defines the core domain types used throughout the application
// for representing the conversation between the user and the assistant.
//
// # Key Types
//
//   - Transcript: Append-only, ordered log of messages for one session
//   - Message: Single message with sender, body, timestamp, and attachment flag
//   - Sender: Message sender enumeration (user, assistant)
//
// # Usage
//
// Create a transcript and append messages:
//
//	tr := model.NewTranscript()
//	tr.Append(model.NewUserMessage("I own 2 acres in Pune"))
//	for _, msg := range tr.All() {
//	    fmt.Println(msg.Sender, msg.Body)
//	}
package model
