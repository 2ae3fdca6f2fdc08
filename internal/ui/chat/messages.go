// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the sahayak TUI.
//
// This file defines all Bubble Tea message types used by the chat
// interface. The orchestrator mutates the transcript synchronously inside
// its methods; these messages only tell the view that a unit of work
// finished and the transcript should be re-rendered.
package chat

import (
	"github.com/krishisetu/sahayak-tui/internal/attachment"
	"github.com/krishisetu/sahayak-tui/internal/config"
	"github.com/krishisetu/sahayak-tui/internal/locale"
)

// BootstrapDoneMsg signals that the opening greeting arrived.
type BootstrapDoneMsg struct{}

// ReplyDoneMsg signals that a send round trip finished.
type ReplyDoneMsg struct{}

// RecordingStartedMsg reports the outcome of opening the microphone.
type RecordingStartedMsg struct {
	Err error
}

// RecordingStoppedMsg signals that the capture finished. Submitted is
// false when the clip was dropped without producing a message.
type RecordingStoppedMsg struct {
	Submitted bool
}

// LocationDoneMsg signals that the location share flow finished.
type LocationDoneMsg struct{}

// LanguageSwitchedMsg signals that the session restarted in a new
// language.
type LanguageSwitchedMsg struct {
	Language locale.Language
}

// AttachmentSelectedMsg reports the outcome of staging an image.
type AttachmentSelectedMsg struct {
	Attachment *attachment.Attachment
	Err        error
}

// ConfigReloadedMsg delivers a hot-reloaded configuration.
type ConfigReloadedMsg struct {
	Config *config.Config
}
