// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the sahayak TUI.
//
// This file defines the Bubble Tea commands that run orchestrator work off
// the update loop.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krishisetu/sahayak-tui/internal/locale"
	"github.com/krishisetu/sahayak-tui/internal/orchestrator"
)

func bootstrapCmd(o *orchestrator.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		o.Bootstrap(context.Background())
		return BootstrapDoneMsg{}
	}
}

func sendCmd(o *orchestrator.Orchestrator, text string) tea.Cmd {
	return func() tea.Msg {
		o.Send(context.Background(), text, orchestrator.SendOptions{})
		return ReplyDoneMsg{}
	}
}

func startRecordingCmd(o *orchestrator.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		return RecordingStartedMsg{Err: o.StartRecording(context.Background())}
	}
}

func stopRecordingCmd(o *orchestrator.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		return RecordingStoppedMsg{Submitted: o.StopRecording(context.Background())}
	}
}

func shareLocationCmd(o *orchestrator.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		o.ShareLocation(context.Background())
		return LocationDoneMsg{}
	}
}

func switchLanguageCmd(o *orchestrator.Orchestrator, lang locale.Language) tea.Cmd {
	return func() tea.Msg {
		o.SetLanguage(context.Background(), lang)
		return LanguageSwitchedMsg{Language: lang}
	}
}

func selectAttachmentCmd(o *orchestrator.Orchestrator, path string) tea.Cmd {
	return func() tea.Msg {
		att, err := o.SelectAttachment(path)
		return AttachmentSelectedMsg{Attachment: att, Err: err}
	}
}
