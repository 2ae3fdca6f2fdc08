// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/krishisetu/sahayak-tui/internal/voice"
)

// chromeHeight is the vertical space the header, input box, status bar,
// and notice line take away from the viewport.
const chromeHeight = 6

// Update routes Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.statusBar.SetWidth(msg.Width)
		m.input.Width = msg.Width - 6
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeHeight
		}
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		// Keep the transcript current while a send is in flight so the
		// optimistic user entry shows before the reply lands.
		if m.orch.State().Loading {
			m.refreshTranscript()
			m.viewport.GotoBottom()
		}
		return m, cmd

	case BootstrapDoneMsg, ReplyDoneMsg, LocationDoneMsg:
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case RecordingStartedMsg:
		if msg.Err != nil {
			if voice.IsMediaAccess(msg.Err) {
				m.notice = "Microphone unavailable. Check your recorder setup."
			} else {
				m.notice = "Could not start recording."
			}
		} else {
			m.notice = ""
		}
		return m, nil

	case RecordingStoppedMsg:
		if msg.Submitted {
			m.refreshTranscript()
			m.viewport.GotoBottom()
		} else {
			m.notice = "Didn't catch that. Please try speaking again."
		}
		return m, nil

	case LanguageSwitchedMsg:
		m.input.Placeholder = msg.Language.Placeholder()
		m.statusBar.Language = msg.Language
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case AttachmentSelectedMsg:
		if msg.Err != nil {
			m.notice = "Could not attach image: " + msg.Err.Error()
		} else {
			m.notice = ""
		}
		return m, nil

	case ConfigReloadedMsg:
		lang := msg.Config.Language()
		if lang != m.orch.Language() {
			return m, switchLanguageCmd(m.orch, lang)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMap

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		if m.mode == modeAttach {
			m.mode = modeMessage
			m.input.SetValue("")
			m.input.Prompt = "> "
			m.input.Placeholder = m.orch.Language().Placeholder()
		}
		m.notice = ""
		return m, nil

	case key.Matches(msg, keys.Submit):
		return m.handleSubmit()

	case key.Matches(msg, keys.Record):
		if m.orch.State().Recording {
			return m, stopRecordingCmd(m.orch)
		}
		return m, startRecordingCmd(m.orch)

	case key.Matches(msg, keys.Location):
		return m, shareLocationCmd(m.orch)

	case key.Matches(msg, keys.Attach):
		m.mode = modeAttach
		m.input.SetValue("")
		m.input.Prompt = "📎 "
		m.input.Placeholder = "Path to an image file, Enter to attach, Esc to cancel"
		return m, nil

	case key.Matches(msg, keys.Language):
		return m, switchLanguageCmd(m.orch, nextLanguage(m.orch.Language()))

	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down),
		key.Matches(msg, keys.PageUp), key.Matches(msg, keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	if m.mode == modeAttach {
		m.mode = modeMessage
		m.input.SetValue("")
		m.input.Prompt = "> "
		m.input.Placeholder = m.orch.Language().Placeholder()
		if value == "" {
			return m, nil
		}
		return m, selectAttachmentCmd(m.orch, value)
	}

	// An empty submit still sends when an image is staged; the attachment
	// alone is the message.
	if value == "" && m.orch.PendingAttachment() == nil {
		return m, nil
	}
	m.input.SetValue("")
	m.notice = ""
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, sendCmd(m.orch, value)
}
