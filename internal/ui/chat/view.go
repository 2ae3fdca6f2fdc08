// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/krishisetu/sahayak-tui/internal/model"
	"github.com/krishisetu/sahayak-tui/internal/util"
)

// View renders the full frame: header, transcript viewport, notice line,
// input box, status bar.
func (m Model) View() string {
	if !m.ready {
		return "Starting sahayak..."
	}

	header := m.theme.Header.Render("🌾 Kisan Sahayak — Farmer Scheme Assistant")

	notice := ""
	if m.notice != "" {
		notice = m.theme.Hint.Render(m.notice)
	}

	state := m.orch.State()
	m.statusBar.Loading = state.Loading
	m.statusBar.Recording = state.Recording
	m.statusBar.Fetching = state.FetchingLocation
	m.statusBar.SpinnerView = m.spinner.View()
	if att := m.orch.PendingAttachment(); att != nil {
		m.statusBar.Attachment = att.Name
	} else {
		m.statusBar.Attachment = ""
	}

	input := m.theme.InputBorder.Width(m.width - 2).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		notice,
		input,
		m.statusBar.View(),
	)
}

// refreshTranscript re-renders the transcript into the viewport.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
}

func (m *Model) renderTranscript() string {
	msgs := m.orch.Transcript().All()
	if len(msgs) == 0 {
		return m.theme.Hint.Render("Connecting to the assistant...")
	}

	width := m.viewport.Width - 4
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderMessage(msg, width))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderMessage renders one transcript entry: a sender label line, then
// the body flattened from the service's HTML subset.
func (m *Model) renderMessage(msg *model.Message, width int) string {
	label := m.theme.AssistantLabel
	body := m.theme.AssistantBody
	if msg.Sender == model.SenderUser {
		label = m.theme.UserLabel
		body = m.theme.UserBody
	}

	text := util.RenderHTML(msg.Body, util.Emphasis{
		Bold:   func(s string) string { return m.theme.Bold.Render(s) },
		Italic: func(s string) string { return m.theme.Italic.Render(s) },
	})

	head := label.Render(msg.Sender.DisplayName()) + " " +
		m.theme.Timestamp.Render(msg.CreatedAt.Format("15:04"))
	return head + "\n" + body.Width(width).Render(text)
}
