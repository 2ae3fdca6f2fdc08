// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the sahayak TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/krishisetu/sahayak-tui/internal/locale"
	"github.com/krishisetu/sahayak-tui/internal/ui/styles"
	"github.com/krishisetu/sahayak-tui/internal/util"
)

// StatusBar renders the single-line footer: conversation language on the
// left, activity flags in the middle, key hints on the right.
type StatusBar struct {
	theme *styles.Theme
	width int

	Language    locale.Language
	Loading     bool
	Recording   bool
	Fetching    bool
	Attachment  string // pending attachment file name, "" for none
	SpinnerView string // current spinner frame while loading
}

// NewStatusBar builds a status bar with the given theme.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme, Language: locale.Default}
}

// SetWidth sets the render width in columns.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the bar.
func (s *StatusBar) View() string {
	left := "🌾 " + s.Language.FullName()

	var flags []string
	switch {
	case s.Recording:
		flags = append(flags, s.theme.Recording.Render("● REC"))
	case s.Loading:
		flags = append(flags, s.theme.StatusFlag.Render(s.SpinnerView+" thinking"))
	case s.Fetching:
		flags = append(flags, s.theme.StatusFlag.Render("📍 locating"))
	}
	if s.Attachment != "" {
		flags = append(flags, s.theme.StatusFlag.Render("📎 "+util.TruncateWidth(s.Attachment, 20)))
	}

	right := s.theme.Hint.Render("enter send · ^r voice · ^g weather · ^a attach · ^t language · ^c quit")

	mid := strings.Join(flags, "  ")
	line := left
	if mid != "" {
		line += "  " + mid
	}

	gap := s.width - lipgloss.Width(line) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line += strings.Repeat(" ", gap) + right

	return s.theme.StatusBar.Width(s.width).Render(line)
}
