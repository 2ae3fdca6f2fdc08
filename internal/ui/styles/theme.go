// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Theme bundles the prebuilt styles the chat view renders with.
type Theme struct {
	// Transcript
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	UserBody       lipgloss.Style
	AssistantBody  lipgloss.Style
	Timestamp      lipgloss.Style

	// Inline emphasis inside message bodies
	Bold   lipgloss.Style
	Italic lipgloss.Style

	// Chrome
	Header      lipgloss.Style
	StatusBar   lipgloss.Style
	StatusFlag  lipgloss.Style
	Recording   lipgloss.Style
	InputBorder lipgloss.Style
	Hint        lipgloss.Style
}

// NewTheme builds the default theme.
func NewTheme() *Theme {
	return &Theme{
		UserLabel: lipgloss.NewStyle().
			Foreground(UserBubbleFg).
			Bold(true),
		AssistantLabel: lipgloss.NewStyle().
			Foreground(AssistantBubbleFg).
			Bold(true),
		UserBody: lipgloss.NewStyle().
			Foreground(TextPrimary).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(UserBubbleBorder).
			PaddingLeft(1),
		AssistantBody: lipgloss.NewStyle().
			Foreground(TextPrimary).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(AssistantBubbleBorder).
			PaddingLeft(1),
		Timestamp: lipgloss.NewStyle().
			Foreground(TextMuted),

		Bold:   lipgloss.NewStyle().Bold(true),
		Italic: lipgloss.NewStyle().Italic(true).Foreground(TextSecondary),

		Header: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(TextSecondary).
			Background(SurfaceDim).
			Padding(0, 1),
		StatusFlag: lipgloss.NewStyle().
			Foreground(Sky).
			Bold(true),
		Recording: lipgloss.NewStyle().
			Foreground(Saffron).
			Bold(true),
		InputBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Overlay).
			Padding(0, 1),
		Hint: lipgloss.NewStyle().
			Foreground(TextMuted),
	}
}

// Apply forces the light or dark palette. Outside a terminal the
// background cannot be detected, so config gets the final word.
func Apply(theme string) {
	lipgloss.SetHasDarkBackground(theme != "light")
}
