// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the sahayak TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/krishisetu/sahayak-tui/internal/locale"
	"github.com/krishisetu/sahayak-tui/internal/orchestrator"
	"github.com/krishisetu/sahayak-tui/internal/ui/components"
	"github.com/krishisetu/sahayak-tui/internal/ui/styles"
)

// inputMode tracks what the text field currently collects.
type inputMode int

const (
	modeMessage inputMode = iota // normal chat input
	modeAttach                   // collecting an image path
)

// Model is the Bubble Tea model for the chat view.
type Model struct {
	orch   *orchestrator.Orchestrator
	theme  *styles.Theme
	keyMap KeyMap

	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model
	statusBar *components.StatusBar

	width  int
	height int
	ready  bool

	mode   inputMode
	notice string // transient one-line notice above the input
}

// New builds the chat view around an orchestrator.
func New(orch *orchestrator.Orchestrator) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = orch.Language().Placeholder()
	input.Prompt = "> "
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Green)

	bar := components.NewStatusBar(theme)
	bar.Language = orch.Language()

	return Model{
		orch:      orch,
		theme:     theme,
		keyMap:    DefaultKeyMap(),
		input:     input,
		spinner:   sp,
		statusBar: bar,
	}
}

// Init starts the spinner and fetches the opening greeting.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, bootstrapCmd(m.orch))
}

// nextLanguage returns the language after current in the supported cycle.
func nextLanguage(current locale.Language) locale.Language {
	supported := locale.Supported()
	for i, l := range supported {
		if l == current {
			return supported[(i+1)%len(supported)]
		}
	}
	return locale.Default
}
