// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/krishisetu/sahayak-tui/internal/locale"
	"github.com/krishisetu/sahayak-tui/internal/ui/styles"
)

func TestStatusBarShowsLanguage(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(100)
	bar.Language = locale.Marathi

	if view := bar.View(); !strings.Contains(view, "marathi") {
		t.Errorf("view missing language name:\n%s", view)
	}
}

func TestStatusBarRecordingFlag(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(100)
	bar.Recording = true

	if view := bar.View(); !strings.Contains(view, "REC") {
		t.Errorf("view missing recording flag:\n%s", view)
	}
}

func TestStatusBarAttachmentName(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(100)
	bar.Attachment = "leaf.png"

	if view := bar.View(); !strings.Contains(view, "leaf.png") {
		t.Errorf("view missing attachment name:\n%s", view)
	}
}
