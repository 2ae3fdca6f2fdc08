// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides string, HTML, and file helpers for sahayak.
package util

import "github.com/mattn/go-runewidth"

// UNICODE: Truncation counts terminal columns, not bytes. Transcript
// bodies and file names mix Devanagari, Tamil, Telugu, and emoji;
// byte truncation would corrupt them and rune truncation would
// misjudge double-width characters.

// TruncateWidth truncates a string to a maximum display width, counting
// double-width characters as two columns. If the string is truncated,
// "..." is appended within the budget.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth > 3 {
		return runewidth.Truncate(s, maxWidth, "...")
	}
	return runewidth.Truncate(s, maxWidth, "")
}
