// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the sahayak TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Green - Primary accent, assistant identity, success states
var Green = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}

// GreenDeep - Darker green for backgrounds
var GreenDeep = lipgloss.AdaptiveColor{Light: "#166534", Dark: "#14532D"}

// Saffron - Warm accent, recording indicator, warnings
var Saffron = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"}

// Sky - Location and weather accents
var Sky = lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"}

// Rose - Errors and failure notices
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1A1D1A"}

// SurfaceDim - Slightly darker/lighter surface for the status bar
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F4F4F5", Dark: "#141714"}

// Overlay - Borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E4E4E7", Dark: "#2F332F"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#D9E2D9"}

// TextSecondary - Labels, sender names, timestamps
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA89C"}

// TextMuted - Hints and placeholder text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#5D665D"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble - Earth tones
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#78350F", Dark: "#FDE68A"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#B45309"}

// Assistant message bubble - Leaf green tones
var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#14532D", Dark: "#D1FAE5"}
var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#15803D"}
