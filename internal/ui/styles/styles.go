// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the picker TUI.
// Colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// COLORS
// =============================================================================

// Purple - primary accent, selected rows
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - prompts, endpoint labels
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - active selection indicator
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - spec preset badges
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// TextPrimary - main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextMuted - hints, ids, secondary text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// Overlay - borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// THEME
// =============================================================================

// Theme bundles the precomputed styles the picker renders with.
type Theme struct {
	Border       lipgloss.Style
	Prompt       lipgloss.Style
	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	Badge        lipgloss.Style
	EndpointName lipgloss.Style
	Muted        lipgloss.Style
	Active       lipgloss.Style
	Status       lipgloss.Style
}

// NewTheme builds the default theme.
func NewTheme() *Theme {
	return &Theme{
		Border:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Overlay).Padding(0, 1),
		Prompt:       lipgloss.NewStyle().Foreground(Cyan).Bold(true),
		Row:          lipgloss.NewStyle().Foreground(TextPrimary),
		RowSelected:  lipgloss.NewStyle().Foreground(Purple).Bold(true),
		Badge:        lipgloss.NewStyle().Foreground(Amber),
		EndpointName: lipgloss.NewStyle().Foreground(Cyan),
		Muted:        lipgloss.NewStyle().Foreground(TextMuted),
		Active:       lipgloss.NewStyle().Foreground(Emerald).Bold(true),
		Status:       lipgloss.NewStyle().Foreground(TextMuted).Italic(true),
	}
}
