// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// All colors use Lip Gloss AdaptiveColor so the palette holds up on both
// light and dark terminals.

// Accent colors.
var (
	Indigo     = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	IndigoDeep = lipgloss.AdaptiveColor{Light: "#3730A3", Dark: "#312E81"}
	Teal       = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}
	Emerald    = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	Rose       = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}
	Amber      = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
)

// Surfaces.
var (
	Surface       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
	SurfaceDim    = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}
	SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#313244"}
	Border        = lipgloss.AdaptiveColor{Light: "#D4D4D8", Dark: "#45475A"}
)

// Text.
var (
	TextPrimary   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
	TextInverse   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
)

// Prompt and data panel colors.
var (
	PromptBg     = lipgloss.AdaptiveColor{Light: "#E0E7FF", Dark: "#3730A3"}
	PromptFg     = lipgloss.AdaptiveColor{Light: "#3730A3", Dark: "#E0E7FF"}
	PromptBorder = lipgloss.AdaptiveColor{Light: "#6366F1", Dark: "#6366F1"}
	DataBorder   = lipgloss.AdaptiveColor{Light: "#99F6E4", Dark: "#0D9488"}
)
