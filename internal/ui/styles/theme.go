// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the datamock TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER AND STATUS BAR STYLES
	// ==========================================================================

	Header       lipgloss.Style
	HeaderBrand  lipgloss.Style
	HeaderUser   lipgloss.Style
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SIDEBAR AND SESSION LIST STYLES
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarHeading      lipgloss.Style
	SessionItem         lipgloss.Style
	SessionItemSelected lipgloss.Style
	SessionMeta         lipgloss.Style

	// ==========================================================================
	// EXCHANGE STYLES
	// ==========================================================================

	PromptBubble  lipgloss.Style
	DataPanel     lipgloss.Style
	DataEmpty     lipgloss.Style
	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style
	EditBadge        lipgloss.Style

	// ==========================================================================
	// FORM STYLES (login and registration)
	// ==========================================================================

	FormBox          lipgloss.Style
	FormTitle        lipgloss.Style
	FormLabel        lipgloss.Style
	FormFieldFocused lipgloss.Style
	FormError        lipgloss.Style
	FormHint         lipgloss.Style
	ButtonActive     lipgloss.Style
	ButtonInactive   lipgloss.Style

	// ==========================================================================
	// FEEDBACK STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. The background
// is detected from the terminal.
func NewTheme() *Theme {
	return newTheme(termenv.HasDarkBackground())
}

// NewThemeWithBackground creates a theme for the configured background,
// "dark" or "light", overriding terminal detection. Any other value falls
// back to detection.
func NewThemeWithBackground(pref string) *Theme {
	switch pref {
	case "dark":
		return newTheme(true)
	case "light":
		return newTheme(false)
	}
	return NewTheme()
}

func newTheme(isDark bool) *Theme {
	// Adaptive colors resolve against the renderer's idea of the
	// background, so it must agree with the theme.
	lipgloss.DefaultRenderer().SetHasDarkBackground(isDark)
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		Padding(0, 1)
	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)
	t.HeaderUser = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Border).
		Padding(0, 1)
	t.SidebarHeading = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary).
		MarginTop(1)
	t.SessionItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)
	t.SessionItemSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Bold(true).
		Padding(0, 1)
	t.SessionMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Exchanges
	t.PromptBubble = lipgloss.NewStyle().
		Foreground(PromptFg).
		Background(PromptBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(PromptBorder).
		Padding(0, 2).
		MarginLeft(4)
	t.DataPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(DataBorder).
		Padding(0, 1)
	t.DataEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(0, 1)
	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Border)
	t.TableCell = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.TableSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(IndigoDeep)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)
	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.EditBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Amber).
		Padding(0, 1)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 3)
	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		MarginBottom(1)
	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.FormFieldFocused = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)
	t.FormError = lipgloss.NewStyle().
		Foreground(Rose)
	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.ButtonActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 3)
	t.ButtonInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceBright).
		Padding(0, 3)

	// Feedback
	t.Spinner = lipgloss.NewStyle().
		Foreground(Teal)
	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)
	t.ToastError = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Rose).
		Padding(0, 2)
	t.ToastInfo = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Padding(0, 2)
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
}
