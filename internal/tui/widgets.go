package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ========================================
// Brand Colors - Kartoza standard palette
// ========================================

var (
	ColorOrange   = lipgloss.Color("#DDA036") // Primary/Active
	ColorBlue     = lipgloss.Color("#569FC6") // Secondary/Links
	ColorGray     = lipgloss.Color("#9A9EA0") // Inactive/Subtle
	ColorWhite    = lipgloss.Color("#FFFFFF") // Text
	ColorDarkGray = lipgloss.Color("#3A3A3A") // Background
	ColorRed      = lipgloss.Color("#E95420") // Error/Limiting
	ColorGreen    = lipgloss.Color("#4CAF50") // Success
)

// HeaderWidth is the standard width for the header
const HeaderWidth = 60

// ========================================
// Header Rendering
// ========================================

// RenderHeader renders the standard application header with the limiter
// state line. stateLabel is e.g. "Watching", "Limiting" or "Disabled".
func RenderHeader(stateLabel string, stateColor lipgloss.Color) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorOrange).
		Align(lipgloss.Center).
		Width(HeaderWidth)

	mottoStyle := lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorGray).
		Align(lipgloss.Center).
		Width(HeaderWidth)

	dividerStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(HeaderWidth)

	statusStyle := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(HeaderWidth)

	title := titleStyle.Render("Kartoza Audio Limiter")
	motto := mottoStyle.Render("keep the loud parts quiet")
	divider := dividerStyle.Render("────────────────────────────────────────────────────────────")

	stateStyled := lipgloss.NewStyle().
		Foreground(stateColor).
		Bold(true).
		Render(stateLabel)
	status := statusStyle.Render("Status: " + stateStyled)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		motto,
		divider,
		status,
		divider,
	)
}

// ========================================
// Footer Rendering
// ========================================

// RenderHelpFooter renders the standard help footer at the bottom of the screen
func RenderHelpFooter(helpText string, width int) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	footerStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center)

	return footerStyle.Render(helpStyle.Render(helpText))
}

// ========================================
// Layout Helpers
// ========================================

// LayoutWithHeaderFooter creates a standard layout with header at top and footer at bottom
func LayoutWithHeaderFooter(header, content, footer string, width, height int) string {
	mainSection := lipgloss.JoinVertical(
		lipgloss.Center,
		header,
		"",
		content,
	)

	centeredMain := lipgloss.Place(
		width,
		height-2,
		lipgloss.Center,
		lipgloss.Top,
		mainSection,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		centeredMain,
		footer,
	)
}

// ========================================
// Common Styles
// ========================================

// Title style for section headings
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorOrange)

// Label style for parameter labels
var LabelStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// Value style for displaying values
var ValueStyle = lipgloss.NewStyle().
	Foreground(ColorWhite)

// Active style for active/selected items
var ActiveStyle = lipgloss.NewStyle().
	Foreground(ColorOrange).
	Bold(true)

// Error style for error messages
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Bold(true)

// Success style for success messages
var SuccessStyle = lipgloss.NewStyle().
	Foreground(ColorGreen).
	Bold(true)
