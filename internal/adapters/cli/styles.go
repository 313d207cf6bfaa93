package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Palette for banners and headings.
const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	successBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess).
			MarginTop(1)

	failureBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError).
			MarginTop(1)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)

// Per-file markers, padded so paths line up.
var (
	markCreated = color.New(color.FgGreen).Sprint("created ")
	markSkipped = color.New(color.FgYellow).Sprint("skipped ")
	markUpdated = color.New(color.FgBlue).Sprint("updated ")
	markFailed  = color.New(color.FgRed).Sprint("failed  ")
	markWarning = color.New(color.FgHiYellow).Sprint("warning ")
	markPlanned = color.New(color.FgCyan).Sprint("would create ")
	markPatch   = color.New(color.FgCyan).Sprint("would update ")
)
