// Package styles centralizes the lipgloss styles shared by the ui
// components so tables, prompts and progress rendering stay visually
// consistent.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette colors.
var (
	// Primary is the main accent color (cyan/teal).
	Primary color.Color = lipgloss.Color("62")

	// Accent highlights selected/active items (pink).
	Accent color.Color = lipgloss.Color("212")

	// Success marks passing builds and clean status (green).
	Success color.Color = lipgloss.Color("82")

	// Error marks failures and error diagnostics (red).
	Error color.Color = lipgloss.Color("196")

	// Warning marks warning diagnostics and stale entries (orange).
	Warning color.Color = lipgloss.Color("214")

	// Muted is for secondary text like paths and timestamps (gray).
	Muted color.Color = lipgloss.Color("240")
)

// Shared styles.
var (
	Bold = lipgloss.NewStyle().Bold(true)

	AccentStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)
