package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the editor view.
type Styles struct {
	// Chrome
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Muted     lipgloss.Style

	// Slot table
	SlotName     lipgloss.Style
	SlotSelected lipgloss.Style
	ItemName     lipgloss.Style
	Exotic       lipgloss.Style
	Pinned       lipgloss.Style
	Excluded     lipgloss.Style

	// Notices
	NoticeError   lipgloss.Style
	NoticeWarning lipgloss.Style
	NoticeInfo    lipgloss.Style

	// Picker overlay
	OverlayBorder        lipgloss.Style
	OverlaySelected      lipgloss.Style
	OverlayNormal        lipgloss.Style
	OverlayMatch         lipgloss.Style
	OverlayMatchSelected lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),

		SlotName: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		SlotSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("215")).
			Bold(true),
		ItemName: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Exotic: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")), // exotic gold
		Pinned: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")), // muted green
		Excluded: lipgloss.NewStyle().
			Foreground(lipgloss.Color("131")).
			Strikethrough(true),

		NoticeError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")),
		NoticeWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		NoticeInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		OverlaySelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("215")),
		OverlayNormal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		OverlayMatch: lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")),
		OverlayMatchSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true),
	}
}
