// ABOUTME: Defines lipgloss style constants for the board canvas, cards, panels, and status bar.
// ABOUTME: Provides the canvas palette used when compositing cards in z-order.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Board surface
	BackgroundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	// Cards
	CardStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	CardActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	// Archive drop zone
	ZoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ZoneHotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	// Chrome
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	// Overlay panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(10)
	ValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	// Input line
	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// boardPalette maps canvas palette indices to styles.
func boardPalette() map[paletteIndex]lipgloss.Style {
	return map[paletteIndex]lipgloss.Style{
		styleBackground: BackgroundStyle,
		styleCard:       CardStyle,
		styleCardActive: CardActiveStyle,
		styleZone:       ZoneStyle,
		styleZoneHot:    ZoneHotStyle,
	}
}
