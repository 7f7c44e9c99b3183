package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	landFg    = lipgloss.Color("#5B8DB8")
	hoverFg   = lipgloss.Color("#FFA500")
	goodFg    = lipgloss.Color("#22C55E")
	badFg     = lipgloss.Color("#EF4444")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	goodStyle   = lipgloss.NewStyle().Foreground(goodFg).Bold(true)
	badStyle    = lipgloss.NewStyle().Foreground(badFg).Bold(true)
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(badFg).Bold(true)

	mapStyles = map[layer]lipgloss.Style{
		layerOutline: lipgloss.NewStyle().Foreground(landFg),
		layerHover:   lipgloss.NewStyle().Foreground(hoverFg),
		layerWrong:   lipgloss.NewStyle().Foreground(badFg),
		layerTarget:  lipgloss.NewStyle().Foreground(goodFg),
	}
)
