package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()
	contentWidth := max(10, m.width)

	// Header
	title := " geoquiz ─ find the region from the hint "
	if m.loading {
		title += m.spin.View()
	}
	right := dimStyle.Render(fmt.Sprintf("score %d ", m.ctrl.Score()))
	header := titleStyle.Render(title)
	gap := max(0, contentWidth-lipgloss.Width(header)-lipgloss.Width(right))
	header = lipgloss.NewStyle().Width(contentWidth).MaxHeight(headerHeight).Render(header + strings.Repeat(" ", gap) + right)

	rows := []string{header}
	if l.bannerH > 0 {
		msg := fmt.Sprintf(" failed to load map: %v  (g to retry) ", m.loadErr)
		rows = append(rows, bannerStyle.Width(contentWidth).MaxHeight(1).Render(msg))
	}
	rows = append(rows, m.renderHintPanel(contentWidth, l.hintH))

	// Map area
	var mapView string
	if m.showScore {
		box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Score"), m.tbl.View()))
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, box)
	} else {
		mapView = m.renderMap(l.mapW, l.mapH)
	}
	mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).MaxHeight(l.mapH).Render(mapView)

	body := mapView
	if m.showHistory {
		m.l.SetSize(sidebarWidth-2, l.mapH)
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Height(l.mapH).MaxHeight(l.mapH).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}
	rows = append(rows, body, m.renderFooter(contentWidth))

	ui := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return appStyle.Width(contentWidth).Height(m.height).MaxHeight(m.height).Render(ui)
}

// renderHintPanel draws the hint box, or a single line when minimized.
func (m Model) renderHintPanel(width, height int) string {
	round, ok := m.ctrl.Round()
	var caption, text string
	switch {
	case !ok && m.loadErr == nil:
		caption, text = "waiting for the map…", ""
	case !ok:
		caption, text = "no round", ""
	case round.HintLoading:
		caption, text = m.spin.View()+" thinking of a hint…", ""
	default:
		caption, text = round.Hint.Caption, round.Hint.Text
	}
	if ok && round.Feedback != nil {
		st := badStyle
		if round.Feedback.Correct {
			st = goodStyle
		}
		caption = st.Render(round.Feedback.Message) + dimStyle.Render("  (n for the next round)")
	}

	if height <= hintPanelMinified {
		line := dimStyle.Render("hint ▸ ") + caption + dimStyle.Render("  (m to expand)")
		return lipgloss.NewStyle().Width(width).MaxHeight(1).Render(line)
	}
	inner := max(1, width-4)
	wrapped := lipgloss.NewStyle().Width(inner).Render(text)
	first := lipgloss.NewStyle().MaxWidth(inner).Render(titleStyle.Render("Hint ") + caption)
	content := first + "\n" + firstLines(wrapped, height-3)
	return boxStyle.Width(width - 2).Height(height - 2).MaxHeight(height).Render(firstLines(content, height-2))
}

func (m Model) renderFooter(width int) string {
	status := dimStyle.Render(" " + m.status + " ")
	hover := ""
	if m.hoverName != "" {
		hover = titleStyle.Render(" " + m.hoverName + " ")
	}
	s := m.ctrl.Stats()
	stats := dimStyle.Render(fmt.Sprintf(" streak %d  %d/%d ", s.Streak, s.Correct, s.Played))
	gap := max(0, width-lipgloss.Width(status)-lipgloss.Width(hover)-lipgloss.Width(stats))
	line1 := lipgloss.NewStyle().Width(width).MaxHeight(1).Render(status + strings.Repeat(" ", gap) + hover + stats)

	var line2 string
	if m.typing {
		line2 = m.ti.View()
	} else {
		line2 = m.renderHelp()
	}
	line2 = lipgloss.NewStyle().Width(width).MaxHeight(1).Render(line2)
	return lipgloss.JoinVertical(lipgloss.Left, line1, line2)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click answer",
		"drag/↑↓←→ pan",
		"wheel/+- zoom",
		"r reset",
		"n next",
		"/ type",
		"m hint",
		"Tab history",
		"s score",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
