package tui

import (
	list "github.com/charmbracelet/bubbles/list"

	"geoquiz/internal/history"
)

type historyItem struct {
	o history.Outcome
}

func (h historyItem) Title() string {
	if h.o.Correct {
		return "✔ " + h.o.RegionName
	}
	return "✘ " + h.o.RegionName
}

func (h historyItem) Description() string { return h.o.CreatedAt.Local().Format("Jan 2 15:04") }
func (h historyItem) FilterValue() string { return h.o.RegionName }

// setHistory replaces the sidebar items; outcomes arrive newest first.
func (m *Model) setHistory(outcomes []history.Outcome) {
	items := make([]list.Item, 0, len(outcomes))
	for _, o := range outcomes {
		items = append(items, historyItem{o: o})
	}
	m.l.SetItems(items)
}
