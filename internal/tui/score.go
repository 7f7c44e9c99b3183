package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshScore rebuilds the score table from the controller's totals.
func (m *Model) refreshScore() {
	s := m.ctrl.Stats()
	acc := "-"
	if s.Played > 0 {
		acc = fmt.Sprintf("%.0f%%", 100*float64(s.Correct)/float64(s.Played))
	}
	rows := []table.Row{
		{"Score", fmt.Sprintf("%d", s.Score)},
		{"Streak", fmt.Sprintf("%d", s.Streak)},
		{"Best streak", fmt.Sprintf("%d", s.BestStreak)},
		{"Answered", fmt.Sprintf("%d", s.Played)},
		{"Correct", fmt.Sprintf("%d", s.Correct)},
		{"Accuracy", acc},
		{"Regions", fmt.Sprintf("%d", len(m.ctrl.Regions()))},
	}
	m.tbl.SetRows(rows)
	m.tbl.SetHeight(len(rows) + 1)
}
