package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"geoquiz/internal/geom"
	"geoquiz/internal/hint"
	"geoquiz/internal/history"
	"geoquiz/internal/quiz"
)

// fitDelay lets one frame render before the camera frames the answer.
const fitDelay = time.Second / 60

type regionsLoadedMsg struct {
	regions []geom.Region
	err     error
}

type hintMsg struct {
	gen  uint64
	hint hint.Hint
}

type fitMsg struct {
	gen uint64
	id  string
}

type historySavedMsg struct{ err error }

type historyMsg struct {
	outcomes []history.Outcome
	err      error
}

func loadCmd(l RegionLoader) tea.Cmd {
	if l == nil {
		return nil
	}
	return func() tea.Msg {
		regions, err := l.Load(context.Background())
		return regionsLoadedMsg{regions: regions, err: err}
	}
}

func hintCmd(src HintSource, req quiz.HintRequest) tea.Cmd {
	return func() tea.Msg {
		var h hint.Hint
		if src != nil {
			h = src.Hint(context.Background(), req.Region)
		} else {
			h = hint.Fallback(req.Region)
		}
		return hintMsg{gen: req.Gen, hint: h}
	}
}

func fitCmd(gen uint64, id string) tea.Cmd {
	return tea.Tick(fitDelay, func(time.Time) tea.Msg { return fitMsg{gen: gen, id: id} })
}

func appendHistoryCmd(store history.Store, o history.Outcome) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return historySavedMsg{err: store.Append(ctx, o)}
	}
}

func (m Model) listHistoryCmd() tea.Cmd {
	if m.store == nil || m.ctrl.UserID() == "" {
		return nil
	}
	store, user, limit := m.store, m.ctrl.UserID(), m.histMax
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		out, err := store.List(ctx, user, limit)
		return historyMsg{outcomes: out, err: err}
	}
}
