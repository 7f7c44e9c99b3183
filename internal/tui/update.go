package tui

import (
	"fmt"
	"strings"

	spinner "github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"geoquiz/internal/geom"
	"geoquiz/internal/logger"
	"geoquiz/internal/quiz"
)

const (
	// mousePointer is the engine pointer id for the terminal mouse.
	mousePointer = 0
	// wheelDelta is the deltaY reported per wheel notch.
	wheelDelta  = 100.0
	keyZoomStep = 1.25
	keyPanStep  = 40.0
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		// let the tick chain die once nothing is pending
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case regionsLoadedMsg:
		return m.onRegions(msg)

	case hintMsg:
		if !m.ctrl.ApplyHint(msg.gen, msg.hint) {
			logger.L().Debug("hint_stale", "gen", msg.gen)
			return m, nil
		}
		m.status = "find the region described above"
		return m, nil

	case fitMsg:
		m.fitTo(msg)
		return m, nil

	case historySavedMsg:
		if msg.err != nil {
			logger.L().Error("history_append_error", "err", msg.err)
			return m, nil
		}
		return m, m.listHistoryCmd()

	case historyMsg:
		if msg.err != nil {
			logger.L().Error("history_list_error", "err", msg.err)
			return m, nil
		}
		m.setHistory(msg.outcomes)
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

// busy reports whether the map or the round's hint is still loading.
func (m Model) busy() bool {
	if m.loading {
		return true
	}
	round, ok := m.ctrl.Round()
	return ok && round.HintLoading
}

func (m Model) onRegions(msg regionsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.loadErr = msg.err
		m.status = "map unavailable"
		logger.L().Error("geodata_load_error", "err", msg.err)
		return m, nil
	}
	m.loadErr = nil
	m.ctrl.SetRegions(msg.regions)
	m.paths = geom.BuildPaths(msg.regions)
	m.index = geom.Index(m.paths)
	logger.L().Info("regions_ready", "regions", len(msg.regions), "paths", len(m.paths))
	return m.startRound()
}

func (m Model) startRound() (tea.Model, tea.Cmd) {
	req, ok := m.ctrl.StartRound()
	if !ok {
		m.status = "no regions loaded"
		return m, nil
	}
	m.status = "fetching hint…"
	logger.L().Debug("round_start", "gen", req.Gen, "region", req.Region.ID)
	return m, tea.Batch(hintCmd(m.hints, req), m.spin.Tick)
}

// fitTo frames the answer once its path has been rendered. Stale requests
// from an earlier round are ignored.
func (m *Model) fitTo(msg fitMsg) {
	round, ok := m.ctrl.Round()
	if !ok || round.Gen != msg.gen {
		return
	}
	if i, ok := m.index[msg.id]; ok {
		m.engine.Fit(m.paths[i].Bounds)
		return
	}
	if b, ok := geom.BoundsOf(round.Target); ok {
		m.engine.Fit(b)
	}
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	// the sidebar owns vertical navigation while visible
	if m.showHistory && (key == "up" || key == "down" || key == "pgup" || key == "pgdown") {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "n":
		if m.loading || m.loadErr != nil {
			return m, nil
		}
		return m.startRound()
	case "g":
		if m.loadErr != nil && !m.loading {
			m.loading = true
			m.status = "retrying map load…"
			return m, tea.Batch(loadCmd(m.loader), m.spin.Tick)
		}
	case "r":
		m.engine.Reset()
		m.status = "view reset"
	case "+", "=":
		m.engine.ZoomCenter(keyZoomStep)
		m.status = fmt.Sprintf("zoom: %.2fx", m.engine.Transform().Scale)
	case "-", "_":
		m.engine.ZoomCenter(1 / keyZoomStep)
		m.status = fmt.Sprintf("zoom: %.2fx", m.engine.Transform().Scale)
	case "up":
		m.engine.Pan(0, keyPanStep)
	case "down":
		m.engine.Pan(0, -keyPanStep)
	case "left":
		m.engine.Pan(keyPanStep, 0)
	case "right":
		m.engine.Pan(-keyPanStep, 0)
	case "m":
		m.ctrl.ToggleHintPanel()
	case "/":
		if m.ctrl.CanSubmit(m.engine.ActivePointers()) {
			m.typing = true
			m.ti.SetValue("")
			return m, m.ti.Focus()
		}
	case "tab":
		m.showHistory = !m.showHistory
		if m.showHistory {
			return m, m.listHistoryCmd()
		}
	case "s":
		m.showScore = !m.showScore
		if m.showScore {
			m.refreshScore()
		}
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

func (m Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.typing = false
		m.ti.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.ti.Value())
		if text == "" {
			return m, nil
		}
		res, ok := m.ctrl.SubmitName(text, m.engine.ActivePointers())
		if !ok {
			m.status = fmt.Sprintf("no region matches %q", text)
			return m, nil
		}
		m.typing = false
		m.ti.Blur()
		return m.answered(res)
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	l := m.layout()
	cx, cy, inside := l.inMap(msg.X, msg.Y)
	c := newCanvas(l.mapW, l.mapH)
	lx, ly := c.cellToLogical(cx, cy)
	held := m.engine.ActivePointers() > 0

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if !inside {
			return m, nil
		}
		dy := wheelDelta
		if msg.Button == tea.MouseButtonWheelUp {
			dy = -wheelDelta
		}
		m.engine.Wheel(dy, lx, ly, m.input)
		return m, nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inside {
			m.engine.PointerDown(mousePointer, lx, ly)
		}
		return m, nil

	case msg.Action == tea.MouseActionMotion && held:
		m.engine.PointerMove(mousePointer, lx, ly)
		return m, nil

	case msg.Action == tea.MouseActionRelease && held:
		m.engine.PointerUp(mousePointer)
		if !inside || !m.engine.ConsumeClick() {
			return m, nil
		}
		return m.click(cx, cy, l)

	case msg.Action == tea.MouseActionMotion:
		m.hoverID, m.hoverName = "", ""
		if inside {
			if p, ok := m.pathAt(cx, cy, l.mapW, l.mapH); ok {
				m.hoverID, m.hoverName = p.ID, p.Name
			}
		}
	}
	return m, nil
}

// click selects the region under a map cell.
func (m Model) click(cx, cy int, l layout) (tea.Model, tea.Cmd) {
	p, ok := m.pathAt(cx, cy, l.mapW, l.mapH)
	if !ok {
		return m, nil
	}
	res, ok := m.ctrl.Submit(p.ID, m.engine.ActivePointers())
	if !ok {
		return m, nil
	}
	return m.answered(res)
}

func (m Model) answered(res quiz.Result) (tea.Model, tea.Cmd) {
	m.status = res.Feedback.Message
	round, _ := m.ctrl.Round()
	logger.L().Info("answer", "region", res.Target.ID, "selected", res.Feedback.SelectedID, "correct", res.Feedback.Correct, "score", m.ctrl.Score())
	if m.showScore {
		m.refreshScore()
	}
	cmds := []tea.Cmd{fitCmd(round.Gen, res.Target.ID)}
	if res.Persist && m.store != nil {
		cmds = append(cmds, appendHistoryCmd(m.store, res.Outcome))
	}
	return m, tea.Batch(cmds...)
}
