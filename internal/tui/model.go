package tui

import (
	"context"

	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"geoquiz/internal/geom"
	"geoquiz/internal/hint"
	"geoquiz/internal/history"
	"geoquiz/internal/quiz"
	"geoquiz/internal/viewport"
)

// RegionLoader supplies the region collection.
type RegionLoader interface {
	Load(ctx context.Context) ([]geom.Region, error)
}

// LoaderFunc adapts a function to RegionLoader.
type LoaderFunc func(ctx context.Context) ([]geom.Region, error)

func (f LoaderFunc) Load(ctx context.Context) ([]geom.Region, error) { return f(ctx) }

// HintSource resolves a round's hint; it must not fail.
type HintSource interface {
	Hint(ctx context.Context, r geom.Region) hint.Hint
}

// Config wires the model's collaborators. History may be nil.
type Config struct {
	Controller   *quiz.Controller
	Loader       RegionLoader
	Hints        HintSource
	History      history.Store
	Input        viewport.InputClass
	HistoryLimit int
}

type Model struct {
	width  int
	height int

	helpVisible bool
	showHistory bool
	showScore   bool
	typing      bool

	status  string
	loadErr error
	loading bool

	ctrl    *quiz.Controller
	engine  *viewport.Engine
	loader  RegionLoader
	hints   HintSource
	store   history.Store
	input   viewport.InputClass
	histMax int

	paths []geom.Path
	index map[string]int

	hoverID   string
	hoverName string

	spin spinner.Model
	l    list.Model
	tbl  table.Model
	ti   textinput.Model
}

func New(cfg Config) Model {
	m := Model{
		helpVisible: true,
		status:      "loading map…",
		loading:     true,
		ctrl:        cfg.Controller,
		engine:      viewport.New(geom.CanvasWidth, geom.CanvasHeight),
		loader:      cfg.Loader,
		hints:       cfg.Hints,
		store:       cfg.History,
		input:       cfg.Input,
		histMax:     cfg.HistoryLimit,
	}
	if m.ctrl == nil {
		m.ctrl = quiz.New(nil, quiz.Options{})
	}
	if m.histMax <= 0 {
		m.histMax = 50
	}
	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(titleStyle))
	// history list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "History"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(false)
	// typed answer
	m.ti = textinput.New()
	m.ti.Placeholder = "type a country name, Enter to answer, Esc to cancel"
	m.ti.Prompt = "answer> "
	m.ti.CharLimit = 64
	// score table
	m.tbl = table.New(
		table.WithColumns([]table.Column{{Title: "", Width: 14}, {Title: "", Width: 10}}),
		table.WithFocused(false),
	)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, loadCmd(m.loader), m.listHistoryCmd())
}
