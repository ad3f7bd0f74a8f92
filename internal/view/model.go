package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"picon/config"
	"picon/internal/app"
	"picon/internal/bridge"
	"picon/internal/dataset"
)

// Version is printed on the about panel. Set with -ldflags "-X picon/internal/view.Version=...".
var Version = "dev"

type Panel int

const (
	PanelLatest Panel = iota
	PanelStats
	PanelAbout
)

// kind returns the dataset a panel displays, if any.
func (p Panel) kind() (bridge.Kind, bool) {
	switch p {
	case PanelLatest:
		return bridge.KindLatest, true
	case PanelStats:
		return bridge.KindStats, true
	default:
		return 0, false
	}
}

type tickMsg time.Time

type autoRefreshMsg time.Time

var sortKeys = map[string]dataset.SortKey{
	"m": dataset.SortMarker,
	"n": dataset.SortRank,
	"s": dataset.SortSymbol,
	"p": dataset.SortPrice,
	"h": dataset.SortChange24h,
	"d": dataset.SortChange7d,
}

// Model is the terminal front end. It polls the app once per tick and never
// blocks on network or disk.
type Model struct {
	app          *app.App
	tickInterval time.Duration
	autoRefresh  time.Duration

	panel  Panel
	cursor int
	offset int
	width  int
	height int

	now func() time.Time
}

func New(a *app.App, cfg config.UIConfig) Model {
	return Model{
		app:          a,
		tickInterval: cfg.TickInterval,
		autoRefresh:  cfg.AutoRefresh,
		now:          time.Now,
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func autoRefreshCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return autoRefreshMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tickInterval)}
	if m.autoRefresh > 0 {
		cmds = append(cmds, autoRefreshCmd(m.autoRefresh))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.app.DrainOne()
		m.clampCursor()
		return m, tickCmd(m.tickInterval)

	case autoRefreshMsg:
		if kind, ok := m.panel.kind(); ok {
			m.app.RequestRefresh(kind)
		}
		return m, autoRefreshCmd(m.autoRefresh)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampCursor()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "1":
		m.switchPanel(PanelLatest)
	case "2":
		m.switchPanel(PanelStats)
	case "3":
		m.switchPanel(PanelAbout)
	case "r":
		if kind, ok := m.panel.kind(); ok {
			m.app.RequestRefresh(kind)
		}
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "g":
		m.cursor, m.offset = 0, 0
	case " ":
		if m.panel == PanelLatest {
			assets := m.app.Dataset().Assets()
			if m.cursor < len(assets) {
				m.app.ToggleMark(assets[m.cursor].Symbol)
			}
		}
	default:
		if sk, ok := sortKeys[key]; ok && m.panel == PanelLatest {
			m.app.Sort(sk, true)
		}
	}
	return m, nil
}

func (m *Model) switchPanel(p Panel) {
	if m.panel == p {
		return
	}
	m.panel = p
	m.cursor, m.offset = 0, 0

	// stats are not fetched at startup; fetch on first visit when nothing is cached
	if p == PanelStats && len(m.app.MarketStats().Market) == 0 {
		m.app.RequestRefresh(bridge.KindStats)
	}
}

func (m Model) rowCount() int {
	switch m.panel {
	case PanelLatest:
		return len(m.app.Dataset().Assets())
	case PanelStats:
		return len(statItems(m.app.MarketStats()))
	default:
		return 0
	}
}

// pageSize is the number of list rows that fit below the tabs, column
// header and notice, above the help line.
func (m Model) pageSize() int {
	if m.height == 0 {
		return 20
	}
	return max(m.height-5, 1)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := m.rowCount()
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))

	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = min(max(m.offset, 0), max(n-page, 0))
}
