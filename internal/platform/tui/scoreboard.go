package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-kernel/internal/physics"
	"github.com/vovakirdan/tui-kernel/internal/registry"
	"github.com/vovakirdan/tui-kernel/internal/storage"
)

const maxRuns = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	Filter   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Filter, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.NextGame, k.Filter}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll")),
		NextGame: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "game")),
		Filter:   key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("left/right", "strategy")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists recorded runs of one game, best score first,
// optionally narrowed to one collision strategy.
type ScoreboardModel struct {
	store  *storage.Store
	games  []registry.GameInfo
	game   int
	filter int // 0 is every strategy, i>0 is physics.Kinds()[i-1]

	all   []storage.SessionStats
	runs  []storage.SessionStats
	stats *storage.GameStats

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard for the registered games.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		games:  registry.List(),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: 10},
			{Title: "Score", Width: 7},
			{Title: "Strategy", Width: 10},
			{Title: "Hits", Width: 6},
			{Title: "Ticks", Width: 7},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// strategy returns the active filter, or "" for every strategy.
func (m ScoreboardModel) strategy() string {
	if m.filter == 0 {
		return ""
	}
	return string(physics.Kinds()[m.filter-1])
}

// load reads the current game's runs from the store.
func (m *ScoreboardModel) load() {
	m.all, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.game].ID
		if runs, err := m.store.RecentSessions(id, maxRuns); err == nil {
			sort.SliceStable(runs, func(i, j int) bool { return runs[i].Score > runs[j].Score })
			m.all = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.apply()
}

// apply narrows the loaded runs to the active filter and refills the table.
func (m *ScoreboardModel) apply() {
	want := m.strategy()
	m.runs = nil
	for _, r := range m.all {
		if want == "" || r.Strategy == want {
			m.runs = append(m.runs, r)
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Player,
			fmt.Sprint(r.Score),
			r.Strategy,
			fmt.Sprint(r.Collisions),
			fmt.Sprint(r.Ticks),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.game = (m.game + 1) % len(m.games)
				m.load()
			}
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			n := len(physics.Kinds()) + 1
			if msg.String() == "left" || msg.String() == "h" {
				m.filter = (m.filter + n - 1) % n
			} else {
				m.filter = (m.filter + 1) % n
			}
			m.apply()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.apply()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText("RUNS", m.width)))
	b.WriteString("\n\n")

	tabs := make([]string, 0, len(m.games))
	for i, g := range m.games {
		if i == m.game {
			tabs = append(tabs, boardActiveTab.Render(g.Title))
		} else {
			tabs = append(tabs, boardTabStyle.Render(g.Title))
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n")
	if m.stats != nil {
		b.WriteString(centerText(boardDimStyle.Render(m.stats.Summary()), m.width))
		b.WriteString("\n")
	}

	filter := m.strategy()
	if filter == "" {
		filter = "all"
	}
	b.WriteString(centerText(boardDimStyle.Render("< strategy: "+filter+" >"), m.width))
	b.WriteString("\n\n")

	if len(m.runs) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(boardDimStyle.Render("No runs recorded yet."))))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(m.table.View())))
		b.WriteString("\n")
		if r, ok := m.selected(); ok {
			detail := fmt.Sprintf("moves %d  contacts %d  snapshot %016x", r.Moves, r.Collisions, r.SnapshotHash)
			b.WriteString(centerText(boardDimStyle.Render(detail), m.width))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) selected() (storage.SessionStats, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.SessionStats{}, false
	}
	return m.runs[i], true
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen. It returns true when the user
// wants to go back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
