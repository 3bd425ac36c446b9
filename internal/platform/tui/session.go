package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/logging"
	"github.com/vovakirdan/tui-kernel/internal/physics"
	"github.com/vovakirdan/tui-kernel/internal/registry"
	"github.com/vovakirdan/tui-kernel/internal/storage"
)

type strategySetter interface {
	SetStrategy(kind physics.Kind)
}

// SessionModel is the top-level model of one SSH connection. It alternates
// between the menu and a running game until the user quits.
type SessionModel struct {
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	username string

	menu     MenuModel
	board    *ScoreboardModel
	game     *GameModel
	quitting bool
}

// NewSessionModel creates a session that starts on the menu. Every session
// gets its own id in the log.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = logging.Discard()
	}
	return SessionModel{
		store:    store,
		logger:   logger.With("session", uuid.NewString()[:8], "user", username),
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg),
	}
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update implements tea.Model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}
	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.board != nil:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.menu.WantsScoreboard() {
		board := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		return m, board.Init()
	}

	item := m.menu.Selected()
	if item == nil {
		return m, cmd
	}
	game, err := registry.Create(item.GameID)
	if err != nil {
		m.logger.Warn("cannot create game", "game", item.GameID, "error", err)
		return m, nil
	}
	kind := m.menu.Strategy()
	if ss, ok := game.(strategySetter); ok {
		ss.SetStrategy(kind)
	}

	m.config = m.menu.Config()
	m.config.Seed = time.Now().UnixNano()
	m.logger.Info("game started", "game", game.ID(), "strategy", kind)

	gm := NewGameModel(game, m.store, m.config, m.username, m.logger)
	m.game = &gm
	return m, gm.Init()
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.board = &sb
	}

	switch {
	case m.board.IsGoingBack():
		m.board = nil
		m.menu = NewMenuModel(m.store, m.config)
		return m, m.menu.Init()
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	switch {
	case m.game.BackToMenu():
		m.game = nil
		m.menu = NewMenuModel(m.store, m.config)
		return m, m.menu.Init()
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View implements tea.Model.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.game != nil:
		return m.game.View()
	case m.board != nil:
		return m.board.View()
	}
	return m.menu.View()
}

// GameModel is a Model that can hand control back to a menu once the run is
// over or paused.
type GameModel struct {
	Model
	backToMenu bool
}

// NewGameModel creates a game model for player. Screenshots are disabled.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) GameModel {
	m := NewModel(game, store, cfg).WithLogger(logger)
	m.player = player
	m.screenshots = false
	return GameModel{Model: m}
}

// Update implements tea.Model.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && m.keys.MapKeyToMenuAction(k) == MenuActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, nil
		}
	}
	next, cmd := m.Model.Update(msg)
	if mm, ok := next.(Model); ok {
		m.Model = mm
	}
	return m, cmd
}

// BackToMenu reports whether the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
