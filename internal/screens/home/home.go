package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flagquiz/internal/router"
	"github.com/abhisek/flagquiz/internal/screen"
	"github.com/abhisek/flagquiz/internal/screens/history"
	"github.com/abhisek/flagquiz/internal/screens/play"
	"github.com/abhisek/flagquiz/internal/store"
	"github.com/abhisek/flagquiz/internal/ui/components"
	"github.com/abhisek/flagquiz/internal/ui/layout"
)

const (
	itemPlay = iota
	itemResume
	itemHistory
	itemExit
)

var menuLabels = []string{"PLAY", "RESUME", "HISTORY", "EXIT"}

// maxPlayerName bounds the player name input.
const maxPlayerName = 16

type homeLoadedMsg struct {
	Best     int
	Snapshot *store.Snapshot
	Err      error
}

// HomeScreen is the root screen: it starts, resumes and reviews quiz runs.
type HomeScreen struct {
	deps   play.Deps
	menu   components.Menu
	player components.TextInput

	best     int
	snapshot *store.Snapshot
	notice   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. deps.Player seeds the player name input.
func New(deps play.Deps) *HomeScreen {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	player := components.NewTextInput("anonymous", deps.Player, maxPlayerName)
	player.Blur()

	h := &HomeScreen{
		deps:   deps,
		player: player,
	}
	h.menu = h.buildMenu()
	return h
}

// Init loads the best score and the latest snapshot. It runs again whenever
// the router returns home.
func (h *HomeScreen) Init() tea.Cmd {
	events := h.deps.EventRepo
	snaps := h.deps.SnapRepo
	return func() tea.Msg {
		ctx := context.Background()
		var msg homeLoadedMsg
		if events != nil {
			best, err := events.BestScore(ctx)
			if err != nil {
				msg.Err = err
			}
			msg.Best = best
		}
		if snaps != nil {
			snap, err := snaps.Latest(ctx)
			if err != nil && msg.Err == nil {
				msg.Err = err
			}
			msg.Snapshot = snap
		}
		return msg
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.player.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Tab", Description: "Menu"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Tab", Description: "Player"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		if msg.Err != nil {
			h.deps.Log.Warn("failed to load home stats", zap.Error(msg.Err))
		}
		h.best = msg.Best
		h.snapshot = msg.Snapshot
		h.notice = ""
		if h.snapshot != nil && !h.resumable() {
			h.notice = "Saved session is for another region"
		}
		h.menu = h.buildMenu()
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "tab" {
			return h, h.toggleFocus()
		}
		if h.player.Focused() {
			if msg.String() == "enter" || msg.String() == "esc" {
				h.player.Blur()
				return h, nil
			}
			var cmd tea.Cmd
			h.player, cmd = h.player.Update(msg)
			return h, cmd
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) toggleFocus() tea.Cmd {
	if h.player.Focused() {
		h.player.Blur()
		return nil
	}
	return h.player.Focus()
}

// Player returns the current player name.
func (h *HomeScreen) Player() string {
	return h.player.Value()
}

// resumable reports whether the loaded snapshot can continue with the
// current catalog.
func (h *HomeScreen) resumable() bool {
	snap := h.snapshot
	if snap == nil || h.deps.Catalog == nil {
		return false
	}
	return snap.Data.Version == store.SnapshotVersion &&
		snap.Data.Region == h.deps.Catalog.Region()
}

func (h *HomeScreen) buildMenu() components.Menu {
	items := []components.MenuItem{
		{Label: menuLabels[itemPlay], Key: "p", Action: func() tea.Cmd {
			deps := h.deps
			deps.Player = h.Player()
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: play.New(deps, nil)}
			}
		}},
		{Label: menuLabels[itemResume], Key: "r", Disabled: !h.resumable(), Action: func() tea.Cmd {
			deps := h.deps
			snap := h.snapshot
			deps.Player = snap.Data.Player
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: play.New(deps, snap)}
			}
		}},
		{Label: menuLabels[itemHistory], Key: "h", Disabled: h.deps.EventRepo == nil, Action: func() tea.Cmd {
			repo := h.deps.EventRepo
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(repo)}
			}
		}},
		{Label: menuLabels[itemExit], Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	menu := components.NewMenu(items)
	if h.resumable() {
		menu.Selected = itemResume
	}
	return menu
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header, footer and gaps.
	compact := layout.IsCompactHeight(height+8) || width < 80
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderBanner(cw, compact))

	variant := GlobeIdle
	if h.resumable() {
		variant = GlobeWaiting
	}
	if !compact {
		sections = append(sections, renderGlobeBox(variant, cw))
	}

	savedAt := 0
	if h.resumable() {
		savedAt = h.snapshot.Data.Session.QuestionNumber
	}
	flags := 0
	if h.deps.Catalog != nil {
		flags = h.deps.Catalog.Len()
	}
	sections = append(sections, renderStatsBar(h.best, savedAt, flags, cw, compact))

	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	}

	sections = append(sections, renderPlayerLine(h.player.View(), h.player.Focused(), cw))
	sections = append(sections, renderMenu(h.menu, cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func renderMenu(menu components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.TrimRight(menu.View(), "\n"))
}
