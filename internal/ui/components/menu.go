package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flagquiz/internal/ui/theme"
)

// MenuItem is one button of a Menu. Key, when set, activates the item
// directly.
type MenuItem struct {
	Label    string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of buttons. Disabled items are skipped by
// navigation and cannot be activated.
type Menu struct {
	Items    []MenuItem
	Selected int
	Width    int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1, Width: 24}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m Menu) Init() tea.Cmd {
	return nil
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Key != "" && item.Key == key {
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

// move selects the next enabled item in direction dir, staying put at the ends.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m *Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	m.Selected = i
	return item.Action()
}

func (m Menu) View() string {
	buttons := make([]string, len(m.Items))
	for i, item := range m.Items {
		label := item.Label
		if item.Key != "" {
			label += " (" + strings.ToUpper(item.Key) + ")"
		}
		switch {
		case item.Disabled:
			buttons[i] = theme.ButtonInactive.Width(m.Width).Foreground(theme.TextDim).Render(label)
		case i == m.Selected:
			buttons[i] = theme.ButtonActive.Width(m.Width).Render("▸ " + label)
		default:
			buttons[i] = theme.ButtonInactive.Width(m.Width).Render(label)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, buttons...)
}
