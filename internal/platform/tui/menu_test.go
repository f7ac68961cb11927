package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/road-remembers/internal/config"
)

func TestMenuSelect(t *testing.T) {
	var m tea.Model = NewMenuModel(80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	menu := m.(MenuModel)
	if menu.Selected() == nil || menu.Selected().Preset != config.DifficultyHard {
		t.Errorf("Selected = %+v, expected hard", menu.Selected())
	}
}

func TestMenuCursorBounds(t *testing.T) {
	var m tea.Model = NewMenuModel(80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.(MenuModel).Selected().Preset; got != config.DifficultyFixed {
		t.Errorf("Selected = %v, expected fixed (last item)", got)
	}
}

func TestMenuQuit(t *testing.T) {
	var m tea.Model = NewMenuModel(80, 24)
	m, cmd := m.Update(runeKey("q"))

	if !m.(MenuModel).IsQuitting() || cmd == nil {
		t.Error("q should quit the menu")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}
