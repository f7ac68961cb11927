// Package tui provides the Bubble Tea host for the road simulation.
// It handles the terminal UI loop, input mapping, prompt timers and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// promptExpiredMsg ends the display lifetime of the prompt with seq.
type promptExpiredMsg struct {
	seq uint64
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// promptExpiryCmd fires once after lifetime for the prompt with seq.
func promptExpiryCmd(lifetime time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(lifetime, func(time.Time) tea.Msg {
		return promptExpiredMsg{seq: seq}
	})
}
