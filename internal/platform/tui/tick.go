// Package tui runs platformer games in a terminal with Bubble Tea.
// It owns the fixed-rate tick loop, key mapping, menus, the scoreboard
// and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation tick of the loop identified by ID.
type TickMsg struct {
	Time time.Time
	ID   uint64
}

var lastLoopID atomic.Uint64

// nextLoopID returns a fresh tick loop identifier. Models ignore ticks from
// loops they did not start.
func nextLoopID() uint64 {
	return lastLoopID.Add(1)
}

func tickCmd(tickRate int, id uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id}
	})
}
