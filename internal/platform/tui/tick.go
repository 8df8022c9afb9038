// Package tui provides the Bubble Tea front end: the play loop, the room
// renderer, key bindings, the world picker, run history and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger an enemy AI tick. Gen is the loop generation
// that scheduled it; stale generations are dropped.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// FrameMsg drives overlay timers and room transitions.
type FrameMsg struct {
	Gen  uint64
	Time time.Time
}

// tickCmd schedules the next enemy tick.
func tickCmd(gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// frameCmd schedules the next animation frame at the given rate.
func frameCmd(gen uint64, frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 30
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, Time: t}
	})
}
