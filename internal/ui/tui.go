// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the tone player UI
package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Control carries user requests from the TUI back to the player loop
type Control struct {
	Quit chan struct{}
	once sync.Once
}

// NewControl creates a new control handle
func NewControl() *Control {
	return &Control{
		Quit: make(chan struct{}),
	}
}

// RequestQuit closes Quit once
func (c *Control) RequestQuit() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.Quit) })
}

// NewModel creates a new TUI model
func NewModel(ctrl *Control) Model {
	return Model{
		state:   StateIdle,
		control: ctrl,
	}
}

// Run creates the TUI program; the caller starts it with Run
func Run(ctrl *Control) *tea.Program {
	return tea.NewProgram(NewModel(ctrl), tea.WithAltScreen())
}
