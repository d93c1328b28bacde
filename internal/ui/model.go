// ABOUTME: Bubbletea model for the tone player TUI
// ABOUTME: Tracks the current note, progress and errors and renders them
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/tonegen/pkg/audio"
	"github.com/harperreed/tonegen/pkg/melody"
)

// Playback states shown in the header
const (
	StateIdle    = "idle"
	StatePlaying = "playing"
	StateResting = "resting"
	StateDone    = "done"
	StateError   = "error"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noteStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(54)
)

// Model represents the TUI state
type Model struct {
	// Device
	format audio.Format

	// Melody
	title     string
	noteIndex int
	noteTotal int
	elapsedMs int
	totalMs   int

	// Current tone
	state       string
	frequency   float64
	durationMs  int
	iterations  int
	repeatCount int

	// Stats
	played  int
	errors  int
	lastErr string

	// Debug
	showDebug bool

	control *Control

	// Dimensions
	width  int
	height int
}

// StatusMsg updates TUI state; zero fields are left unchanged
type StatusMsg struct {
	Format      *audio.Format
	Title       string
	State       string
	NoteIndex   int // 1-based
	NoteTotal   int
	TotalMs     int
	ElapsedMs   int
	Frequency   float64
	DurationMs  int
	Iterations  int
	RepeatCount int
	Played      bool
	Err         error
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.renderNote())
	sb.WriteString("\n")
	sb.WriteString(m.renderProgress())

	if m.showDebug {
		sb.WriteString("\n")
		sb.WriteString(m.renderDebug())
	}
	if m.lastErr != "" {
		sb.WriteString("\n")
		sb.WriteString(errStyle.Render("Error: " + truncate(m.lastErr, 46)))
	}

	return boxStyle.Render(sb.String()) + "\n" + m.renderHelp()
}

// renderHeader renders the melody title and device format
func (m Model) renderHeader() string {
	title := m.title
	if title == "" {
		title = "Tone Player"
	}

	format := "no device"
	if m.format.SampleRate != 0 {
		format = fmt.Sprintf("%dHz %s %s %d-bit", m.format.SampleRate,
			channelName(m.format.Channels), signName(m.format.Signed), m.format.BitDepth)
	}

	return titleStyle.Render(truncate(title, 50)) + "\n" +
		labelStyle.Render("Device: ") + format + "\n" +
		labelStyle.Render("State:  ") + m.state
}

// renderNote renders the tone currently sounding
func (m Model) renderNote() string {
	switch m.state {
	case StatePlaying:
		return labelStyle.Render("Now:    ") +
			noteStyle.Render(fmt.Sprintf("%-4s", melody.NoteName(m.frequency))) +
			fmt.Sprintf(" %.1f Hz for %d ms", m.frequency, m.durationMs)
	case StateResting:
		return labelStyle.Render("Now:    ") + fmt.Sprintf("rest for %d ms", m.durationMs)
	default:
		return labelStyle.Render("Now:    ") + "-"
	}
}

// renderProgress renders melody progress and counters
func (m Model) renderProgress() string {
	bar := renderBar(m.elapsedMs, m.totalMs, 30)
	return fmt.Sprintf("%s [%s] %d/%d\n%s played %d, errors %d",
		labelStyle.Render("Notes: "), bar, m.noteIndex, m.noteTotal,
		labelStyle.Render("Stats: "), m.played, m.errors)
}

// renderDebug renders loop scheduling details for the current tone
func (m Model) renderDebug() string {
	return fmt.Sprintf("%s iterations=%d repeat=%d elapsed=%dms/%dms",
		labelStyle.Render("Debug: "), m.iterations, m.repeatCount, m.elapsedMs, m.totalMs)
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return labelStyle.Render("q: quit after current note  d: debug")
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.control.RequestQuit()
		return m, tea.Quit
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Format != nil {
		m.format = *msg.Format
	}
	if msg.Title != "" {
		m.title = msg.Title
	}
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.NoteTotal != 0 {
		m.noteTotal = msg.NoteTotal
		m.totalMs = msg.TotalMs
	}
	if msg.NoteIndex != 0 {
		m.noteIndex = msg.NoteIndex
		m.elapsedMs = msg.ElapsedMs
	}
	if msg.Frequency != 0 || msg.DurationMs != 0 {
		m.frequency = msg.Frequency
		m.durationMs = msg.DurationMs
	}
	if msg.Iterations != 0 {
		m.iterations = msg.Iterations
		m.repeatCount = msg.RepeatCount
	}
	if msg.Played {
		m.played++
	}
	if msg.Err != nil {
		m.errors++
		m.lastErr = msg.Err.Error()
	}
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := 0
	if max > 0 {
		filled = (value * width) / max
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}

func signName(signed bool) string {
	if signed {
		return "signed"
	}
	return "unsigned"
}
