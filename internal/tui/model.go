// Package tui renders playback progress in the terminal and analysis reports.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tickInterval = 100 * time.Millisecond
	barWidth     = 40
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Session is the playback the view follows.
type Session struct {
	Title    string
	Events   int
	Length   time.Duration // time of the last event
	Done     <-chan struct{}
	Stop     func() error
	Category string
}

// Model is a bubbletea model showing elapsed time against session length.
type Model struct {
	session  Session
	start    time.Time
	elapsed  time.Duration
	now      func() time.Time
	stopped  bool
	finished bool
}

type tickMsg time.Time

type doneMsg struct{}

// NewModel starts the clock at creation.
func NewModel(s Session) Model {
	return newModel(s, time.Now)
}

func newModel(s Session, now func() time.Time) Model {
	return Model{session: s, start: now(), now: now}
}

// Stopped reports whether the user ended playback early.
func (m Model) Stopped() bool { return m.stopped }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitDone(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return doneMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if m.session.Done != nil {
		cmds = append(cmds, waitDone(m.session.Done))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stopped = true
			if m.session.Stop != nil {
				_ = m.session.Stop()
			}
			return m, tea.Quit
		}

	case tickMsg:
		m.elapsed = m.now().Sub(m.start)
		return m, tick()

	case doneMsg:
		m.finished = true
		m.elapsed = m.now().Sub(m.start)
		return m, tea.Quit
	}
	return m, nil
}

// Progress is the completed fraction in [0, 1].
func (m Model) Progress() float64 {
	if m.finished {
		return 1
	}
	if m.session.Length <= 0 {
		return 0
	}
	return min(1, float64(m.elapsed)/float64(m.session.Length))
}

func (m Model) View() string {
	var b strings.Builder

	state := "playing"
	switch {
	case m.stopped:
		state = "stopped"
	case m.finished:
		state = "finished"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("midiplay  %s  %s", m.session.Title, state)))
	b.WriteString("\n\n")

	filled := int(m.Progress() * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	b.WriteString(barStyle.Render(bar))
	fmt.Fprintf(&b, "  %s / %s\n", formatDuration(m.elapsed), formatDuration(m.session.Length))
	fmt.Fprintf(&b, "%d %s events\n\n", m.session.Events, m.session.Category)

	b.WriteString(dimStyle.Render("q: stop"))
	b.WriteString("\n")
	return b.String()
}

func formatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", minutes, seconds)
}
