package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const logTail = 8

// Progress is one snapshot of the running task.
type Progress struct {
	Percent int
	Status  string
}

// LogLines carries rendered log lines into the program via Program.Send.
type LogLines []string

type Model struct {
	title    string
	updates  <-chan Progress
	started  time.Time
	width    int
	percent  int
	status   string
	lines    []string
	quitting bool
}

type doneMsg struct{}

type progressMsg Progress

func NewModel(title string, updates <-chan Progress) Model {
	return Model{title: title, updates: updates, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		if msg.Percent >= 0 {
			m.percent = min(msg.Percent, 100)
		}
		if msg.Status != "" {
			m.status = msg.Status
		}
		return m, listenForUpdates(m.updates)
	case LogLines:
		m.lines = append(m.lines, msg...)
		if len(m.lines) > logTail {
			m.lines = m.lines[len(m.lines)-logTail:]
		}
		return m, nil
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = max(20, min(60, m.width-10))
	}

	lines := []string{
		titleStyle.Render(m.title),
		barStyle.Render(renderBar(barWidth, float64(m.percent)/100)) + labelStyle.Render(fmt.Sprintf(" %3d%%", m.percent)),
		labelStyle.Render(m.status),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", time.Since(m.started).Round(time.Millisecond))),
	}
	if len(m.lines) > 0 {
		lines = append(lines, "")
		lines = append(lines, m.lines...)
	}
	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan Progress) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return progressMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := min(width, max(0, int(ratio*float64(width)+0.5)))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
)
