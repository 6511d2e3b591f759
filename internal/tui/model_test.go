package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelTracksProgress(t *testing.T) {
	updates := make(chan Progress, 2)
	m := NewModel("Decompile", updates)

	next, cmd := m.Update(progressMsg{Percent: 55, Status: "Decompiling: File a.png"})
	require.NotNil(t, cmd)
	model := next.(Model)
	assert.Equal(t, 55, model.percent)
	assert.Contains(t, model.View(), "Decompiling: File a.png")
	assert.Contains(t, model.View(), " 55%")

	next, _ = model.Update(progressMsg{Percent: 250})
	model = next.(Model)
	assert.Equal(t, 100, model.percent)
	assert.Equal(t, "Decompiling: File a.png", model.status)
}

func TestModelKeepsLogTail(t *testing.T) {
	m := NewModel("Info", nil)
	for i := 0; i < 3; i++ {
		next, _ := m.Update(LogLines{"a", "b", "c", "d"})
		m = next.(Model)
	}
	assert.Len(t, m.lines, logTail)
}

func TestModelQuitsWhenUpdatesClose(t *testing.T) {
	updates := make(chan Progress)
	close(updates)
	m := NewModel("Compile", updates)

	msg := m.Init()()
	assert.Equal(t, doneMsg{}, msg)

	next, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, "[=====     ]", renderBar(10, 0.5))
	assert.Equal(t, "[==========]", renderBar(10, 3))
	assert.Equal(t, "[          ]", renderBar(10, -1))
}

func TestRenderTableClipsLeft(t *testing.T) {
	out := RenderTable([]string{"#", "Filename"}, [][]string{{"1", "very/long/path/to/icon.png"}}, 12)
	assert.Contains(t, out, ".../icon.png")
	assert.Equal(t, 2, strings.Count(out, "\n")+1)
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary([]SummaryRow{{Label: "Records", Value: "2"}, {Label: "Cache", Value: "/tmp/x"}})
	assert.Contains(t, out, "Records")
	assert.Contains(t, out, "/tmp/x")
}
