package tui

import (
	"iter"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touchkeys/areas"
	"touchkeys/instrument"
	"touchkeys/sound"
	"touchkeys/theme"
)

type idleSource struct {
	path string
	once sync.Once
	done chan struct{}
}

func newIdleSource(path string) *idleSource {
	return &idleSource{path: path, done: make(chan struct{})}
}

func (s *idleSource) Path() string { return s.path }

func (s *idleSource) Events() iter.Seq[evdev.InputEvent] {
	return func(yield func(evdev.InputEvent) bool) {
		<-s.done
	}
}

func (s *idleSource) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func newTestModel(t *testing.T, paths ...string) Model {
	t.Helper()
	m := instrument.NewManager()
	for _, p := range paths {
		m.Add(instrument.NewWorker(newIdleSource(p), areas.Stripes(300, 1000, 10, 48), nil))
	}
	t.Cleanup(func() { _ = m.StopAll() })
	return NewModel(m, theme.New(theme.Default()))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestDeviceSelectionWraps(t *testing.T) {
	m := newTestModel(t, "/dev/input/event1", "/dev/input/event2")

	m, _ = update(t, m, key("tab"))
	assert.Equal(t, 1, m.Selected())
	m, _ = update(t, m, key("tab"))
	assert.Equal(t, 0, m.Selected())
	m, _ = update(t, m, key("shift+tab"))
	assert.Equal(t, 1, m.Selected())

	assert.Contains(t, m.View(), "/dev/input/event2")
	assert.Contains(t, m.View(), "[2/2]")
}

func TestPanicKey(t *testing.T) {
	m := newTestModel(t, "/dev/input/event1")
	calls := 0
	m.OnPanic = func() { calls++ }

	m, _ = update(t, m, key("x"))
	assert.Equal(t, 1, calls)
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, "/dev/input/event1")
	assert.NotContains(t, m.View(), "previous device")

	m, _ = update(t, m, key("?"))
	assert.Contains(t, m.View(), "previous device")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, "/dev/input/event1")
	m, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestViewWithoutDevices(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "no devices")
}

func TestViewUsesWindowWidth(t *testing.T) {
	m := newTestModel(t, "/dev/input/event1")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 32, Height: 20})

	lines := strings.Split(m.View(), "\n")
	// blank line, header, blank line, then the surface
	require.Greater(t, len(lines), 4)
	assert.Equal(t, 30, lipgloss.Width(lines[3]))
}

func TestUpdateMsgListensAgain(t *testing.T) {
	m := newTestModel(t, "/dev/input/event1")
	_, cmd := update(t, m, UpdateMsg{})
	assert.NotNil(t, cmd)
}

func TestHeaderShowsSoundingNote(t *testing.T) {
	m := newTestModel(t, "/dev/input/event1")
	m.Control = &sound.Control{}
	assert.Contains(t, m.View(), "silent")

	m.Control.Store(areas.NoteOn(69, 440))
	assert.Contains(t, m.View(), "A4 440.00Hz")
}
