package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"touchkeys/areas"
	"touchkeys/instrument"
	"touchkeys/sound"
	"touchkeys/theme"
	"touchkeys/widgets"
)

const (
	defaultCols = 60
	surfaceRows = 8
)

type Model struct {
	Manager  *instrument.Manager
	Theme    *theme.Theme
	Control  *sound.Control // monophonic output, may be nil
	OnPanic  func()         // silences held notes, may be nil
	selected int
	width    int
	showHelp bool
	quitting bool
}

type UpdateMsg struct{}

func NewModel(manager *instrument.Manager, th *theme.Theme) Model {
	return Model{
		Manager: manager,
		Theme:   th,
	}
}

func ListenForUpdates(manager *instrument.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Manager)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "tab", "right", "l":
			if n := len(m.Manager.Workers()); n > 0 {
				m.selected = (m.selected + 1) % n
			}

		case "shift+tab", "left", "h":
			if n := len(m.Manager.Workers()); n > 0 {
				m.selected = (m.selected + n - 1) % n
			}

		case "x":
			if m.OnPanic != nil {
				m.OnPanic()
			}

		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)
	}

	return m, nil
}

// Selected returns the index of the displayed worker
func (m Model) Selected() int {
	return m.selected
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	workers := m.Manager.Workers()
	if len(workers) == 0 {
		return "\n" + headerStyle.Render("touchkeys  no devices") + "\n"
	}
	sel := min(m.selected, len(workers)-1)
	w := workers[sel]
	snap := w.Snapshot()

	header := headerStyle.Render(fmt.Sprintf("touchkeys  %s  frames:%d  [%d/%d]", snap.Path, snap.Frames, sel+1, len(workers)))
	if m.Control != nil {
		header += "  " + m.renderSounding(m.Control.Load())
	}

	cols := defaultCols
	if m.width > 4 {
		cols = m.width - 2
	}
	surface := widgets.RenderSurface(w.Layout(), snap.Positions, cols, surfaceRows, m.Theme)
	slots := widgets.RenderSlots(snap.Positions, snap.Notes, m.Theme)

	help := dimStyle.Render("tab:next device  x:all notes off  ?:help  q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(surface)
	out.WriteString("\n\n")
	out.WriteString(slots)
	out.WriteString("\n\n")
	if m.showHelp {
		out.WriteString(widgets.RenderKeyHelp(keyHelp))
		out.WriteString("\n\n")
	}
	out.WriteString(help)

	return out.String()
}

func (m Model) renderSounding(e areas.NoteEvent) string {
	if !e.On {
		return lipgloss.NewStyle().Foreground(m.Theme.Muted()).Render("silent")
	}
	return lipgloss.NewStyle().Foreground(m.Theme.Note(e.Note)).Render(fmt.Sprintf("%s %.2fHz", areas.NoteName(e.Note), e.Frequency))
}

var keyHelp = []widgets.KeySection{
	{
		Title: "Monitor",
		Keys: []widgets.KeyBinding{
			{Key: "tab / l", Desc: "next device"},
			{Key: "shift+tab / h", Desc: "previous device"},
			{Key: "x", Desc: "send note off for held notes"},
			{Key: "?", Desc: "toggle this help"},
			{Key: "q", Desc: "quit"},
		},
	},
}
