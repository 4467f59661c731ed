package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"touchkeys/areas"
	"touchkeys/theme"
	"touchkeys/touch"
)

// Bounds returns the touch extent a layout covers. It prefers the device
// size and falls back to the regions' bounding box.
func Bounds(a *areas.Areas) (width, height int32) {
	width, height = a.TouchSize()
	if width > 0 && height > 0 {
		return width, height
	}
	var maxX, maxY int
	for _, e := range a.Elements(1, 1) {
		for _, p := range e.Outline {
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}
	if width <= 0 {
		width = int32(maxX)
	}
	if height <= 0 {
		height = int32(maxY)
	}
	return width, height
}

// Cell maps a character cell to the touch position at its center
func Cell(col, row, cols, rows int, width, height int32) touch.Position {
	x := (float64(col) + 0.5) * float64(width) / float64(cols)
	y := (float64(row) + 0.5) * float64(height) / float64(rows)
	return touch.Position{X: int32(x), Y: int32(y)}
}

// RenderSurface draws the layout as a cols x rows character grid, each cell
// colored by the note under its center. Touches are drawn on top.
func RenderSurface(a *areas.Areas, touches touch.Slots[touch.TouchState[touch.Position]], cols, rows int, th *theme.Theme) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	width, height := Bounds(a)
	if width <= 0 || height <= 0 {
		return ""
	}

	marks := make(map[[2]int]rune)
	for _, s := range touches {
		p, ok := s.Get()
		if !ok {
			continue
		}
		col := int(int64(p.X) * int64(cols) / int64(width))
		row := int(int64(p.Y) * int64(rows) / int64(height))
		if col < 0 || col >= cols || row < 0 || row >= rows {
			continue
		}
		sym := th.Symbols.Touch
		if _, hit := a.Resolve(p); !hit {
			sym = th.Symbols.Miss
		}
		marks[[2]int{col, row}] = sym
	}

	empty := lipgloss.NewStyle().Foreground(th.Surface())
	var lines []string
	for row := 0; row < rows; row++ {
		var line strings.Builder
		for col := 0; col < cols; col++ {
			note, ok := a.Resolve(Cell(col, row, cols, rows, width, height))
			mark, touched := marks[[2]int{col, row}]
			switch {
			case ok && touched:
				line.WriteString(lipgloss.NewStyle().Foreground(th.Active()).Background(th.Note(note)).Render(string(mark)))
			case ok:
				line.WriteString(lipgloss.NewStyle().Foreground(th.Note(note)).Render(string(th.Symbols.Key)))
			case touched:
				line.WriteString(lipgloss.NewStyle().Foreground(th.Warning()).Render(string(mark)))
			default:
				line.WriteString(empty.Render(string(th.Symbols.Idle)))
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderSlots lists every slot with its position and note
func RenderSlots(touches touch.Slots[touch.TouchState[touch.Position]], notes touch.Slots[areas.NoteEvent], th *theme.Theme) string {
	dim := lipgloss.NewStyle().Foreground(th.Muted())
	fg := lipgloss.NewStyle().Foreground(th.FG())

	var lines []string
	for i := range touches {
		p, ok := touches[i].Get()
		if !ok {
			lines = append(lines, dim.Render(fmt.Sprintf("%2d %c", i, th.Symbols.Idle)))
			continue
		}
		e := notes[i]
		if !e.On {
			lines = append(lines, fg.Render(fmt.Sprintf("%2d %c %-12s", i, th.Symbols.Miss, p)))
			continue
		}
		note := lipgloss.NewStyle().Foreground(th.Note(e.Note)).Render(fmt.Sprintf("%-4s %7.2fHz", areas.NoteName(e.Note), e.Frequency))
		lines = append(lines, fg.Render(fmt.Sprintf("%2d %c %-12s ", i, th.Symbols.Touch, p))+note)
	}
	return strings.Join(lines, "\n")
}

// RenderElements lists each region's color, note and scaled outline
func RenderElements(elements []areas.Element) string {
	var lines []string
	for _, e := range elements {
		pts := make([]string, len(e.Outline))
		for i, p := range e.Outline {
			pts[i] = fmt.Sprintf("(%d,%d)", p.X, p.Y)
		}
		lines = append(lines, fmt.Sprintf("%s %-4s %s %s", RenderSwatch(e.Color), areas.NoteName(e.Note), e.Color.Hex(), strings.Join(pts, " ")))
	}
	return strings.Join(lines, "\n")
}
