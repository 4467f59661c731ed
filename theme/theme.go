package theme

import (
	"github.com/charmbracelet/lipgloss"

	"touchkeys/areas"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Key     rune // █ region fill
	Touch   rune // ● finger on a region
	Miss    rune // ○ finger outside every region
	Idle    rune // · empty slot
	Sharp   rune // ▀ black key marker
	Divider rune // │ between regions
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Key:     '█',
			Touch:   '●',
			Miss:    '○',
			Idle:    '·',
			Sharp:   '▀',
			Divider: '│',
		},
	}
}

// Load returns a theme from a GIMP palette, or the built-in palette if path is empty
func Load(path string) (*Theme, error) {
	if path == "" {
		return New(Default()), nil
	}
	p, err := LoadGPL(path)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.1
	RoleMuted   = 0.3
	RoleFG      = 0.6
	RoleAccent  = 0.75
	RoleWarning = 0.85
	RoleActive  = 1.0
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) Surface() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSurface))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

// Note returns the layout color of a note, independent of the palette
func (t *Theme) Note(note int) lipgloss.Color {
	return rgbToLipgloss(areas.Color(note))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
