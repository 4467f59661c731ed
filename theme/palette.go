package theme

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"touchkeys/areas"
)

type RGB = areas.RGB

type Palette struct {
	Name   string
	Colors []RGB
}

// defaultStops is a dark blue to warm white ramp
var defaultStops = []string{"#10121c", "#1f2a44", "#3d5a80", "#98c1d9", "#e0fbfc", "#ee6c4d", "#ffd166"}

// Default builds the built-in palette by blending defaultStops in Lab space
func Default() *Palette {
	const steps = 4
	p := &Palette{Name: "touchkeys"}
	for i := 0; i < len(defaultStops)-1; i++ {
		c0, _ := colorful.Hex(defaultStops[i])
		c1, _ := colorful.Hex(defaultStops[i+1])
		for s := 0; s < steps; s++ {
			p.Colors = append(p.Colors, toRGB(c0.BlendLab(c1, float64(s)/steps).Clamped()))
		}
	}
	last, _ := colorful.Hex(defaultStops[len(defaultStops)-1])
	p.Colors = append(p.Colors, toRGB(last))
	return p
}

// LoadGPL reads a GIMP palette file
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ParseGPL(f)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// ParseGPL reads GIMP palette text: a header, then one "R G B [name]" per line
func ParseGPL(r io.Reader) (*Palette, error) {
	p := &Palette{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Name:") {
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		}

		// Skip headers and comments
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		var c RGB
		ok := true
		for i := range 3 {
			v, err := strconv.Atoi(fields[i])
			if err != nil || v < 0 || v > 255 {
				ok = false
				break
			}
			c[i] = uint8(v)
		}
		if ok {
			p.Colors = append(p.Colors, c)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found")
	}

	return p, nil
}

// Lookup returns the color at normalized position 0-1, blended in Lab space
// between neighboring entries.
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	c0 := fromRGB(p.Colors[i])
	c1 := fromRGB(p.Colors[i+1])
	return toRGB(c0.BlendLab(c1, frac).Clamped())
}

// Index returns color at specific index (no interpolation)
func (p *Palette) Index(i int) RGB {
	if i < 0 {
		return p.Colors[0]
	}
	if i >= len(p.Colors) {
		return p.Colors[len(p.Colors)-1]
	}
	return p.Colors[i]
}

func fromRGB(c RGB) colorful.Color {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
}

func toRGB(c colorful.Color) RGB {
	r, g, b := c.RGB255()
	return RGB{r, g, b}
}
