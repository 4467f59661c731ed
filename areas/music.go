package areas

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit color
type RGB [3]uint8

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// Frequency converts a MIDI note number to Hz, A4 (69) = 440.
func Frequency(note int) float32 {
	return float32(440 * math.Pow(2, float64(note-69)/12))
}

// Color walks the circle of fifths: each semitone moves the hue by seven
// 30 degree steps, so octaves share a color and the 12 pitch classes get
// 12 distinct hues.
func Color(note int) RGB {
	chroma := ((note*7)%12 + 12) % 12
	hue := math.Mod(float64(chroma)*30+240, 360)
	r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
	return RGB{r, g, b}
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName formats a MIDI note as name and octave, e.g. 69 -> "A4"
func NoteName(note int) string {
	pc := (note%12 + 12) % 12
	octave := (note - pc) / 12
	return fmt.Sprintf("%s%d", noteNames[pc], octave-1)
}
