// Package picker holds the mood-entry picker: the radial placement of the
// palette and the two-tap confirmation machine.
package picker

import (
	"math"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

const (
	// RadiusRatio is the circle radius relative to screen width.
	RadiusRatio = 0.35
	// IconRatio is the icon box edge relative to screen width.
	IconRatio = 0.2
)

// Slot is the placement of one emotion icon.
type Slot struct {
	Index   int            `json:"index"`
	Emotion domain.Emotion `json:"emotion"`
	Color   string         `json:"color"`

	// Angle in degrees; 0 points right and angles grow clockwise.
	Angle float64 `json:"angle"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Left  float64 `json:"left"`
	Top   float64 `json:"top"`
	Size  float64 `json:"size"`
}

// Angle returns the angle in radians of slot i of n, starting at the top.
func Angle(i, n int) float64 {
	return float64(i)*2*math.Pi/float64(n) - math.Pi/2
}

// Position returns the centre of slot i of n on a circle of radius r around
// (cx, cy).
func Position(i, n int, cx, cy, r float64) (x, y float64) {
	a := Angle(i, n)
	return cx + r*math.Cos(a), cy + r*math.Sin(a)
}

// Layout places the whole palette on a width x height screen.
func Layout(width, height float64) []Slot {
	n := domain.PaletteSize
	r := width * RadiusRatio
	icon := width * IconRatio
	cx, cy := width/2, height/2

	slots := make([]Slot, n)
	for i, e := range domain.Palette {
		x, y := Position(i, n, cx, cy, r)
		slots[i] = Slot{
			Index:   i,
			Emotion: e,
			Color:   e.Color(),
			Angle:   Angle(i, n) * 180 / math.Pi,
			X:       x,
			Y:       y,
			Left:    x - icon/2,
			Top:     y - icon/2,
			Size:    icon,
		}
	}
	return slots
}
