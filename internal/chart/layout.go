// Package chart lays out monthly mood shares as a segmented ring.
package chart

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

// Geometry ratios relative to the canvas size.
const (
	RadiusRatio = 0.3
	StrokeRatio = 0.1
	startAngle  = -90.0
)

// Mode tells the renderer which of the three shapes to draw.
type Mode string

const (
	ModeEmpty     Mode = "empty"
	ModeFull      Mode = "full"
	ModeSegmented Mode = "segmented"
)

// Point is a canvas coordinate; y grows downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Wedge is one pie slice from the centre to the outer radius.
type Wedge struct {
	Emotion    domain.Emotion `json:"emotion"`
	Percentage int            `json:"percentage"`
	Color      string         `json:"color"`
	StartAngle float64        `json:"start_angle"`
	Sweep      float64        `json:"sweep"`
	Start      Point          `json:"start"`
	End        Point          `json:"end"`
	LargeArc   bool           `json:"large_arc"`
	Path       string         `json:"path"`
}

// Layout is the full drawing description of the ring.
type Layout struct {
	Size        float64 `json:"size"`
	Center      Point   `json:"center"`
	Radius      float64 `json:"radius"`
	InnerRadius float64 `json:"inner_radius"`
	Mode        Mode    `json:"mode"`

	// Fill is the emotion colour of a full ring; empty otherwise.
	Fill   string  `json:"fill,omitempty"`
	Wedges []Wedge `json:"wedges"`
}

type entry struct {
	emotion domain.Emotion
	pct     int
}

// Build computes the ring for the given percentages on a size x size canvas.
// Emotions are placed clockwise from the top in descending share; equal shares
// keep palette order.
func Build(percentages map[domain.Emotion]int, size float64) Layout {
	radius := size * RadiusRatio
	stroke := size * StrokeRatio
	c := size / 2

	l := Layout{
		Size:        size,
		Center:      Point{X: c, Y: c},
		Radius:      radius,
		InnerRadius: radius - stroke/2,
		Wedges:      []Wedge{},
	}

	active := make([]entry, 0, domain.PaletteSize)
	for _, e := range domain.Palette {
		if p := percentages[e]; p > 0 {
			active = append(active, entry{emotion: e, pct: p})
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].pct > active[j].pct
	})

	switch {
	case len(active) == 0:
		l.Mode = ModeEmpty
		return l
	case len(active) == 1 && active[0].pct >= 100:
		l.Mode = ModeFull
		l.Fill = active[0].emotion.Color()
		return l
	}

	l.Mode = ModeSegmented
	angle := startAngle
	for _, a := range active {
		sweep := float64(a.pct) / 100 * 360
		w := Wedge{
			Emotion:    a.emotion,
			Percentage: a.pct,
			Color:      a.emotion.Color(),
			StartAngle: angle,
			Sweep:      sweep,
			Start:      polar(l.Center, radius, angle),
			End:        polar(l.Center, radius, angle+sweep),
			LargeArc:   sweep > 180,
		}
		w.Path = wedgePath(l.Center, radius, w)
		l.Wedges = append(l.Wedges, w)
		angle += sweep
	}
	return l
}

// polar converts an angle in degrees (0 = right, clockwise) to a point.
func polar(c Point, r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{
		X: c.X + r*math.Cos(rad),
		Y: c.Y + r*math.Sin(rad),
	}
}

func wedgePath(c Point, r float64, w Wedge) string {
	large := 0
	if w.LargeArc {
		large = 1
	}
	return fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
		num(c.X), num(c.Y),
		num(w.Start.X), num(w.Start.Y),
		num(r), num(r), large,
		num(w.End.X), num(w.End.Y),
	)
}

func num(f float64) string {
	f = math.Round(f*100) / 100
	if f == 0 {
		f = 0 // normalise -0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
