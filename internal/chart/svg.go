package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/feelio/feelio-backend/internal/theme"
)

// RenderSVG writes the ring as a standalone SVG document. The hollow centre is
// painted in the theme background, and the empty ring in its empty-state colour.
func RenderSVG(w io.Writer, l Layout, colors theme.Colors) error {
	var b strings.Builder
	size := num(l.Size)
	cx, cy := num(l.Center.X), num(l.Center.Y)

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`, size, size, size, size)
	b.WriteString("<g>")

	switch l.Mode {
	case ModeEmpty:
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`, cx, cy, num(l.Radius), colors.EmptyState)
	case ModeFull:
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`, cx, cy, num(l.Radius), l.Fill)
	default:
		for _, wdg := range l.Wedges {
			fmt.Fprintf(&b, `<path data-emotion="%s" d="%s" fill="%s"/>`, wdg.Emotion, wdg.Path, wdg.Color)
		}
	}

	fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`, cx, cy, num(l.InnerRadius), colors.Background)
	b.WriteString("</g></svg>")

	_, err := io.WriteString(w, b.String())
	return err
}
