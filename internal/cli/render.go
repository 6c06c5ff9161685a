package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/feelio/feelio-backend/internal/calendar"
	"github.com/feelio/feelio-backend/internal/client"
	moods "github.com/feelio/feelio-backend/internal/moods/domain"
)

// Terminal colours closest to each emotion's fill.
var emotionAttr = map[moods.Emotion]color.Attribute{
	moods.Happy:     color.FgHiYellow,
	moods.Ecstatic:  color.FgHiMagenta,
	moods.Stressed:  color.FgMagenta,
	moods.Calm:      color.FgHiGreen,
	moods.Exhausted: color.FgWhite,
	moods.Anxious:   color.FgYellow,
	moods.Sad:       color.FgBlue,
	moods.Angry:     color.FgRed,
}

func paint(e moods.Emotion) *color.Color {
	if a, ok := emotionAttr[e]; ok {
		return color.New(a, color.Bold)
	}
	return color.New(color.Faint)
}

var (
	title   = color.New(color.Bold)
	faint   = color.New(color.Faint)
	success = color.New(color.FgGreen)
)

func printPalette(w io.Writer, selected moods.Emotion) {
	for i, e := range moods.Palette {
		marker := " "
		if e == selected {
			marker = "›"
		}
		fmt.Fprintf(w, "%s %d. %s\n", marker, i+1, paint(e).Sprint(e))
	}
}

const weekWidth = len("11 12 13 14 15 16 17")

func printMonth(w io.Writer, m calendar.Month, weekStart time.Weekday) {
	name := m.Name
	pad := (weekWidth - len(name)) / 2
	title.Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), name)

	for i := 0; i < 7; i++ {
		fmt.Fprintf(w, "%-3s", time.Weekday((int(weekStart)+i)%7).String()[:2])
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, strings.Repeat("   ", m.Leading))
	col := m.Leading
	for _, d := range m.Days {
		cell := fmt.Sprintf("%2d ", d.Day)
		switch {
		case d.Emotion != "":
			paint(d.Emotion).Fprint(w, cell)
		case d.Today:
			color.New(color.Underline).Fprint(w, cell)
		case d.Future:
			faint.Fprint(w, cell)
		default:
			fmt.Fprint(w, cell)
		}
		col++
		if col%7 == 0 {
			fmt.Fprintln(w)
		}
	}
	if col%7 != 0 {
		fmt.Fprintln(w)
	}
}

func printStats(w io.Writer, s client.Stats) {
	title.Fprintf(w, "%s %d\n", s.MonthName, s.Year)
	if s.Breakdown.Total == 0 {
		faint.Fprintln(w, "No moods recorded this month.")
		return
	}

	for _, share := range s.Breakdown.Shares {
		if share.Count == 0 {
			continue
		}
		bar := strings.Repeat("█", (share.Percentage+4)/5)
		fmt.Fprintf(w, "%-10s %3d%% %s\n", share.Emotion, share.Percentage, paint(share.Emotion).Sprint(bar))
	}
	fmt.Fprintf(w, "%d day(s) recorded", s.Breakdown.Total)
	if s.Dominant != "" {
		fmt.Fprintf(w, ", mostly %s", paint(s.Dominant).Sprint(s.Dominant))
	}
	fmt.Fprintln(w)
}
