// Package calendar builds the per-year month grids shown on the home view.
package calendar

import (
	"time"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

// Day is one cell of a month grid.
type Day struct {
	Day     int            `json:"day"`
	Date    string         `json:"date"`
	Weekday time.Weekday   `json:"weekday"`
	Emotion domain.Emotion `json:"emotion,omitempty"`
	Color   string         `json:"color,omitempty"`
	Today   bool           `json:"today"`

	// Future days cannot receive a mood.
	Future bool `json:"future"`
}

// Month is one page section of the year view.
type Month struct {
	Month time.Month `json:"month"`
	Name  string     `json:"name"`

	// Leading is the number of empty cells before day 1 in the first week row.
	Leading  int   `json:"leading"`
	Recorded int   `json:"recorded"`
	Days     []Day `json:"days"`
}

// Year is a full year of month grids.
type Year struct {
	Year      int          `json:"year"`
	WeekStart time.Weekday `json:"week_start"`
	Months    []Month      `json:"months"`
}

// Build lays out the year, overlaying the recorded moods and flagging today
// and future days relative to today.
func Build(year int, moods domain.YearMoods, today domain.Date, weekStart time.Weekday) Year {
	y := Year{Year: year, WeekStart: weekStart, Months: make([]Month, 0, 12)}

	for m := time.January; m <= time.December; m++ {
		first := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		n := domain.DaysIn(year, m)

		mv := Month{
			Month:   m,
			Name:    m.String(),
			Leading: (int(first.Weekday()) - int(weekStart) + 7) % 7,
			Days:    make([]Day, n),
		}

		for d := 1; d <= n; d++ {
			date := domain.Date{Year: year, Month: m, Day: d}
			cell := Day{
				Day:     d,
				Date:    date.String(),
				Weekday: time.Weekday((int(first.Weekday()) + d - 1) % 7),
				Today:   date == today,
				Future:  date.After(today),
			}
			if e, ok := moods.Get(m, d); ok {
				cell.Emotion = e
				cell.Color = e.Color()
				mv.Recorded++
			}
			mv.Days[d-1] = cell
		}
		y.Months = append(y.Months, mv)
	}
	return y
}

// Years returns the pageable years from the account's first year up to and
// including the current one.
func Years(first, current int) []int {
	if first <= 0 || first > current {
		first = current
	}
	out := make([]int, 0, current-first+1)
	for y := first; y <= current; y++ {
		out = append(out, y)
	}
	return out
}
